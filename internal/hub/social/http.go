// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	hubcontent "github.com/av3hub/avhub/internal/hub/content"
	requestutil "github.com/av3hub/avhub/internal/platform/request"
	"github.com/av3hub/avhub/internal/platform/respond"
	"github.com/av3hub/avhub/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the comment and like endpoints. Targets are
// addressed as /{kind}/{targetID} where kind is "script" or "program".
func (handler *Handler) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.Get("/comments/{kind}/{targetID}", handler.listComments)
	router.Get("/likes/{kind}/{targetID}", handler.likeSummary)

	router.Group(func(protected chi.Router) {
		protected.Use(requireAuth)
		protected.Post("/comments", handler.createComment)
		protected.Patch("/comments/{id}", handler.updateComment)
		protected.Delete("/comments/{id}", handler.deleteComment)
		protected.Post("/likes/{kind}/{targetID}/toggle", handler.toggleLike)
	})
}

func targetFromRequest(request *http.Request) hubcontent.Ref {
	return hubcontent.Ref{
		Kind: hubcontent.Kind(requestutil.ID(request, "kind")),
		ID:   requestutil.ID(request, "targetID"),
	}
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListComments(request.Context(), targetFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

type createCommentRequest struct {
	Target   hubcontent.Ref `json:"target"`
	Content  string         `json:"content"`
	ParentID *string        `json:"parent_id"`
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createCommentRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("content", body.Content).
		MaxLen("content", body.Content, 2000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateComment(request.Context(), claims, CreateCommentInput{
		Target:   body.Target,
		Content:  body.Content,
		ParentID: body.ParentID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateCommentRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("content", body.Content).
		MaxLen("content", body.Content, 2000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateComment(request.Context(), claims, requestutil.ID(request, "id"), body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), claims, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// likeSummaryResponse reports the aggregate and, for authenticated
// callers, whether they currently like the target.
type likeSummaryResponse struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}

func (handler *Handler) likeSummary(writer http.ResponseWriter, request *http.Request) {
	target := targetFromRequest(request)

	count, err := handler.service.CountLikes(request.Context(), target)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary := likeSummaryResponse{Count: count}
	if claims := requestutil.Claims(request); claims != nil {
		liked, err := handler.service.UserLiked(request.Context(), claims, target)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		summary.Liked = liked
	}

	respond.OK(writer, summary)
}

func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.ToggleLike(request.Context(), claims, targetFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}
