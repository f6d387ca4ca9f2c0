// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package script

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/av3hub/avhub/internal/platform/request"
	"github.com/av3hub/avhub/internal/platform/respond"
	"github.com/av3hub/avhub/internal/platform/validate"
	"github.com/av3hub/avhub/pkg/pagination"
	"github.com/av3hub/avhub/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the script endpoints. requireAuth guards the
// mutating routes; reads stay open to anonymous and guest viewers.
func (handler *Handler) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.Get("/", handler.listScripts)
	router.Get("/{id}", handler.getScript)
	router.Post("/{id}/views", handler.incrementViews)

	router.Group(func(protected chi.Router) {
		protected.Use(requireAuth)
		protected.Post("/", handler.uploadScript)
		protected.Patch("/{id}", handler.updateScript)
		protected.Put("/{id}/verification", handler.setVerified)
		protected.Delete("/{id}", handler.deleteScript)
	})
}

func (handler *Handler) listScripts(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	scripts, total, err := handler.service.ListScripts(request.Context(), requestutil.Claims(request), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, scripts, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getScript(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetScript(request.Context(), requestutil.Claims(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

// incrementViews is a fire-and-forget telemetry endpoint; it always
// responds 204 regardless of outcome.
func (handler *Handler) incrementViews(writer http.ResponseWriter, request *http.Request) {
	handler.service.IncrementViews(request.Context(), requestutil.ID(request, "id"))
	respond.NoContent(writer)
}

type uploadScriptRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Content      *string `json:"script_content"`
	FileURL      *string `json:"file_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

func (handler *Handler) uploadScript(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body uploadScriptRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("title", body.Title).
		MaxLen("title", body.Title, 200).
		MaxLen("description", pointer.Val(body.Description), 2000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.UploadScript(request.Context(), claims, UploadInput{
		Title:        body.Title,
		Description:  body.Description,
		Content:      body.Content,
		FileURL:      body.FileURL,
		ThumbnailURL: body.ThumbnailURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

type updateScriptRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Content      *string `json:"script_content"`
	FileURL      *string `json:"file_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

func (handler *Handler) updateScript(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateScriptRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if body.Title != nil {
		validator := &validate.Validator{}
		validator.
			Required("title", *body.Title).
			MaxLen("title", *body.Title, 200)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	updated, err := handler.service.UpdateScript(request.Context(), claims, requestutil.ID(request, "id"), UpdateInput{
		Title:        body.Title,
		Description:  body.Description,
		Content:      body.Content,
		FileURL:      body.FileURL,
		ThumbnailURL: body.ThumbnailURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

type setVerifiedRequest struct {
	IsVerified bool `json:"is_verified"`
}

func (handler *Handler) setVerified(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body setVerifiedRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.SetVerified(request.Context(), claims, requestutil.ID(request, "id"), body.IsVerified)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteScript(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteScript(request.Context(), claims, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
