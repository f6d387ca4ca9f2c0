// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package program

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/av3hub/avhub/internal/platform/request"
	"github.com/av3hub/avhub/internal/platform/respond"
	"github.com/av3hub/avhub/internal/platform/validate"
	"github.com/av3hub/avhub/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the program endpoints. requireOwner guards the
// curation routes; the service re-checks ownership as well.
func (handler *Handler) RegisterRoutes(router chi.Router, requireOwner func(http.Handler) http.Handler) {
	router.Get("/", handler.listPrograms)
	router.Get("/{id}", handler.getProgram)
	router.Post("/{id}/views", handler.incrementViews)
	router.Post("/{id}/downloads", handler.incrementDownloads)

	router.Group(func(curated chi.Router) {
		curated.Use(requireOwner)
		curated.Post("/", handler.createProgram)
		curated.Patch("/{id}", handler.updateProgram)
		curated.Delete("/{id}", handler.deleteProgram)
	})
}

func (handler *Handler) listPrograms(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	programs, total, err := handler.service.ListPrograms(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, programs, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getProgram(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetProgram(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) incrementViews(writer http.ResponseWriter, request *http.Request) {
	handler.service.IncrementViews(request.Context(), requestutil.ID(request, "id"))
	respond.NoContent(writer)
}

func (handler *Handler) incrementDownloads(writer http.ResponseWriter, request *http.Request) {
	handler.service.IncrementDownloads(request.Context(), requestutil.ID(request, "id"))
	respond.NoContent(writer)
}

type createProgramRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Version      string  `json:"version"`
	DownloadURL  *string `json:"download_url"`
	FileSize     *string `json:"file_size"`
	ThumbnailURL *string `json:"thumbnail_url"`
	IsFeatured   bool    `json:"is_featured"`
}

func (handler *Handler) createProgram(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createProgramRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("title", body.Title).
		MaxLen("title", body.Title, 200).
		Semver("version", body.Version)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateProgram(request.Context(), claims, CreateInput{
		Title:        body.Title,
		Description:  body.Description,
		Version:      body.Version,
		DownloadURL:  body.DownloadURL,
		FileSize:     body.FileSize,
		ThumbnailURL: body.ThumbnailURL,
		IsFeatured:   body.IsFeatured,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

type updateProgramRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Version      *string `json:"version"`
	DownloadURL  *string `json:"download_url"`
	FileSize     *string `json:"file_size"`
	ThumbnailURL *string `json:"thumbnail_url"`
	IsFeatured   *bool   `json:"is_featured"`
}

func (handler *Handler) updateProgram(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateProgramRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if body.Title != nil {
		validator.Required("title", *body.Title).MaxLen("title", *body.Title, 200)
	}
	if body.Version != nil {
		validator.Semver("version", *body.Version)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateProgram(request.Context(), claims, requestutil.ID(request, "id"), UpdateInput{
		Title:        body.Title,
		Description:  body.Description,
		Version:      body.Version,
		DownloadURL:  body.DownloadURL,
		FileSize:     body.FileSize,
		ThumbnailURL: body.ThumbnailURL,
		IsFeatured:   body.IsFeatured,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteProgram(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteProgram(request.Context(), claims, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
