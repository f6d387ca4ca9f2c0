// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/av3hub/avhub/internal/platform/request"
	"github.com/av3hub/avhub/internal/platform/respond"
	"github.com/av3hub/avhub/internal/platform/validate"
)

// maxAvatarBytes caps profile picture uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the profile and settings endpoints. All of them
// operate on the authenticated caller's own records.
func (handler *Handler) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.Group(func(protected chi.Router) {
		protected.Use(requireAuth)
		protected.Get("/profile", handler.getProfile)
		protected.Patch("/profile", handler.updateProfile)
		protected.Post("/profile/picture", handler.uploadProfilePicture)
		protected.Get("/settings", handler.getSettings)
		protected.Put("/settings", handler.updateSettings)
	})
}

func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

type updateProfileRequest struct {
	ProfilePictureURL *string `json:"profile_picture_url"`
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateProfileRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		ProfilePictureURL: body.ProfilePictureURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) uploadProfilePicture(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, maxAvatarBytes)
	if err := request.ParseMultipartForm(maxAvatarBytes); err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "Upload must be multipart form data under 5 MB"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "Missing file field"))
		return
	}
	defer file.Close()

	profile, err := handler.service.UploadProfilePicture(
		request.Context(), userID, header.Filename, file, header.Header.Get("Content-Type"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.GetSettings(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

type updateSettingsRequest struct {
	Theme                *Theme `json:"theme"`
	EmailNotifications   *bool  `json:"email_notifications"`
	CommentNotifications *bool  `json:"comment_notifications"`
	LikeNotifications    *bool  `json:"like_notifications"`
}

func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateSettingsRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	saved, err := handler.service.UpdateSettings(request.Context(), userID, UpdateSettingsInput{
		Theme:                body.Theme,
		EmailNotifications:   body.EmailNotifications,
		CommentNotifications: body.CommentNotifications,
		LikeNotifications:    body.LikeNotifications,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, saved)
}
