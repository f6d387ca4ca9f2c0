// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/av3hub/avhub/internal/platform/request"
	"github.com/av3hub/avhub/internal/platform/respond"
	"github.com/av3hub/avhub/internal/platform/validate"
)

type Handler struct {
	service AuthService
}

func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/signup", handler.signUp)
	router.Post("/signin", handler.signIn)
	router.Post("/signout", handler.signOut)
	router.Post("/password-reset/request", handler.requestPasswordReset)
	router.Post("/password-reset/confirm", handler.resetPassword)
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var body signUpRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("email", body.Email).
		Email("email", body.Email).
		Username("username", body.Username).
		MinLen("password", body.Password, 6)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credential, err := handler.service.SignUp(request.Context(), SignUpInput{
		Email:    body.Email,
		Password: body.Password,
		Username: body.Username,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, credential)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var body signInRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("email", body.Email).
		Required("password", body.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.SignIn(request.Context(), SignInInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.SignOut(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type requestResetRequest struct {
	Email string `json:"email"`
}

// requestPasswordReset always answers 204 so the response does not reveal
// whether the email is registered. The token reaches the member out of
// band.
func (handler *Handler) requestPasswordReset(writer http.ResponseWriter, request *http.Request) {
	var body requestResetRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.RequestPasswordReset(request.Context(), body.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var body resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("token", body.Token).
		MinLen("new_password", body.NewPassword, 6)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), body.Token, body.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
