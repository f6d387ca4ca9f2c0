// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/av3hub/avhub/internal/platform/apperr"
	requestutil "github.com/av3hub/avhub/internal/platform/request"
	"github.com/av3hub/avhub/internal/platform/respond"
	"github.com/av3hub/avhub/internal/users/session"
	"github.com/av3hub/avhub/internal/view"
)

// meAwaitTimeout bounds how long GET /auth/me waits for a profile that
// is still being provisioned. It must stay under the server's write
// timeout or the client sees a dropped connection instead of a result.
const meAwaitTimeout = 8 * time.Second

// IdentityHandler serves the current-session surface: who the caller
// is, and which dashboard tabs their role unlocks.
type IdentityHandler struct {
	profiles session.ProfileFetcher
}

// NewIdentityHandler constructs the handler. profiles is nil in guest
// mode; /auth/me then reports guest mode instead of a profile.
func NewIdentityHandler(profiles session.ProfileFetcher) *IdentityHandler {
	return &IdentityHandler{profiles: profiles}
}

// RegisterAuthRoutes mounts the session profile endpoint under /auth.
func (handler *IdentityHandler) RegisterAuthRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.With(requireAuth).Get("/me", handler.me)
}

// RegisterDashboardRoutes mounts the dashboard composition endpoints.
func (handler *IdentityHandler) RegisterDashboardRoutes(router chi.Router) {
	router.Get("/tabs", handler.tabs)
}

/*
me handles GET /auth/me.

A freshly signed-up member may ask who they are before the provisioner
has materialized their profile. Instead of surfacing that window as a
404, the handler waits through it: the profile read retries on
not-found until it appears or the bounded wait expires.
*/
func (handler *IdentityHandler) me(writer http.ResponseWriter, httpRequest *http.Request) {
	claims, err := requestutil.RequiredClaims(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	if handler.profiles == nil {
		respond.Error(writer, httpRequest, apperr.GuestMode("Profile access"))
		return
	}

	awaitContext, cancel := context.WithTimeout(httpRequest.Context(), meAwaitTimeout)
	defer cancel()

	profile, err := session.AwaitProfile(awaitContext, handler.profiles, claims.UserID, 0)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, profile)
}

// tabs handles GET /dashboard/tabs. It works for every session tier:
// anonymous and guest callers get the reduced browse-only set.
func (handler *IdentityHandler) tabs(writer http.ResponseWriter, httpRequest *http.Request) {
	claims := requestutil.Claims(httpRequest)

	type tabsResponse struct {
		Tabs []view.Tab `json:"tabs"`
		Role string     `json:"role,omitempty"`
	}

	response := tabsResponse{Tabs: view.AllowedTabs(claims)}
	if claims != nil {
		response.Role = string(claims.Role())
	}

	respond.OK(writer, response)
}
