// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package script implements the shared-script catalog.

It covers the public feed, script detail, member uploads, admin verification,
and the silent view-count telemetry.

Architecture:

  - Service: Orchestrates visibility rules and verification workflow.
  - Repository: Abstracted store with Postgres (live) and fixture (guest)
    implementations, selected once at startup.

Visibility invariant: only verified scripts appear in the public feed;
authors always see their own uploads, admins see everything.
*/
package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/sec"
	"github.com/av3hub/avhub/pkg/pagination"
	"github.com/av3hub/avhub/pkg/slug"
	"github.com/av3hub/avhub/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Feed & Detail

/*
ListScripts returns the script feed visible to the caller, newest first.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (nil for anonymous/guest viewers)
  - page: pagination.Params

Returns:
  - []*Script: Visible scripts
  - int: Total count for pagination
  - error: Storage failures
*/
func (service *Service) ListScripts(context context.Context, claims *sec.AuthClaims, page pagination.Params) ([]*Script, int, error) {
	filter := ListFilter{}
	if claims != nil {
		filter.ViewerID = &claims.UserID
		filter.IncludeUnverified = claims.Role().AtLeast(sec.RoleAdmin)
	}
	return service.repo.List(context, filter, page)
}

/*
GetScript returns a single script by ID, enforcing the visibility rule for
unverified uploads.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (nil for anonymous/guest viewers)
  - id: string

Returns:
  - *Script: The script
  - error: NotFound when absent or hidden from the caller
*/
func (service *Service) GetScript(context context.Context, claims *sec.AuthClaims, id string) (*Script, error) {
	found, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if !found.IsVerified && !service.canSeeUnverified(claims, found) {
		// Hidden scripts are indistinguishable from absent ones.
		return nil, apperr.NotFound("Script")
	}

	return found, nil
}

// # Upload & Maintenance

// UploadInput holds the member-supplied fields for a new script.
type UploadInput struct {
	Title        string
	Description  *string
	Content      *string
	FileURL      *string
	ThumbnailURL *string
}

/*
UploadScript persists a new script owned by the caller.

New uploads always start unverified with a zero view count regardless of
what the client sends; only an admin can verify afterwards.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (must be authenticated)
  - input: UploadInput

Returns:
  - *Script: Created entity
  - error: Validation or storage failures
*/
func (service *Service) UploadScript(context context.Context, claims *sec.AuthClaims, input UploadInput) (*Script, error) {
	created := &Script{
		ID:           uuid.New(),
		AuthorID:     &claims.UserID,
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		FileURL:      input.FileURL,
		ThumbnailURL: input.ThumbnailURL,
		Slug:         slug.From(input.Title),
		IsVerified:   false,
		ViewCount:    0,
	}

	if err := service.repo.Create(context, created); err != nil {
		return nil, fmt.Errorf("script_service_upload_failed: %w", err)
	}

	return created, nil
}

// UpdateInput holds the optional fields of a partial script update.
type UpdateInput struct {
	Title        *string
	Description  *string
	Content      *string
	FileURL      *string
	ThumbnailURL *string
}

/*
UpdateScript applies a partial update to a script owned by the caller.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string
  - input: UpdateInput

Returns:
  - *Script: Updated entity
  - error: NotFound, Forbidden (not the author), or storage failures
*/
func (service *Service) UpdateScript(context context.Context, claims *sec.AuthClaims, id string, input UpdateInput) (*Script, error) {
	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if !service.isAuthor(claims, existing) {
		return nil, apperr.Forbidden("Only the author can update this script")
	}

	if input.Title != nil {
		existing.Title = *input.Title
		existing.Slug = slug.From(*input.Title)
	}
	if input.Description != nil {
		existing.Description = input.Description
	}
	if input.Content != nil {
		existing.Content = input.Content
	}
	if input.FileURL != nil {
		existing.FileURL = input.FileURL
	}
	if input.ThumbnailURL != nil {
		existing.ThumbnailURL = input.ThumbnailURL
	}

	if err := service.repo.Update(context, existing); err != nil {
		return nil, fmt.Errorf("script_service_update_failed: %w", err)
	}

	return existing, nil
}

/*
SetVerified flips the admin verification flag on a script.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (must be admin or owner)
  - id: string
  - verified: bool

Returns:
  - *Script: Updated entity
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) SetVerified(context context.Context, claims *sec.AuthClaims, id string, verified bool) (*Script, error) {
	if claims == nil || !claims.Role().AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("Script verification requires admin privileges")
	}

	if err := service.repo.SetVerified(context, id, verified); err != nil {
		return nil, err
	}

	return service.repo.GetByID(context, id)
}

/*
DeleteScript removes a script. Authors can delete their own uploads,
admins can delete any.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string

Returns:
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) DeleteScript(context context.Context, claims *sec.AuthClaims, id string) error {
	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return err
	}

	isAdmin := claims != nil && claims.Role().AtLeast(sec.RoleAdmin)
	if !service.isAuthor(claims, existing) && !isAdmin {
		return apperr.Forbidden("Only the author or an admin can delete this script")
	}

	return service.repo.Delete(context, id)
}

// # Telemetry

// IncrementViews bumps the script's view counter. Failures are logged and
// swallowed: telemetry never surfaces an error to the caller.
func (service *Service) IncrementViews(context context.Context, id string) {
	if err := service.repo.IncrementViews(context, id); err != nil {
		service.logger.Debug("script view increment failed", "script_id", id, "error", err)
	}
}

// # Internal Checks

func (service *Service) isAuthor(claims *sec.AuthClaims, target *Script) bool {
	return claims != nil && target.AuthorID != nil && *target.AuthorID == claims.UserID
}

func (service *Service) canSeeUnverified(claims *sec.AuthClaims, target *Script) bool {
	if claims == nil {
		return false
	}
	return service.isAuthor(claims, target) || claims.Role().AtLeast(sec.RoleAdmin)
}
