// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package program implements the owner-curated downloadable program catalog.

Programs differ from scripts in two ways: every mutation is restricted to
the platform owner, and each program carries both a view counter and a
download counter, both incremented as silent telemetry.
*/
package program

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/sec"
	"github.com/av3hub/avhub/pkg/pagination"
	"github.com/av3hub/avhub/pkg/pointer"
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

// # Catalog

func (service *Service) ListPrograms(context context.Context, page pagination.Params) ([]*Program, int, error) {
	return service.repo.List(context, page)
}

func (service *Service) GetProgram(context context.Context, id string) (*Program, error) {
	return service.repo.GetByID(context, id)
}

// # Owner Curation

// CreateInput holds the owner-supplied fields for a new program listing.
type CreateInput struct {
	Title        string
	Description  *string
	Version      string
	DownloadURL  *string
	FileSize     *string
	ThumbnailURL *string
	IsFeatured   bool
}

/*
CreateProgram publishes a new program listing. Counters start at zero
regardless of input.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (must be the owner)
  - input: CreateInput

Returns:
  - *Program: Created entity
  - error: Forbidden for non-owners, or storage failures
*/
func (service *Service) CreateProgram(context context.Context, claims *sec.AuthClaims, input CreateInput) (*Program, error) {
	if err := requireOwner(claims, "Program creation requires owner privileges"); err != nil {
		return nil, err
	}

	created := &Program{
		ID:            uuid.New(),
		Title:         input.Title,
		Description:   input.Description,
		Version:       input.Version,
		DownloadURL:   input.DownloadURL,
		FileSize:      input.FileSize,
		ThumbnailURL:  input.ThumbnailURL,
		IsFeatured:    input.IsFeatured,
		DownloadCount: 0,
		ViewCount:     0,
		CreatedBy:     &claims.UserID,
	}

	if err := service.repo.Create(context, created); err != nil {
		return nil, fmt.Errorf("program_service_create_failed: %w", err)
	}

	return created, nil
}

// UpdateInput holds the optional fields of a partial program update.
type UpdateInput struct {
	Title        *string
	Description  *string
	Version      *string
	DownloadURL  *string
	FileSize     *string
	ThumbnailURL *string
	IsFeatured   *bool
}

/*
UpdateProgram applies a partial update to a program listing and refreshes
its updated_at timestamp.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (must be the owner)
  - id: string
  - input: UpdateInput

Returns:
  - *Program: Updated entity
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) UpdateProgram(context context.Context, claims *sec.AuthClaims, id string, input UpdateInput) (*Program, error) {
	if err := requireOwner(claims, "Program updates require owner privileges"); err != nil {
		return nil, err
	}

	existing, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = input.Description
	}
	if input.Version != nil {
		existing.Version = *input.Version
	}
	if input.DownloadURL != nil {
		existing.DownloadURL = input.DownloadURL
	}
	if input.FileSize != nil {
		existing.FileSize = input.FileSize
	}
	if input.ThumbnailURL != nil {
		existing.ThumbnailURL = input.ThumbnailURL
	}
	existing.IsFeatured = pointer.Fallback(input.IsFeatured, existing.IsFeatured)
	existing.UpdatedAt = pointer.To(time.Now().UTC())

	if err := service.repo.Update(context, existing); err != nil {
		return nil, fmt.Errorf("program_service_update_failed: %w", err)
	}

	return existing, nil
}

/*
DeleteProgram removes a program listing.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (must be the owner)
  - id: string

Returns:
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) DeleteProgram(context context.Context, claims *sec.AuthClaims, id string) error {
	if err := requireOwner(claims, "Program deletion requires owner privileges"); err != nil {
		return err
	}
	return service.repo.Delete(context, id)
}

// # Telemetry

// IncrementViews bumps the program's view counter. Failures are swallowed.
func (service *Service) IncrementViews(context context.Context, id string) {
	if err := service.repo.IncrementViews(context, id); err != nil {
		service.logger.Debug("program view increment failed", "program_id", id, "error", err)
	}
}

// IncrementDownloads bumps the program's download counter. Failures are swallowed.
func (service *Service) IncrementDownloads(context context.Context, id string) {
	if err := service.repo.IncrementDownloads(context, id); err != nil {
		service.logger.Debug("program download increment failed", "program_id", id, "error", err)
	}
}

func requireOwner(claims *sec.AuthClaims, message string) error {
	if claims == nil || claims.Role() != sec.RoleOwner {
		return apperr.Forbidden(message)
	}
	return nil
}
