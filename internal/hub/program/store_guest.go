// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package program

import (
	"context"
	"time"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/pkg/pagination"
	"github.com/av3hub/avhub/pkg/pointer"
)

// GuestRepository serves the fixed program samples when no backend is
// configured.
type GuestRepository struct {
	programs []*Program
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{programs: samplePrograms()}
}

func (repository *GuestRepository) List(context context.Context, page pagination.Params) ([]*Program, int, error) {
	total := len(repository.programs)
	start := page.Offset()
	if start >= total {
		return []*Program{}, total, nil
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return repository.programs[start:end], total, nil
}

func (repository *GuestRepository) GetByID(context context.Context, id string) (*Program, error) {
	for _, item := range repository.programs {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Program")
}

func (repository *GuestRepository) Create(context context.Context, program *Program) error {
	return apperr.GuestMode("Program creation")
}

func (repository *GuestRepository) Update(context context.Context, program *Program) error {
	return apperr.GuestMode("Program updates")
}

func (repository *GuestRepository) Delete(context context.Context, id string) error {
	return apperr.GuestMode("Program deletion")
}

func (repository *GuestRepository) IncrementViews(context context.Context, id string) error {
	return nil
}

func (repository *GuestRepository) IncrementDownloads(context context.Context, id string) error {
	return nil
}

func samplePrograms() []*Program {
	return []*Program{
		{
			ID:            "prog-1",
			Title:         "BypassAC Pro",
			Description:   pointer.To("Professional anti-cheat bypass tool with advanced features."),
			Version:       "2.1.0",
			DownloadURL:   pointer.To("#"),
			FileSize:      pointer.To("2.5 MB"),
			DownloadCount: 1250,
			ViewCount:     3400,
			IsFeatured:    true,
			CreatedAt:     time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
			Creator:       &CreatorSummary{Username: constants.OwnerUsername},
		},
		{
			ID:            "prog-2",
			Title:         "Script Injector",
			Description:   pointer.To("Easy-to-use script injection tool for various games."),
			Version:       "1.8.3",
			DownloadURL:   pointer.To("#"),
			FileSize:      pointer.To("1.2 MB"),
			DownloadCount: 890,
			ViewCount:     2100,
			IsFeatured:    false,
			CreatedAt:     time.Date(2024, 1, 8, 16, 45, 0, 0, time.UTC),
			Creator:       &CreatorSummary{Username: constants.OwnerUsername},
		},
	}
}
