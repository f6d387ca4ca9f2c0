// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package script

import (
	"context"
	"time"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/pkg/pagination"
	"github.com/av3hub/avhub/pkg/pointer"
)

// GuestRepository serves the fixed sample catalog when no backend is
// configured. Reads always succeed, mutations always return the guest-mode
// error, and telemetry no-ops.
type GuestRepository struct {
	scripts []*Script
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{scripts: sampleScripts()}
}

func (repository *GuestRepository) List(context context.Context, filter ListFilter, page pagination.Params) ([]*Script, int, error) {
	visible := make([]*Script, 0, len(repository.scripts))
	for _, item := range repository.scripts {
		if item.IsVerified || filter.IncludeUnverified {
			visible = append(visible, item)
		}
	}

	total := len(visible)
	start := page.Offset()
	if start >= total {
		return []*Script{}, total, nil
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return visible[start:end], total, nil
}

func (repository *GuestRepository) GetByID(context context.Context, id string) (*Script, error) {
	for _, item := range repository.scripts {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Script")
}

func (repository *GuestRepository) Create(context context.Context, script *Script) error {
	return apperr.GuestMode("Script upload")
}

func (repository *GuestRepository) Update(context context.Context, script *Script) error {
	return apperr.GuestMode("Script updates")
}

func (repository *GuestRepository) SetVerified(context context.Context, id string, verified bool) error {
	return apperr.GuestMode("Script verification")
}

func (repository *GuestRepository) Delete(context context.Context, id string) error {
	return apperr.GuestMode("Script deletion")
}

func (repository *GuestRepository) IncrementViews(context context.Context, id string) error {
	return nil
}

// sampleScripts is the demonstration catalog shown to unconfigured
// deployments. IDs are stable so deep links keep working between visits.
func sampleScripts() []*Script {
	return []*Script{
		{
			ID:          "mock-1",
			Title:       "Sample Script 1",
			Description: pointer.To("This is a sample script for demonstration purposes."),
			Content:     pointer.To("-- Sample script content\nprint(\"Hello World!\")"),
			Slug:        "sample-script-1",
			IsVerified:  true,
			ViewCount:   150,
			CreatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			Author:      &AuthorSummary{Username: "DemoUser"},
		},
		{
			ID:          "mock-2",
			Title:       "Advanced Bypass Script",
			Description: pointer.To("An advanced script for bypassing various protections."),
			Content:     pointer.To("-- Advanced bypass script\nlocal bypass = {}\nreturn bypass"),
			Slug:        "advanced-bypass-script",
			IsVerified:  true,
			ViewCount:   89,
			CreatedAt:   time.Date(2024, 1, 14, 15, 30, 0, 0, time.UTC),
			Author:      &AuthorSummary{Username: "ProCoder"},
		},
		{
			ID:          "mock-3",
			Title:       "GUI Enhancement",
			Description: pointer.To("Enhances the user interface with modern elements."),
			Content:     pointer.To("-- GUI Enhancement script\nlocal gui = game:GetService(\"CoreGui\")"),
			Slug:        "gui-enhancement",
			IsVerified:  false,
			ViewCount:   45,
			CreatedAt:   time.Date(2024, 1, 13, 9, 15, 0, 0, time.UTC),
			Author:      &AuthorSummary{Username: "UIDesigner"},
		},
	}
}
