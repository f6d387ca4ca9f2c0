// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package script

import (
	"context"

	"github.com/av3hub/avhub/pkg/pagination"
)

// ListFilter narrows the feed query to what the viewer may see.
type ListFilter struct {
	// ViewerID, when set, additionally includes that author's own
	// unverified scripts in the feed.
	ViewerID *string
	// IncludeUnverified lifts the verification filter entirely (admins).
	IncludeUnverified bool
}

// Repository is the persistence contract for scripts. Two implementations
// exist: Postgres for live mode and an in-memory fixture set for guest mode.
type Repository interface {
	List(context context.Context, filter ListFilter, page pagination.Params) ([]*Script, int, error)
	GetByID(context context.Context, id string) (*Script, error)
	Create(context context.Context, script *Script) error
	Update(context context.Context, script *Script) error
	SetVerified(context context.Context, id string, verified bool) error
	Delete(context context.Context, id string) error
	IncrementViews(context context.Context, id string) error
}
