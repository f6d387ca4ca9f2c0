// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package program

import (
	"context"

	"github.com/av3hub/avhub/pkg/pagination"
)

// Repository is the persistence contract for programs.
type Repository interface {
	List(context context.Context, page pagination.Params) ([]*Program, int, error)
	GetByID(context context.Context, id string) (*Program, error)
	Create(context context.Context, program *Program) error
	Update(context context.Context, program *Program) error
	Delete(context context.Context, id string) error
	IncrementViews(context context.Context, id string) error
	IncrementDownloads(context context.Context, id string) error
}
