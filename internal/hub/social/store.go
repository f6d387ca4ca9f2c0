// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package social

import (
	"context"

	hubcontent "github.com/av3hub/avhub/internal/hub/content"
)

// CommentRepository is the persistence contract for threaded comments.
type CommentRepository interface {
	// ListByTarget returns all comments on one piece of content in
	// chronological order (oldest first), replies interleaved by time.
	ListByTarget(context context.Context, target hubcontent.Ref) ([]*Comment, error)
	GetByID(context context.Context, id string) (*Comment, error)
	Create(context context.Context, comment *Comment) error
	// UpdateContent replaces the body and refreshes updated_at.
	UpdateContent(context context.Context, id, body string) (*Comment, error)
	Delete(context context.Context, id string) error
}

// LikeRepository is the persistence contract for likes.
type LikeRepository interface {
	// Find returns the member's like on the target, or a NotFound error.
	Find(context context.Context, authorID string, target hubcontent.Ref) (*Like, error)
	Create(context context.Context, like *Like) error
	Delete(context context.Context, id string) error
	Count(context context.Context, target hubcontent.Ref) (int, error)
}
