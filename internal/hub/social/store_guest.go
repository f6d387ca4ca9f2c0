// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package social

import (
	"context"

	hubcontent "github.com/av3hub/avhub/internal/hub/content"
	"github.com/av3hub/avhub/internal/platform/apperr"
)

// GuestCommentRepository serves guest mode: threads read empty, posting
// requires an account.
type GuestCommentRepository struct{}

func NewGuestCommentRepository() *GuestCommentRepository {
	return &GuestCommentRepository{}
}

func (repository *GuestCommentRepository) ListByTarget(context context.Context, target hubcontent.Ref) ([]*Comment, error) {
	return []*Comment{}, nil
}

func (repository *GuestCommentRepository) GetByID(context context.Context, id string) (*Comment, error) {
	return nil, apperr.NotFound("Comment")
}

func (repository *GuestCommentRepository) Create(context context.Context, comment *Comment) error {
	return apperr.GuestMode("Comments")
}

func (repository *GuestCommentRepository) UpdateContent(context context.Context, id, body string) (*Comment, error) {
	return nil, apperr.GuestMode("Comment editing")
}

func (repository *GuestCommentRepository) Delete(context context.Context, id string) error {
	return apperr.GuestMode("Comment deletion")
}

// GuestLikeRepository serves guest mode: counts read zero, nothing is
// liked, and toggling requires an account.
type GuestLikeRepository struct{}

func NewGuestLikeRepository() *GuestLikeRepository {
	return &GuestLikeRepository{}
}

func (repository *GuestLikeRepository) Find(context context.Context, authorID string, target hubcontent.Ref) (*Like, error) {
	return nil, apperr.NotFound("Like")
}

func (repository *GuestLikeRepository) Create(context context.Context, like *Like) error {
	return apperr.GuestMode("Likes")
}

func (repository *GuestLikeRepository) Delete(context context.Context, id string) error {
	return apperr.GuestMode("Likes")
}

func (repository *GuestLikeRepository) Count(context context.Context, target hubcontent.Ref) (int, error) {
	return 0, nil
}
