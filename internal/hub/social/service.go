// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package social implements comments and likes on hub content.

Both features address their target through an explicit [content.Ref] so a
comment or like can never ambiguously point at both a script and a program.

The like toggle is check-then-act: it reads the member's current like and
flips it. Two racing toggles can interleave, which at worst produces one
lost flip; the one-like-per-(author,target) uniqueness constraint keeps the
data consistent either way.
*/
package social

import (
	"context"
	"fmt"
	"log/slog"

	hubcontent "github.com/av3hub/avhub/internal/hub/content"
	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/sec"
	"github.com/av3hub/avhub/pkg/uuid"
)

type Service struct {
	comments CommentRepository
	likes    LikeRepository
	logger   *slog.Logger
}

func NewService(comments CommentRepository, likes LikeRepository, logger *slog.Logger) *Service {
	return &Service{
		comments: comments,
		likes:    likes,
		logger:   logger,
	}
}

// # Comments

/*
ListComments returns the comment thread for one piece of content, oldest
first.

Parameters:
  - context: context.Context
  - target: hubcontent.Ref

Returns:
  - []*Comment: Thread in chronological order
  - error: Validation or storage failures
*/
func (service *Service) ListComments(context context.Context, target hubcontent.Ref) ([]*Comment, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return service.comments.ListByTarget(context, target)
}

// CreateCommentInput holds the fields for a new comment or reply.
type CreateCommentInput struct {
	Target   hubcontent.Ref
	Content  string
	ParentID *string
}

/*
CreateComment posts a comment (or a reply when ParentID is set).

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (must be authenticated)
  - input: CreateCommentInput

Returns:
  - *Comment: Created comment
  - error: Validation or storage failures
*/
func (service *Service) CreateComment(context context.Context, claims *sec.AuthClaims, input CreateCommentInput) (*Comment, error) {
	if err := input.Target.Validate(); err != nil {
		return nil, err
	}

	created := &Comment{
		ID:       uuid.New(),
		Content:  input.Content,
		AuthorID: claims.UserID,
		Target:   input.Target,
		ParentID: input.ParentID,
	}

	if err := service.comments.Create(context, created); err != nil {
		return nil, fmt.Errorf("social_service_create_comment_failed: %w", err)
	}

	return created, nil
}

/*
UpdateComment replaces a comment's body. Only the author can edit; the
stored updated_at timestamp is refreshed.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string
  - body: string

Returns:
  - *Comment: Updated comment
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) UpdateComment(context context.Context, claims *sec.AuthClaims, id, body string) (*Comment, error) {
	existing, err := service.comments.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if existing.AuthorID != claims.UserID {
		return nil, apperr.Forbidden("Only the author can edit this comment")
	}

	return service.comments.UpdateContent(context, id, body)
}

/*
DeleteComment removes a comment. Authors can delete their own, admins any.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - id: string

Returns:
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) DeleteComment(context context.Context, claims *sec.AuthClaims, id string) error {
	existing, err := service.comments.GetByID(context, id)
	if err != nil {
		return err
	}

	isAdmin := claims.Role().AtLeast(sec.RoleAdmin)
	if existing.AuthorID != claims.UserID && !isAdmin {
		return apperr.Forbidden("Only the author or an admin can delete this comment")
	}

	return service.comments.Delete(context, id)
}

// # Likes

/*
ToggleLike flips the member's like on the target and reports the new state.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (must be authenticated)
  - target: hubcontent.Ref

Returns:
  - LikeState: Liked true after an insert, false after a removal
  - error: Validation or storage failures
*/
func (service *Service) ToggleLike(context context.Context, claims *sec.AuthClaims, target hubcontent.Ref) (LikeState, error) {
	if err := target.Validate(); err != nil {
		return LikeState{}, err
	}

	existing, err := service.likes.Find(context, claims.UserID, target)
	if err == nil {
		if err := service.likes.Delete(context, existing.ID); err != nil {
			return LikeState{}, fmt.Errorf("social_service_unlike_failed: %w", err)
		}
		return LikeState{Liked: false}, nil
	}
	if !apperr.IsNotFound(err) {
		return LikeState{}, err
	}

	created := &Like{
		ID:       uuid.New(),
		AuthorID: claims.UserID,
		Target:   target,
	}
	if err := service.likes.Create(context, created); err != nil {
		// A racing toggle may have inserted first; the unique constraint
		// reports it as a conflict and the like stands.
		if apperr.As(err) != nil && apperr.As(err).Code == "CONFLICT" {
			return LikeState{Liked: true}, nil
		}
		return LikeState{}, fmt.Errorf("social_service_like_failed: %w", err)
	}

	return LikeState{Liked: true}, nil
}

/*
CountLikes returns the number of likes on the target.
*/
func (service *Service) CountLikes(context context.Context, target hubcontent.Ref) (int, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	return service.likes.Count(context, target)
}

/*
UserLiked reports whether the member currently likes the target.
*/
func (service *Service) UserLiked(context context.Context, claims *sec.AuthClaims, target hubcontent.Ref) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	_, err := service.likes.Find(context, claims.UserID, target)
	if err == nil {
		return true, nil
	}
	if apperr.IsNotFound(err) {
		return false, nil
	}
	return false, err
}
