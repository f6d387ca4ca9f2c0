// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package social

import (
	"time"

	"github.com/av3hub/avhub/internal/hub/content"
)

// AuthorSummary is the embedded author projection attached to comments.
type AuthorSummary struct {
	Username          string  `json:"username"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// Comment is a threaded comment on a script or program.
type Comment struct {
	ID       string      `json:"id"`
	Content  string      `json:"content"`
	AuthorID string      `json:"user_id"`
	Target   content.Ref `json:"target"`
	// ParentID links a reply to its parent comment.
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *AuthorSummary `json:"user,omitempty"`
}

// Like records one member's like on a script or program. At most one like
// per (author, target) pair exists; the toggle operation flips it.
type Like struct {
	ID        string      `json:"id"`
	AuthorID  string      `json:"user_id"`
	Target    content.Ref `json:"target"`
	CreatedAt time.Time   `json:"created_at"`
}

// LikeState is the toggle result returned to the client.
type LikeState struct {
	Liked bool `json:"liked"`
}
