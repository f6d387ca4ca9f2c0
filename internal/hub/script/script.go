// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package script

import "time"

// AuthorSummary is the embedded author projection attached to feed items.
type AuthorSummary struct {
	Username          string  `json:"username"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// Script represents a shared script in the hub catalog.
//
// Unverified scripts are excluded from the public feed; they remain visible
// to their author and to admins until an admin flips IsVerified.
type Script struct {
	ID          string  `json:"id"`
	AuthorID    *string `json:"user_id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	// Content is the inline script body shown in the detail view.
	Content      *string   `json:"script_content,omitempty"`
	FileURL      *string   `json:"file_url,omitempty"`
	Slug         string    `json:"slug"`
	IsVerified   bool      `json:"is_verified"`
	ViewCount    int       `json:"view_count"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Author is populated on reads via a join against the profile table.
	Author *AuthorSummary `json:"user,omitempty"`
}
