// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package program

import "time"

// CreatorSummary is the embedded creator projection attached to listings.
type CreatorSummary struct {
	Username          string  `json:"username"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// Program represents a downloadable program distributed by the platform
// owner. Unlike scripts, programs are owner-curated: only the owner can
// create, update, or delete them.
type Program struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Version     string  `json:"version"`
	DownloadURL *string `json:"download_url"`
	// FileSize is the human-readable size string shown on the card (e.g. "2.5 MB").
	FileSize      *string    `json:"file_size"`
	ThumbnailURL  *string    `json:"thumbnail_url,omitempty"`
	DownloadCount int        `json:"download_count"`
	ViewCount     int        `json:"view_count"`
	IsFeatured    bool       `json:"is_featured"`
	CreatedBy     *string    `json:"created_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`

	Creator *CreatorSummary `json:"creator,omitempty"`
}
