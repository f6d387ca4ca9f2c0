// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package account

import "time"

// Profile is a member's public identity record. It is materialized
// asynchronously after signup by the provisioner, so a freshly created
// credential can briefly exist without one.
type Profile struct {
	ID                string    `json:"user_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	IsAdmin           bool      `json:"is_admin"`
	CreatedAt         time.Time `json:"created_at"`
}

// Theme is a UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings holds a member's preferences. Absent rows read as
// [DefaultSettings].
type Settings struct {
	UserID               string    `json:"user_id"`
	Theme                Theme     `json:"theme"`
	EmailNotifications   bool      `json:"email_notifications"`
	CommentNotifications bool      `json:"comment_notifications"`
	LikeNotifications    bool      `json:"like_notifications"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DefaultSettings are the preferences applied before a member ever saves
// any, and the read-only settings shown in guest mode.
func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:               userID,
		Theme:                ThemeDark,
		EmailNotifications:   true,
		CommentNotifications: true,
		LikeNotifications:    true,
	}
}
