// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package account

import (
	"context"

	"github.com/av3hub/avhub/internal/users/provision"
)

// ProfileRepository is the persistence contract for public profiles.
// The Postgres implementation doubles as the provisioner's profile writer.
type ProfileRepository interface {
	GetByID(context context.Context, id string) (*Profile, error)
	UsernameExists(context context.Context, username string) (bool, error)
	EmailExists(context context.Context, email string) (bool, error)
	Update(context context.Context, profile *Profile) error
	CreateProfile(context context.Context, job provision.Job) error
}

// SettingsRepository is the persistence contract for member preferences.
type SettingsRepository interface {
	// Get returns the stored settings, or a NotFound error when the
	// member never saved any.
	Get(context context.Context, userID string) (*Settings, error)
	Upsert(context context.Context, settings *Settings) error
}
