// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package account

import (
	"context"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/users/provision"
)

// GuestProfileRepository is the guest-mode profile store: no profiles
// exist and nothing can be written.
type GuestProfileRepository struct{}

func NewGuestProfileRepository() *GuestProfileRepository {
	return &GuestProfileRepository{}
}

func (repository *GuestProfileRepository) GetByID(context context.Context, id string) (*Profile, error) {
	return nil, apperr.GuestMode("Profile access")
}

func (repository *GuestProfileRepository) UsernameExists(context context.Context, username string) (bool, error) {
	return false, nil
}

func (repository *GuestProfileRepository) EmailExists(context context.Context, email string) (bool, error) {
	return false, nil
}

func (repository *GuestProfileRepository) Update(context context.Context, profile *Profile) error {
	return apperr.GuestMode("Profile updates")
}

func (repository *GuestProfileRepository) CreateProfile(context context.Context, job provision.Job) error {
	return apperr.GuestMode("Profile provisioning")
}

func (repository *GuestProfileRepository) AdminFlag(context context.Context, userID string) (bool, error) {
	return false, nil
}

// GuestSettingsRepository reads the default dark theme and rejects writes.
type GuestSettingsRepository struct{}

func NewGuestSettingsRepository() *GuestSettingsRepository {
	return &GuestSettingsRepository{}
}

func (repository *GuestSettingsRepository) Get(context context.Context, userID string) (*Settings, error) {
	return DefaultSettings(userID), nil
}

func (repository *GuestSettingsRepository) Upsert(context context.Context, settings *Settings) error {
	return apperr.GuestMode("Settings updates")
}
