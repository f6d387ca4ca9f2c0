// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package account manages member profiles and preferences.

It covers profile reads and partial updates, avatar uploads through the
blob store, and the settings record with its guest-mode defaults.
*/
package account

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/storage"
)

type Service struct {
	profiles ProfileRepository
	settings SettingsRepository
	blobs    storage.BlobStore
	logger   *slog.Logger
}

func NewService(profiles ProfileRepository, settings SettingsRepository, blobs storage.BlobStore, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		settings: settings,
		blobs:    blobs,
		logger:   logger,
	}
}

// # Profiles

/*
GetProfile fetches a member's public profile.

A NotFound result can mean the profile has not been provisioned yet; the
session resolver treats that case as retryable.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: The profile
  - error: NotFound or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	return service.profiles.GetByID(context, userID)
}

// UpdateProfileInput holds the optional fields of a partial profile update.
type UpdateProfileInput struct {
	ProfilePictureURL *string
}

/*
UpdateProfile applies a partial update to the caller's own profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *Profile: Updated profile
  - error: NotFound or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*Profile, error) {
	existing, err := service.profiles.GetByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.ProfilePictureURL != nil {
		existing.ProfilePictureURL = input.ProfilePictureURL
	}

	if err := service.profiles.Update(context, existing); err != nil {
		return nil, fmt.Errorf("account_service_update_profile_failed: %w", err)
	}

	return existing, nil
}

/*
UploadProfilePicture stores the avatar under a per-user key and points the
profile at its public URL.

Parameters:
  - context: context.Context
  - userID: string
  - filename: string (used only for its extension)
  - body: io.Reader
  - contentType: string

Returns:
  - *Profile: Updated profile
  - error: Upload or storage failures
*/
func (service *Service) UploadProfilePicture(context context.Context, userID, filename string, body io.Reader, contentType string) (*Profile, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		return nil, apperr.ValidationError("File must have an extension", apperr.FieldError{
			Field:   "file",
			Message: "missing extension",
		})
	}

	key := userID + "/avatar" + ext
	url, err := service.blobs.Upload(context, constants.BucketAvatars, key, body, contentType)
	if err != nil {
		return nil, err
	}

	return service.UpdateProfile(context, userID, UpdateProfileInput{ProfilePictureURL: &url})
}

// # Settings

/*
GetSettings returns the member's preferences, falling back to
[DefaultSettings] when none were ever saved.
*/
func (service *Service) GetSettings(context context.Context, userID string) (*Settings, error) {
	stored, err := service.settings.Get(context, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return DefaultSettings(userID), nil
		}
		return nil, err
	}
	return stored, nil
}

// UpdateSettingsInput holds the optional fields of a settings update.
type UpdateSettingsInput struct {
	Theme                *Theme
	EmailNotifications   *bool
	CommentNotifications *bool
	LikeNotifications    *bool
}

/*
UpdateSettings merges the input over the current (or default) settings and
persists the result.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateSettingsInput

Returns:
  - *Settings: Saved settings
  - error: Validation or storage failures
*/
func (service *Service) UpdateSettings(context context.Context, userID string, input UpdateSettingsInput) (*Settings, error) {
	if input.Theme != nil && *input.Theme != ThemeLight && *input.Theme != ThemeDark {
		return nil, apperr.ValidationError("Invalid theme", apperr.FieldError{
			Field:   "theme",
			Message: "must be \"light\" or \"dark\"",
		})
	}

	current, err := service.GetSettings(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Theme != nil {
		current.Theme = *input.Theme
	}
	if input.EmailNotifications != nil {
		current.EmailNotifications = *input.EmailNotifications
	}
	if input.CommentNotifications != nil {
		current.CommentNotifications = *input.CommentNotifications
	}
	if input.LikeNotifications != nil {
		current.LikeNotifications = *input.LikeNotifications
	}
	current.UpdatedAt = time.Now().UTC()

	if err := service.settings.Upsert(context, current); err != nil {
		return nil, fmt.Errorf("account_service_update_settings_failed: %w", err)
	}

	return current, nil
}
