// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package auth

import (
	"context"
	"time"
)

// CredentialRepository is the persistence contract for authentication
// records.
type CredentialRepository interface {
	Create(context context.Context, credential *Credential) error
	FindByEmail(context context.Context, email string) (*Credential, error)
	FindByID(context context.Context, id string) (*Credential, error)
	UpdatePassword(context context.Context, id, passwordHash string) error
}

// ProfileDirectory answers the uniqueness questions asked during signup.
// It is backed by the profile store in live mode.
type ProfileDirectory interface {
	UsernameExists(context context.Context, username string) (bool, error)
	EmailExists(context context.Context, email string) (bool, error)
}

// ResetTokenRepository stores volatile password-reset tokens keyed by
// their digest.
type ResetTokenRepository interface {
	Set(context context.Context, token, userID string, timeToLive time.Duration) error
	// Get resolves the user ID behind a token, or an Unauthorized error
	// when the token is unknown or expired.
	Get(context context.Context, token string) (string, error)
	Delete(context context.Context, token string) error
}
