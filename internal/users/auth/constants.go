// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package auth

import "time"

const (
	// AccessTokenTTL is the lifetime of a signed session token.
	AccessTokenTTL = 24 * time.Hour

	// ResetTokenTTL is how long a password-reset token stays valid in Redis.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the entropy (in bytes) of a reset token.
	ResetTokenLength = 32
)
