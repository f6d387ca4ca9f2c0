// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package auth

import "time"

// Credential is the private authentication record created at signup.
//
// The public identity (users.profile) is materialized asynchronously by
// the provisioner; Username is carried here as signup metadata so the
// provisioning job and early sessions have it before the profile exists.
type Credential struct {
	ID           string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}
