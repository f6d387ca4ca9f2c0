// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package auth implements signup, login, and password recovery.

Signup is deliberately two-phase: it creates only the private credential
and queues a provisioning job; the public profile appears asynchronously.
The signup validation sequence is ordered and short-circuiting — username
availability, then email availability, then the reserved-owner binding —
and no credential is created if any check fails.

Architecture:

  - Service: Live implementation over Postgres, Redis, and the provisioning queue.
  - GuestService: Stub wired when no backend is configured; every operation
    is rejected except sign-out, which succeeds silently.
  - TokenProvider: JWT issuance (sec package).
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/sec"
	"github.com/av3hub/avhub/internal/users/provision"
	"github.com/av3hub/avhub/pkg/uuid"
)

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username string, isAdmin bool, timeToLive time.Duration) (string, error)
}

// AdminFlagReader resolves a member's admin flag, reporting false while
// the profile is not yet provisioned.
type AdminFlagReader interface {
	AdminFlag(context context.Context, userID string) (bool, error)
}

// AuthService is the surface the HTTP handler talks to. The live
// [Service] and the [GuestService] both implement it.
type AuthService interface {
	SignUp(context context.Context, input SignUpInput) (*Credential, error)
	SignIn(context context.Context, input SignInInput) (*Session, error)
	SignOut(context context.Context) error
	RequestPasswordReset(context context.Context, email string) (string, error)
	ResetPassword(context context.Context, token, newPassword string) error
}

// Service implements the live authentication flows.
type Service struct {
	credentials CredentialRepository
	directory   ProfileDirectory
	adminFlags  AdminFlagReader
	resetTokens ResetTokenRepository
	provisionQ  provision.Queue
	tokens      TokenProvider
}

func NewService(
	credentials CredentialRepository,
	directory ProfileDirectory,
	adminFlags AdminFlagReader,
	resetTokens ResetTokenRepository,
	provisionQueue provision.Queue,
	tokens TokenProvider,
) *Service {
	return &Service{
		credentials: credentials,
		directory:   directory,
		adminFlags:  adminFlags,
		resetTokens: resetTokens,
		provisionQ:  provisionQueue,
		tokens:      tokens,
	}
}

// # Signup

// SignUpInput holds the data required to enroll a new member.
type SignUpInput struct {
	Email    string
	Password string
	Username string
}

/*
SignUp validates availability, enforces the reserved-owner binding, and
creates the credential plus a provisioning job.

The checks run in a fixed order and short-circuit; the credential store is
never touched when any of them fails.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *Credential: Created credential
  - error: Conflict, Forbidden (reserved name), or storage failures
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*Credential, error) {

	// 1. Username availability.
	usernameTaken, err := service.directory.UsernameExists(context, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_username_check_failed: %w", err)
	}
	if usernameTaken {
		return nil, apperr.Conflict("Username already taken. Please choose a different username.")
	}

	// 2. Email availability.
	emailTaken, err := service.directory.EmailExists(context, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_email_check_failed: %w", err)
	}
	if emailTaken {
		return nil, apperr.Conflict("Email already registered. Please use a different email or try signing in.")
	}

	// 3. The reserved owner username is bound to one email address.
	if input.Username == constants.OwnerUsername && input.Email != constants.OwnerEmail {
		return nil, apperr.Forbidden(fmt.Sprintf(
			"The username %s is reserved for the owner and must use the email %s",
			constants.OwnerUsername, constants.OwnerEmail,
		))
	}

	// 4. Create the credential with the username attached as metadata.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	credential := &Credential{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Username:     input.Username,
	}

	if err := service.credentials.Create(context, credential); err != nil {
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	// Queue the profile for asynchronous materialization. A queue outage
	// is surfaced: a credential without an eventual profile would strand
	// the member in the resolver's retry loop forever.
	job := provision.Job{
		UserID:   credential.ID,
		Username: credential.Username,
		Email:    credential.Email,
	}
	if err := service.provisionQ.Enqueue(context, job); err != nil {
		return nil, fmt.Errorf("auth_service_provision_enqueue_failed: %w", err)
	}

	return credential, nil
}

// # Login & Logout

// SignInInput defines credentials for an authentication attempt.
type SignInInput struct {
	Email    string
	Password string
}

// Session represents a successfully established session.
type Session struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *Credential `json:"user"`
}

/*
SignIn verifies credentials and issues a session token.

Description: Performs constant-time password comparison and embeds the
member's identity and admin flag in the signed token. Unknown emails and
wrong passwords are indistinguishable to prevent enumeration.

Parameters:
  - context: context.Context
  - input: SignInInput

Returns:
  - *Session: Transport-ready session
  - error: Unauthorized or internal failures
*/
func (service *Service) SignIn(context context.Context, input SignInInput) (*Session, error) {
	credential, err := service.credentials.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, credential.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// The admin flag lives on the profile; it reads false during the
	// provisioning window, which only delays elevated access.
	isAdmin, err := service.adminFlags.AdminFlag(context, credential.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_admin_flag_failed: %w", err)
	}

	accessToken, err := service.tokens.GenerateAccessToken(credential.ID, credential.Username, isAdmin, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(AccessTokenTTL),
		User:        credential,
	}, nil
}

// SignOut ends the session. Access tokens are stateless, so this is a
// client-side discard; the operation always succeeds.
func (service *Service) SignOut(context context.Context) error {
	return nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

NOTE: An unknown email returns success with an empty token to prevent
user enumeration.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Reset token (empty for unknown emails)
  - error: Generation or storage failures
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	credential, err := service.credentials.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(context, token, credential.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow: verifies the token,
hashes the new password, and invalidates the token.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Unauthorized (bad token) or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	userID, err := service.resetTokens.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.credentials.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	_ = service.resetTokens.Delete(context, token)

	return nil
}
