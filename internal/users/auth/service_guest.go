// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package auth

import (
	"context"
	"net/http"

	"github.com/av3hub/avhub/internal/platform/apperr"
)

// GuestService is the [AuthService] wired when no backend is configured.
// Every operation is rejected except sign-out, which succeeds silently so
// a stale client session can always be discarded.
type GuestService struct{}

func NewGuestService() *GuestService {
	return &GuestService{}
}

func guestAuthError(message string) *apperr.AppError {
	return &apperr.AppError{
		Code:       "GUEST_MODE",
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func (service *GuestService) SignUp(context context.Context, input SignUpInput) (*Credential, error) {
	return nil, guestAuthError("Authentication is not available in guest mode. Please contact the administrator.")
}

func (service *GuestService) SignIn(context context.Context, input SignInInput) (*Session, error) {
	return nil, guestAuthError("Authentication is not available in guest mode.")
}

func (service *GuestService) SignOut(context context.Context) error {
	return nil
}

func (service *GuestService) RequestPasswordReset(context context.Context, email string) (string, error) {
	return "", guestAuthError("Password reset is not available in guest mode.")
}

func (service *GuestService) ResetPassword(context context.Context, token, newPassword string) error {
	return guestAuthError("Password reset is not available in guest mode.")
}
