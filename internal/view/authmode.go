// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package view holds the client-facing state machines the API exposes to
drive the hub's screens: the auth form switch, the role-filtered
dashboard tab set, per-kind modal visibility, and the guest sign-up
prompt schedule.

Each machine is independent; the only shared inputs are the read-only
identity and derived role. None of them fails on an invalid transition:
a transition that is not allowed from the current state is silently
ignored, never an error.
*/
package view

// AuthMode identifies which authentication form is shown.
type AuthMode string

const (
	ModeLogin  AuthMode = "login"
	ModeSignUp AuthMode = "signup"
	ModeReset  AuthMode = "reset"
)

// AuthModeSwitch is the auth-screen form selector. It starts on the
// login form. The reset form can only be reached from login ("forgot
// password"), and never moves directly to sign-up; the way out of
// reset is always back to login.
type AuthModeSwitch struct {
	mode AuthMode
}

func NewAuthModeSwitch() *AuthModeSwitch {
	return &AuthModeSwitch{mode: ModeLogin}
}

// Mode returns the currently visible form.
func (s *AuthModeSwitch) Mode() AuthMode {
	return s.mode
}

// ShowLogin navigates back to the login form. Allowed from any state.
func (s *AuthModeSwitch) ShowLogin() {
	s.mode = ModeLogin
}

// ShowSignUp navigates to the sign-up form. Ignored while the reset
// form is shown; reset exits to login only.
func (s *AuthModeSwitch) ShowSignUp() {
	if s.mode == ModeReset {
		return
	}
	s.mode = ModeSignUp
}

// ShowReset navigates to the forgot-password form. The link lives on
// the login form, so the transition is only honored from there.
func (s *AuthModeSwitch) ShowReset() {
	if s.mode != ModeLogin {
		return
	}
	s.mode = ModeReset
}
