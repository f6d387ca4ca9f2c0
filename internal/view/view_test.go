// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package view

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/sec"
)

/*
TestAuthModeSwitch walks the allowed navigation graph and asserts the
one forbidden edge: reset never moves directly to sign-up.
*/
func TestAuthModeSwitch(t *testing.T) {
	s := NewAuthModeSwitch()
	assert.Equal(t, ModeLogin, s.Mode())

	s.ShowSignUp()
	assert.Equal(t, ModeSignUp, s.Mode())

	// The forgot-password link lives on the login form only.
	s.ShowReset()
	assert.Equal(t, ModeSignUp, s.Mode())

	s.ShowLogin()
	s.ShowReset()
	assert.Equal(t, ModeReset, s.Mode())

	// Reset never transitions directly to sign-up.
	s.ShowSignUp()
	assert.Equal(t, ModeReset, s.Mode())

	s.ShowLogin()
	s.ShowSignUp()
	assert.Equal(t, ModeSignUp, s.Mode())
}

func ownerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "u-owner", Username: constants.OwnerUsername}
}

func adminClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "u-admin", Username: "Moderator", IsAdmin: true}
}

func memberClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "u-member", Username: "Member"}
}

/*
TestAllowedTabs pins the role-filtered tab sets: guests browse only,
members and admins share the standard set, the owner sees everything.
*/
func TestAllowedTabs(t *testing.T) {
	tests := []struct {
		name   string
		claims *sec.AuthClaims
		want   []Tab
	}{
		{
			name:   "guest or anonymous",
			claims: nil,
			want:   []Tab{TabBrowse},
		},
		{
			name:   "regular member",
			claims: memberClaims(),
			want:   []Tab{TabBrowse, TabUpload, TabSettings},
		},
		{
			name:   "admin shares the member set",
			claims: adminClaims(),
			want:   []Tab{TabBrowse, TabUpload, TabSettings},
		},
		{
			name:   "owner",
			claims: ownerClaims(),
			want:   []Tab{TabBrowse, TabUpload, TabSettings, TabOwnerPosts, TabUsers},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AllowedTabs(tc.claims))
		})
	}
}

/*
TestDashboardTabs_SelectOutsideAllowedSet: selecting a tab the current
role cannot see must be ignored, never an error, and an identity
downgrade must evict the active tab back to browse.
*/
func TestDashboardTabs_SelectOutsideAllowedSet(t *testing.T) {
	tabs := NewDashboardTabs(nil)
	assert.Equal(t, TabBrowse, tabs.Active())

	// A guest cannot reach upload or the owner surfaces.
	assert.False(t, tabs.Select(TabUpload))
	assert.False(t, tabs.Select(TabUsers))
	assert.Equal(t, TabBrowse, tabs.Active())

	// Signing in as the owner unlocks everything.
	tabs.SetIdentity(ownerClaims())
	assert.True(t, tabs.Select(TabOwnerPosts))
	assert.Equal(t, TabOwnerPosts, tabs.Active())

	// Signing out evicts the now-forbidden active tab.
	tabs.SetIdentity(nil)
	assert.Equal(t, TabBrowse, tabs.Active())

	// A member never gains the owner surfaces.
	tabs.SetIdentity(memberClaims())
	assert.True(t, tabs.Select(TabSettings))
	assert.False(t, tabs.Select(TabOwnerPosts))
	assert.Equal(t, TabSettings, tabs.Active())
}

// TestModals_Independent: modal kinds do not interact; opening one
// never closes another.
func TestModals_Independent(t *testing.T) {
	modals := NewModals()

	modals.Open(ModalScriptDetail, "mock-1")
	modals.Open(ModalProgramDetail, "prog-1")
	assert.True(t, modals.IsOpen(ModalScriptDetail))
	assert.True(t, modals.IsOpen(ModalProgramDetail))

	entityID, ok := modals.Entity(ModalScriptDetail)
	require.True(t, ok)
	assert.Equal(t, "mock-1", entityID)

	modals.Close(ModalScriptDetail)
	assert.False(t, modals.IsOpen(ModalScriptDetail))
	assert.True(t, modals.IsOpen(ModalProgramDetail))

	// Closing something that is not open is a no-op.
	modals.Close(ModalGuestUpsell)

	modals.CloseAll()
	assert.False(t, modals.IsOpen(ModalProgramDetail))
}

/*
TestGuestPrompt_Schedule drives the prompt with virtual time: hidden at
29s, visible at 30s; after "continue as guest," hidden 119s later and
visible at 120s; "sign up" dismisses it for good.
*/
func TestGuestPrompt_Schedule(t *testing.T) {
	entered := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	prompt := NewGuestPrompt(entered)

	assert.False(t, prompt.VisibleAt(entered.Add(29*time.Second)))
	assert.True(t, prompt.VisibleAt(entered.Add(30*time.Second)))

	continued := entered.Add(45 * time.Second)
	prompt.ContinueAsGuest(continued)
	assert.False(t, prompt.VisibleAt(continued.Add(119*time.Second)))
	assert.True(t, prompt.VisibleAt(continued.Add(120*time.Second)))

	prompt.SignUp()
	assert.False(t, prompt.VisibleAt(continued.Add(10*time.Minute)))
	assert.True(t, prompt.Dismissed())
}

// TestGuestPromptTimer_SignUpDrivesAuthSwitch: signing up from the
// prompt dismisses it and lands the auth screen on the sign-up form.
func TestGuestPromptTimer_SignUpDrivesAuthSwitch(t *testing.T) {
	var fired atomic.Bool
	timer := NewGuestPromptTimer(time.Now(), func() { fired.Store(true) })
	defer timer.Stop()

	modeSwitch := NewAuthModeSwitch()
	modeSwitch.ShowReset()
	require.Equal(t, ModeReset, modeSwitch.Mode())

	timer.SignUp(modeSwitch)
	assert.Equal(t, ModeSignUp, modeSwitch.Mode())
	assert.False(t, fired.Load(), "a dismissed prompt must not fire")
}

// TestGuestPromptTimer_StopPreventsFiring: after teardown nothing
// fires, even once the schedule comes due.
func TestGuestPromptTimer_StopPreventsFiring(t *testing.T) {
	var fired atomic.Bool

	// Start so the prompt comes due 50ms from now, then stop before it does.
	entered := time.Now().Add(-constants.GuestPromptInitialDelay + 50*time.Millisecond)
	timer := NewGuestPromptTimer(entered, func() { fired.Store(true) })

	timer.Stop()
	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired.Load())
}
