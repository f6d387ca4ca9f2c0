// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package view

import (
	"sync"
	"time"

	"github.com/av3hub/avhub/internal/platform/constants"
)

// GuestPrompt is the pure, time-keyed schedule of the guest sign-up
// prompt. It first becomes visible a fixed delay after entering guest
// mode; "continue as guest" pushes it away for a longer delay, and
// "sign up" dismisses it for the rest of the session.
//
// The schedule is queried with explicit instants, so tests drive it
// with virtual time; [GuestPromptTimer] binds it to the wall clock.
type GuestPrompt struct {
	showAt    time.Time
	dismissed bool
}

// NewGuestPrompt arms the prompt at the moment guest mode is entered.
func NewGuestPrompt(entered time.Time) *GuestPrompt {
	return &GuestPrompt{showAt: entered.Add(constants.GuestPromptInitialDelay)}
}

// VisibleAt reports whether the prompt is shown at the given instant.
func (p *GuestPrompt) VisibleAt(now time.Time) bool {
	return !p.dismissed && !now.Before(p.showAt)
}

// ContinueAsGuest hides the prompt and re-arms it after the longer
// re-arm delay.
func (p *GuestPrompt) ContinueAsGuest(now time.Time) {
	p.showAt = now.Add(constants.GuestPromptRearmDelay)
}

// SignUp dismisses the prompt permanently; the caller drives the auth
// form switch to the sign-up form.
func (p *GuestPrompt) SignUp() {
	p.dismissed = true
}

// Dismissed reports whether the prompt was permanently dismissed.
func (p *GuestPrompt) Dismissed() bool {
	return p.dismissed
}

// ShowAt returns the next instant the prompt becomes visible.
func (p *GuestPrompt) ShowAt() time.Time {
	return p.showAt
}

// GuestPromptTimer binds a [GuestPrompt] schedule to the wall clock,
// invoking onShow when the prompt comes due. Stop releases the pending
// timer; nothing fires after Stop returns.
type GuestPromptTimer struct {
	mutex  sync.Mutex
	prompt *GuestPrompt
	onShow func()
	timer  *time.Timer
	closed bool
}

func NewGuestPromptTimer(now time.Time, onShow func()) *GuestPromptTimer {
	t := &GuestPromptTimer{
		prompt: NewGuestPrompt(now),
		onShow: onShow,
	}
	t.schedule(now)
	return t
}

// ContinueAsGuest re-arms the prompt for the longer delay.
func (t *GuestPromptTimer) ContinueAsGuest(now time.Time) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.closed {
		return
	}
	t.prompt.ContinueAsGuest(now)
	t.scheduleLocked(now)
}

// SignUp dismisses the prompt for the session and drives the auth form
// switch toward sign-up. The switch routes through login first, so the
// reset form never jumps straight to sign-up.
func (t *GuestPromptTimer) SignUp(modeSwitch *AuthModeSwitch) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.prompt.SignUp()
	t.stopTimerLocked()
	if modeSwitch != nil {
		modeSwitch.ShowLogin()
		modeSwitch.ShowSignUp()
	}
}

// Stop releases the pending timer on teardown.
func (t *GuestPromptTimer) Stop() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.closed = true
	t.stopTimerLocked()
}

func (t *GuestPromptTimer) schedule(now time.Time) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.scheduleLocked(now)
}

func (t *GuestPromptTimer) scheduleLocked(now time.Time) {
	t.stopTimerLocked()
	delay := t.prompt.ShowAt().Sub(now)
	t.timer = time.AfterFunc(delay, func() {
		t.mutex.Lock()
		fire := !t.closed && !t.prompt.Dismissed()
		t.mutex.Unlock()
		if fire && t.onShow != nil {
			t.onShow()
		}
	})
}

func (t *GuestPromptTimer) stopTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
