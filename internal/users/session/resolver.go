// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package session resolves the current authenticated identity into a
profile record.

Signup is two-phase: the credential exists immediately, but the profile
is materialized asynchronously by the provisioner. The [Resolver] owns
the retry loop that bridges that window: a missing profile is not an
error, it is a not-yet state that is polled at a fixed interval until
the record appears or the session changes.

State machine:

	Unresolved → Resolving → { Resolved, Anonymous, Guest }

Guest is terminal for the process: it is entered only when no backend
is configured, and no resolution ever runs in that mode. Anonymous is
re-enterable; any sign-in re-enters Resolving. A newer Resolve call
supersedes a pending retry for the previous subject — the superseded
loop can never publish a result.
*/
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/users/account"
)

// State identifies where the resolver is in the resolution lifecycle.
type State string

const (
	// StateUnresolved is the initial state before any resolution ran.
	StateUnresolved State = "unresolved"
	// StateResolving means a resolution loop is in flight.
	StateResolving State = "resolving"
	// StateResolved means the profile was fetched; Snapshot carries it.
	StateResolved State = "resolved"
	// StateAnonymous means no session exists, or resolution failed
	// with a non-retryable error.
	StateAnonymous State = "anonymous"
	// StateGuest is the terminal state when no backend is configured.
	StateGuest State = "guest"
)

// Snapshot is a point-in-time view of the resolver. Profile is non-nil
// only in [StateResolved].
type Snapshot struct {
	State   State
	Profile *account.Profile
}

// ProfileFetcher loads the profile behind a session subject. The live
// implementation is the account service; a NOT_FOUND error marks the
// not-yet-provisioned window and triggers a retry.
type ProfileFetcher interface {
	GetProfile(context context.Context, userID string) (*account.Profile, error)
}

// Resolver is the process-wide session resolution machine. One instance
// is created at startup and torn down with [Resolver.Close].
type Resolver struct {
	fetcher  ProfileFetcher
	logger   *slog.Logger
	interval time.Duration

	// wait blocks between retries; swapped in tests for virtual time.
	wait func(context context.Context, duration time.Duration) error

	lifetime context.Context
	teardown context.CancelFunc

	mutex   sync.Mutex
	state   State
	profile *account.Profile
	cancel  context.CancelFunc
	changed chan struct{}
}

/*
NewResolver constructs the resolver.

A nil fetcher means no backend is configured: the resolver starts in
the terminal [StateGuest] and every Resolve/Clear call is ignored.

Parameters:
  - fetcher: ProfileFetcher (nil forces guest mode)
  - retryInterval: time.Duration (<= 0 selects the default)
  - logger: *slog.Logger

Returns:
  - *Resolver: Ready resolver in Unresolved (or Guest) state
*/
func NewResolver(fetcher ProfileFetcher, retryInterval time.Duration, logger *slog.Logger) *Resolver {
	if retryInterval <= 0 {
		retryInterval = constants.ProfileRetryInterval
	}

	lifetime, teardown := context.WithCancel(context.Background())
	resolver := &Resolver{
		fetcher:  fetcher,
		logger:   logger,
		interval: retryInterval,
		wait:     sleepWait,
		lifetime: lifetime,
		teardown: teardown,
		state:    StateUnresolved,
		changed:  make(chan struct{}),
	}
	if fetcher == nil {
		resolver.state = StateGuest
	}
	return resolver
}

// sleepWait is the production wait: a timer honoring cancellation.
func sleepWait(context context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-context.Done():
		return context.Err()
	case <-timer.C:
		return nil
	}
}

// Snapshot returns the current state and, when resolved, the profile.
func (resolver *Resolver) Snapshot() Snapshot {
	resolver.mutex.Lock()
	defer resolver.mutex.Unlock()
	return Snapshot{State: resolver.state, Profile: resolver.profile}
}

/*
Resolve starts (or restarts) resolution for the given session subject.

Any in-flight loop for a previous subject is canceled first; the new
loop retries indefinitely while the profile read reports not-found,
waiting the retry interval between attempts. Any other fetch failure
transitions to Anonymous.

Parameters:
  - userID: string (session subject)
*/
func (resolver *Resolver) Resolve(userID string) {
	resolver.mutex.Lock()
	if resolver.state == StateGuest {
		resolver.mutex.Unlock()
		return
	}
	if resolver.cancel != nil {
		resolver.cancel()
	}
	loopContext, cancel := context.WithCancel(resolver.lifetime)
	resolver.cancel = cancel
	resolver.publishLocked(StateResolving, nil)
	resolver.mutex.Unlock()

	go resolver.run(loopContext, userID)
}

// Clear handles sign-out: it cancels any pending resolution and
// transitions to Anonymous.
func (resolver *Resolver) Clear() {
	resolver.mutex.Lock()
	defer resolver.mutex.Unlock()
	if resolver.state == StateGuest {
		return
	}
	if resolver.cancel != nil {
		resolver.cancel()
		resolver.cancel = nil
	}
	resolver.publishLocked(StateAnonymous, nil)
}

// Close tears the resolver down. No retry fires after Close returns;
// pending Await calls are released with the state they observe.
func (resolver *Resolver) Close() {
	resolver.teardown()
}

func (resolver *Resolver) run(loopContext context.Context, userID string) {
	for {
		profile, err := resolver.fetcher.GetProfile(loopContext, userID)
		if err == nil {
			resolver.publish(loopContext, StateResolved, profile)
			return
		}
		if loopContext.Err() != nil {
			return
		}
		if !apperr.IsNotFound(err) {
			if resolver.logger != nil {
				resolver.logger.Warn("session resolution failed",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
			}
			resolver.publish(loopContext, StateAnonymous, nil)
			return
		}
		// Not provisioned yet. Wait and re-fetch.
		if err := resolver.wait(loopContext, resolver.interval); err != nil {
			return
		}
	}
}

// publish commits a terminal loop outcome unless the loop was
// superseded or torn down in the meantime.
func (resolver *Resolver) publish(loopContext context.Context, state State, profile *account.Profile) {
	resolver.mutex.Lock()
	defer resolver.mutex.Unlock()
	if loopContext.Err() != nil {
		return
	}
	resolver.publishLocked(state, profile)
}

func (resolver *Resolver) publishLocked(state State, profile *account.Profile) {
	resolver.state = state
	resolver.profile = profile
	close(resolver.changed)
	resolver.changed = make(chan struct{})
}

/*
Await blocks until resolution settles and returns the profile.

It is the request-scoped mirror of the background loop: GET /auth/me
calls it with the request context so a client asking "who am I" right
after signup waits through the provisioning window instead of getting
a spurious not-found.

Returns:
  - *account.Profile: The resolved profile
  - error: Unauthorized (anonymous), GuestMode, or the context error
*/
func (resolver *Resolver) Await(context context.Context) (*account.Profile, error) {
	for {
		resolver.mutex.Lock()
		state, profile := resolver.state, resolver.profile
		changed := resolver.changed
		resolver.mutex.Unlock()

		switch state {
		case StateResolved:
			return profile, nil
		case StateAnonymous, StateUnresolved:
			return nil, apperr.Unauthorized("Not signed in")
		case StateGuest:
			return nil, apperr.GuestMode("Profile access")
		}

		select {
		case <-context.Done():
			return nil, context.Err()
		case <-changed:
		}
	}
}

/*
AwaitProfile is the standalone, request-scoped form of the retry loop:
it fetches the profile and, while the read reports not-found, waits the
interval and retries until the context expires.

Parameters:
  - context: context.Context (bounds the total wait)
  - fetcher: ProfileFetcher
  - userID: string
  - retryInterval: time.Duration (<= 0 selects the default)

Returns:
  - *account.Profile: The profile once provisioned
  - error: Non-retryable fetch failures or the context error
*/
func AwaitProfile(context context.Context, fetcher ProfileFetcher, userID string, retryInterval time.Duration) (*account.Profile, error) {
	if retryInterval <= 0 {
		retryInterval = constants.ProfileRetryInterval
	}
	for {
		profile, err := fetcher.GetProfile(context, userID)
		if err == nil {
			return profile, nil
		}
		if !apperr.IsNotFound(err) {
			return nil, err
		}
		if err := sleepWait(context, retryInterval); err != nil {
			return nil, err
		}
	}
}
