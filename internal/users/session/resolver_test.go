// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/users/account"
)

// scriptedFetcher replays a fixed sequence of outcomes per call. Once
// the script is exhausted, the last outcome repeats.
type scriptedFetcher struct {
	mutex    sync.Mutex
	profiles []*account.Profile
	errs     []error
	calls    int
}

func (fetcher *scriptedFetcher) GetProfile(_ context.Context, _ string) (*account.Profile, error) {
	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()
	index := fetcher.calls
	if index >= len(fetcher.errs) {
		index = len(fetcher.errs) - 1
	}
	fetcher.calls++
	return fetcher.profiles[index], fetcher.errs[index]
}

func (fetcher *scriptedFetcher) callCount() int {
	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()
	return fetcher.calls
}

// notFoundTimes builds a script of n not-found outcomes followed by a
// successful fetch of the given profile.
func notFoundTimes(n int, profile *account.Profile) *scriptedFetcher {
	fetcher := &scriptedFetcher{}
	for i := 0; i < n; i++ {
		fetcher.profiles = append(fetcher.profiles, nil)
		fetcher.errs = append(fetcher.errs, apperr.NotFound("Profile"))
	}
	fetcher.profiles = append(fetcher.profiles, profile)
	fetcher.errs = append(fetcher.errs, nil)
	return fetcher
}

/*
TestResolver_RetriesThroughProvisioningWindow: three not-found reads
then a hit must end Resolved, having waited exactly three intervals,
with zero further fetches after success.
*/
func TestResolver_RetriesThroughProvisioningWindow(t *testing.T) {
	profile := &account.Profile{ID: "u1", Username: "Newbie"}
	fetcher := notFoundTimes(3, profile)

	resolver := NewResolver(fetcher, time.Minute, nil)
	defer resolver.Close()

	var waitsMutex sync.Mutex
	waits := 0
	resolver.wait = func(_ context.Context, _ time.Duration) error {
		waitsMutex.Lock()
		waits++
		waitsMutex.Unlock()
		return nil
	}

	resolver.Resolve("u1")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resolved, err := resolver.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Newbie", resolved.Username)

	snapshot := resolver.Snapshot()
	assert.Equal(t, StateResolved, snapshot.State)
	assert.Equal(t, 4, fetcher.callCount())
	waitsMutex.Lock()
	assert.Equal(t, 3, waits)
	waitsMutex.Unlock()
}

// TestResolver_NonRetryableErrorGoesAnonymous: anything other than a
// not-found read settles in Anonymous instead of retrying.
func TestResolver_NonRetryableErrorGoesAnonymous(t *testing.T) {
	fetcher := &scriptedFetcher{
		profiles: []*account.Profile{nil},
		errs:     []error{errors.New("connection refused")},
	}

	resolver := NewResolver(fetcher, time.Minute, nil)
	defer resolver.Close()

	resolver.Resolve("u1")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := resolver.Await(ctx)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	assert.Equal(t, StateAnonymous, resolver.Snapshot().State)
	assert.Equal(t, 1, fetcher.callCount())
}

/*
TestResolver_NewSessionSupersedesPendingRetry: a sign-in for a second
subject must cancel the first subject's pending retry; the superseded
loop never publishes.
*/
func TestResolver_NewSessionSupersedesPendingRetry(t *testing.T) {
	second := &account.Profile{ID: "u2", Username: "Second"}

	// u1 never provisions; u2 resolves on the first read.
	fetcher := &switchingFetcher{second: second}

	resolver := NewResolver(fetcher, time.Minute, nil)
	defer resolver.Close()

	// The wait parks until the loop is canceled, pinning the first
	// loop inside its retry gap.
	resolver.wait = func(waitContext context.Context, _ time.Duration) error {
		<-waitContext.Done()
		return waitContext.Err()
	}

	resolver.Resolve("u1")
	fetcher.awaitFirstFetch(t)

	resolver.Resolve("u2")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resolved, err := resolver.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second", resolved.Username)
	assert.Equal(t, StateResolved, resolver.Snapshot().State)
}

// switchingFetcher reports not-found for u1 and success for u2.
type switchingFetcher struct {
	second     *account.Profile
	firstFetch sync.Once
	fetched    chan struct{}
	initOnce   sync.Once
}

func (fetcher *switchingFetcher) init() {
	fetcher.initOnce.Do(func() { fetcher.fetched = make(chan struct{}) })
}

func (fetcher *switchingFetcher) GetProfile(_ context.Context, userID string) (*account.Profile, error) {
	fetcher.init()
	if userID == "u2" {
		return fetcher.second, nil
	}
	fetcher.firstFetch.Do(func() { close(fetcher.fetched) })
	return nil, apperr.NotFound("Profile")
}

func (fetcher *switchingFetcher) awaitFirstFetch(t *testing.T) {
	t.Helper()
	fetcher.init()
	select {
	case <-fetcher.fetched:
	case <-time.After(5 * time.Second):
		t.Fatal("first fetch never happened")
	}
}

// TestResolver_ClearGoesAnonymous: sign-out cancels any pending loop
// and lands in Anonymous.
func TestResolver_ClearGoesAnonymous(t *testing.T) {
	fetcher := notFoundTimes(0, &account.Profile{ID: "u1", Username: "Member"})

	resolver := NewResolver(fetcher, time.Minute, nil)
	defer resolver.Close()

	resolver.Resolve("u1")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := resolver.Await(ctx)
	require.NoError(t, err)

	resolver.Clear()
	assert.Equal(t, StateAnonymous, resolver.Snapshot().State)
	assert.Nil(t, resolver.Snapshot().Profile)
}

// TestResolver_GuestModeIsTerminal: a nil fetcher means no backend;
// the resolver is born Guest and resolution requests are ignored.
func TestResolver_GuestModeIsTerminal(t *testing.T) {
	resolver := NewResolver(nil, 0, nil)
	defer resolver.Close()

	assert.Equal(t, StateGuest, resolver.Snapshot().State)

	resolver.Resolve("u1")
	resolver.Clear()
	assert.Equal(t, StateGuest, resolver.Snapshot().State)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := resolver.Await(ctx)
	require.Error(t, err)
	assert.True(t, apperr.IsGuestMode(err))
}

// TestAwaitProfile_BoundedByContext: the request-scoped retry form
// gives up when its context expires.
func TestAwaitProfile_BoundedByContext(t *testing.T) {
	fetcher := &scriptedFetcher{
		profiles: []*account.Profile{nil},
		errs:     []error{apperr.NotFound("Profile")},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := AwaitProfile(ctx, fetcher, "u1", 5*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, fetcher.callCount(), 2)
}

// TestAwaitProfile_SucceedsAfterWindow mirrors the background loop's
// retry behavior in the request-scoped helper.
func TestAwaitProfile_SucceedsAfterWindow(t *testing.T) {
	profile := &account.Profile{ID: "u1", Username: "Newbie"}
	fetcher := notFoundTimes(2, profile)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resolved, err := AwaitProfile(ctx, fetcher, "u1", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "Newbie", resolved.Username)
	assert.Equal(t, 3, fetcher.callCount())
}
