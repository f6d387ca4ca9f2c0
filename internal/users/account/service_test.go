// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package account

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/storage"
	"github.com/av3hub/avhub/internal/users/provision"
	"github.com/av3hub/avhub/pkg/pointer"
)

type fakeProfileRepository struct {
	profiles map[string]*Profile
}

func newFakeProfileRepository(profiles ...*Profile) *fakeProfileRepository {
	repo := &fakeProfileRepository{profiles: make(map[string]*Profile)}
	for _, p := range profiles {
		repo.profiles[p.ID] = p
	}
	return repo
}

func (repo *fakeProfileRepository) GetByID(_ context.Context, id string) (*Profile, error) {
	if p, ok := repo.profiles[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Profile")
}

func (repo *fakeProfileRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, p := range repo.profiles {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeProfileRepository) EmailExists(_ context.Context, email string) (bool, error) {
	for _, p := range repo.profiles {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeProfileRepository) Update(_ context.Context, profile *Profile) error {
	if _, ok := repo.profiles[profile.ID]; !ok {
		return apperr.NotFound("Profile")
	}
	repo.profiles[profile.ID] = profile
	return nil
}

func (repo *fakeProfileRepository) CreateProfile(_ context.Context, job provision.Job) error {
	repo.profiles[job.UserID] = &Profile{
		ID:        job.UserID,
		Username:  job.Username,
		Email:     job.Email,
		CreatedAt: time.Now(),
	}
	return nil
}

type fakeSettingsRepository struct {
	rows map[string]*Settings
}

func newFakeSettingsRepository() *fakeSettingsRepository {
	return &fakeSettingsRepository{rows: make(map[string]*Settings)}
}

func (repo *fakeSettingsRepository) Get(_ context.Context, userID string) (*Settings, error) {
	if s, ok := repo.rows[userID]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("Settings")
}

func (repo *fakeSettingsRepository) Upsert(_ context.Context, settings *Settings) error {
	repo.rows[settings.UserID] = settings
	return nil
}

// recordingBlobStore captures uploads and returns deterministic URLs.
type recordingBlobStore struct {
	uploads map[string]string
}

func (store *recordingBlobStore) Upload(_ context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	if store.uploads == nil {
		store.uploads = make(map[string]string)
	}
	store.uploads[bucket+"/"+key] = contentType
	return "https://cdn.av3hub.app/" + bucket + "/" + key, nil
}

func (store *recordingBlobStore) PublicURL(bucket, key string) string {
	return "https://cdn.av3hub.app/" + bucket + "/" + key
}

func (store *recordingBlobStore) Delete(_ context.Context, bucket, key string) error {
	return nil
}

/*
TestService_UploadProfilePicture verifies the avatar flow: blob upload
under a per-user key, then the profile points at the public URL.
*/
func TestService_UploadProfilePicture(t *testing.T) {
	profiles := newFakeProfileRepository(&Profile{ID: "u1", Username: "member", Email: "m@example.com"})
	blobs := &recordingBlobStore{}
	service := NewService(profiles, newFakeSettingsRepository(), blobs, slog.Default())

	updated, err := service.UploadProfilePicture(
		context.Background(), "u1", "selfie.PNG", strings.NewReader("imagebytes"), "image/png",
	)
	require.NoError(t, err)

	require.NotNil(t, updated.ProfilePictureURL)
	assert.Equal(t, "https://cdn.av3hub.app/avatars/u1/avatar.png", *updated.ProfilePictureURL)
	assert.Contains(t, blobs.uploads, "avatars/u1/avatar.png")

	_, err = service.UploadProfilePicture(
		context.Background(), "u1", "noextension", strings.NewReader("x"), "image/png",
	)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Settings verifies the default fallback, the merge-on-update
behavior, and theme validation.
*/
func TestService_Settings(t *testing.T) {
	service := NewService(newFakeProfileRepository(), newFakeSettingsRepository(), &recordingBlobStore{}, slog.Default())

	// Never saved: defaults.
	settings, err := service.GetSettings(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, settings.Theme)
	assert.True(t, settings.EmailNotifications)

	// Partial update flips only what was sent.
	saved, err := service.UpdateSettings(context.Background(), "u1", UpdateSettingsInput{
		Theme:              pointer.To(ThemeLight),
		EmailNotifications: pointer.To(false),
	})
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, saved.Theme)
	assert.False(t, saved.EmailNotifications)
	assert.True(t, saved.CommentNotifications)

	// Round-trip.
	settings, err = service.GetSettings(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, settings.Theme)

	// Unknown theme rejected.
	_, err = service.UpdateSettings(context.Background(), "u1", UpdateSettingsInput{
		Theme: pointer.To(Theme("solarized")),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestGuestStores verifies guest mode: settings read the default dark theme,
every write is rejected with the guest-mode error.
*/
func TestGuestStores(t *testing.T) {
	var blobs storage.BlobStore = storage.NewGuestStore()
	service := NewService(NewGuestProfileRepository(), NewGuestSettingsRepository(), blobs, slog.Default())

	settings, err := service.GetSettings(context.Background(), "anyone")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, settings.Theme)

	_, err = service.UpdateSettings(context.Background(), "anyone", UpdateSettingsInput{
		Theme: pointer.To(ThemeLight),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsGuestMode(err))

	_, err = service.GetProfile(context.Background(), "anyone")
	require.Error(t, err)
	assert.True(t, apperr.IsGuestMode(err))

	_, err = service.UploadProfilePicture(context.Background(), "anyone", "a.png", strings.NewReader("x"), "image/png")
	require.Error(t, err)
	assert.True(t, apperr.IsGuestMode(err))
}
