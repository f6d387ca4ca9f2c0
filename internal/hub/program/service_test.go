// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package program

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/sec"
	"github.com/av3hub/avhub/pkg/pagination"
	"github.com/av3hub/avhub/pkg/pointer"
)

type fakeRepository struct {
	programs map[string]*Program
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{programs: make(map[string]*Program)}
}

func (repo *fakeRepository) List(_ context.Context, _ pagination.Params) ([]*Program, int, error) {
	out := make([]*Program, 0, len(repo.programs))
	for _, p := range repo.programs {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (repo *fakeRepository) GetByID(_ context.Context, id string) (*Program, error) {
	if p, ok := repo.programs[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Program")
}

func (repo *fakeRepository) Create(_ context.Context, p *Program) error {
	repo.programs[p.ID] = p
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, p *Program) error {
	repo.programs[p.ID] = p
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	delete(repo.programs, id)
	return nil
}

func (repo *fakeRepository) IncrementViews(_ context.Context, id string) error {
	if p, ok := repo.programs[id]; ok {
		p.ViewCount++
	}
	return nil
}

func (repo *fakeRepository) IncrementDownloads(_ context.Context, id string) error {
	if p, ok := repo.programs[id]; ok {
		p.DownloadCount++
	}
	return nil
}

func ownerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "owner-1", Username: constants.OwnerUsername}
}

func adminClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "admin-1", Username: "moderator", IsAdmin: true}
}

/*
TestService_CreateProgram_OwnerOnly verifies that program curation is
restricted to the owner: even admins are rejected.
*/
func TestService_CreateProgram_OwnerOnly(t *testing.T) {
	service := NewService(newFakeRepository(), slog.Default())

	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		allowed bool
	}{
		{"nil claims", nil, false},
		{"regular member", &sec.AuthClaims{UserID: "u1", Username: "member"}, false},
		{"admin", adminClaims(), false},
		{"owner", ownerClaims(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := service.CreateProgram(context.Background(), tt.claims, CreateInput{
				Title:   "BypassAC Pro",
				Version: "2.1.0",
			})
			if tt.allowed {
				require.NoError(t, err)
				assert.Zero(t, created.ViewCount)
				assert.Zero(t, created.DownloadCount)
			} else {
				require.Error(t, err)
				assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
			}
		})
	}
}

/*
TestService_UpdateProgram verifies partial updates refresh updated_at and
leave untouched fields alone.
*/
func TestService_UpdateProgram(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo, slog.Default())

	created, err := service.CreateProgram(context.Background(), ownerClaims(), CreateInput{
		Title:       "Script Injector",
		Version:     "1.8.3",
		Description: pointer.To("Easy-to-use script injection tool."),
	})
	require.NoError(t, err)
	require.Nil(t, created.UpdatedAt)

	updated, err := service.UpdateProgram(context.Background(), ownerClaims(), created.ID, UpdateInput{
		Version:    pointer.To("1.9.0"),
		IsFeatured: pointer.To(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "1.9.0", updated.Version)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "Script Injector", updated.Title)
	assert.NotNil(t, updated.UpdatedAt)

	_, err = service.UpdateProgram(context.Background(), adminClaims(), created.ID, UpdateInput{})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestGuestRepository_Catalog verifies the guest program samples: non-empty
reads, guest-mode rejection on curation, silent telemetry.
*/
func TestGuestRepository_Catalog(t *testing.T) {
	service := NewService(NewGuestRepository(), slog.Default())
	page := pagination.Params{Page: 1, Limit: 20}

	programs, total, err := service.ListPrograms(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.NotEmpty(t, programs)
	assert.Equal(t, "BypassAC Pro", programs[0].Title)

	_, err = service.CreateProgram(context.Background(), ownerClaims(), CreateInput{Title: "Nope", Version: "1.0"})
	require.Error(t, err)
	assert.True(t, apperr.IsGuestMode(err))

	service.IncrementViews(context.Background(), "prog-1")
	service.IncrementDownloads(context.Background(), "prog-1")

	found, err := service.GetProgram(context.Background(), "prog-1")
	require.NoError(t, err)
	assert.Equal(t, 3400, found.ViewCount, "guest telemetry must not mutate fixtures")
}
