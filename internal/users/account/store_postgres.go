// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/dberr"
	"github.com/av3hub/avhub/internal/users/provision"
)

type PostgresProfileRepository struct {
	db *pgxpool.Pool
}

func NewPostgresProfileRepository(db *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (repository *PostgresProfileRepository) GetByID(context context.Context, id string) (*Profile, error) {
	query := `SELECT id, username, email, profile_picture_url, is_admin, created_at
		FROM users.profile WHERE id = $1`

	profile := &Profile{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&profile.ID, &profile.Username, &profile.Email,
		&profile.ProfilePictureURL, &profile.IsAdmin, &profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Profile")
		}
		return nil, dberr.Wrap(err, "get_profile")
	}

	return profile, nil
}

func (repository *PostgresProfileRepository) UsernameExists(context context.Context, username string) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context,
		`SELECT EXISTS (SELECT 1 FROM users.profile WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "username_exists")
	}
	return exists, nil
}

func (repository *PostgresProfileRepository) EmailExists(context context.Context, email string) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context,
		`SELECT EXISTS (SELECT 1 FROM users.profile WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "email_exists")
	}
	return exists, nil
}

func (repository *PostgresProfileRepository) Update(context context.Context, profile *Profile) error {
	query := `UPDATE users.profile SET profile_picture_url = $2 WHERE id = $1`

	tag, err := repository.db.Exec(context, query, profile.ID, profile.ProfilePictureURL)
	if err != nil {
		return dberr.Wrap(err, "update_profile")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profile")
	}

	return nil
}

// CreateProfile materializes the profile row for a provisioning job. The
// owner admin flag follows the reserved username binding enforced at
// signup. Replayed jobs are idempotent via ON CONFLICT DO NOTHING.
func (repository *PostgresProfileRepository) CreateProfile(context context.Context, job provision.Job) error {
	isAdmin := job.Username == constants.OwnerUsername

	query := `INSERT INTO users.profile (id, username, email, is_admin)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`

	_, err := repository.db.Exec(context, query, job.UserID, job.Username, job.Email, isAdmin)
	return dberr.Wrap(err, "Username or email already registered")
}

// AdminFlag reads the member's admin flag, reporting false while the
// profile row has not been provisioned yet.
func (repository *PostgresProfileRepository) AdminFlag(context context.Context, userID string) (bool, error) {
	var isAdmin bool
	err := repository.db.QueryRow(context,
		`SELECT is_admin FROM users.profile WHERE id = $1`, userID,
	).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, dberr.Wrap(err, "admin_flag")
	}
	return isAdmin, nil
}

// # Settings

type PostgresSettingsRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSettingsRepository(db *pgxpool.Pool) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

func (repository *PostgresSettingsRepository) Get(context context.Context, userID string) (*Settings, error) {
	query := `SELECT user_id, theme, email_notifications, comment_notifications, like_notifications, updated_at
		FROM users.settings WHERE user_id = $1`

	settings := &Settings{}
	err := repository.db.QueryRow(context, query, userID).Scan(
		&settings.UserID, &settings.Theme, &settings.EmailNotifications,
		&settings.CommentNotifications, &settings.LikeNotifications, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Settings")
		}
		return nil, dberr.Wrap(err, "get_settings")
	}

	return settings, nil
}

func (repository *PostgresSettingsRepository) Upsert(context context.Context, settings *Settings) error {
	query := `INSERT INTO users.settings (user_id, theme, email_notifications, comment_notifications, like_notifications, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			theme = EXCLUDED.theme,
			email_notifications = EXCLUDED.email_notifications,
			comment_notifications = EXCLUDED.comment_notifications,
			like_notifications = EXCLUDED.like_notifications,
			updated_at = EXCLUDED.updated_at`

	_, err := repository.db.Exec(context, query,
		settings.UserID, settings.Theme, settings.EmailNotifications,
		settings.CommentNotifications, settings.LikeNotifications, settings.UpdatedAt,
	)
	return dberr.Wrap(err, "upsert_settings")
}
