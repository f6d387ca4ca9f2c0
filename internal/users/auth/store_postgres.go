// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/dberr"
)

type PostgresCredentialRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCredentialRepository(db *pgxpool.Pool) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{db: db}
}

func (repository *PostgresCredentialRepository) Create(context context.Context, credential *Credential) error {
	query := `INSERT INTO users.credential (id, email, password_hash, username)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := repository.db.QueryRow(context, query,
		credential.ID, credential.Email, credential.PasswordHash, credential.Username,
	).Scan(&credential.CreatedAt)

	return dberr.Wrap(err, "Email already registered. Please use a different email or try signing in.")
}

func (repository *PostgresCredentialRepository) FindByEmail(context context.Context, email string) (*Credential, error) {
	query := `SELECT id, email, password_hash, username, created_at
		FROM users.credential WHERE email = $1`

	credential := &Credential{}
	err := repository.db.QueryRow(context, query, email).Scan(
		&credential.ID, &credential.Email, &credential.PasswordHash,
		&credential.Username, &credential.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Credential")
		}
		return nil, dberr.Wrap(err, "find_credential_by_email")
	}

	return credential, nil
}

func (repository *PostgresCredentialRepository) FindByID(context context.Context, id string) (*Credential, error) {
	query := `SELECT id, email, password_hash, username, created_at
		FROM users.credential WHERE id = $1`

	credential := &Credential{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&credential.ID, &credential.Email, &credential.PasswordHash,
		&credential.Username, &credential.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Credential")
		}
		return nil, dberr.Wrap(err, "find_credential_by_id")
	}

	return credential, nil
}

func (repository *PostgresCredentialRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	tag, err := repository.db.Exec(context,
		`UPDATE users.credential SET password_hash = $2 WHERE id = $1`, id, passwordHash,
	)
	if err != nil {
		return dberr.Wrap(err, "update_password")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Credential")
	}
	return nil
}
