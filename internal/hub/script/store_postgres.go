// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package script

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/dberr"
	"github.com/av3hub/avhub/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const scriptColumns = `s.id, s.author_id, s.title, s.description, s.content, s.file_url,
	s.slug, s.is_verified, s.view_count, s.thumbnail_url, s.created_at,
	p.username, p.profile_picture_url`

const scriptJoin = `FROM hub.script s
	LEFT JOIN users.profile p ON p.id = s.author_id`

func (repository *PostgresRepository) List(context context.Context, filter ListFilter, page pagination.Params) ([]*Script, int, error) {
	// Visibility: verified rows for everyone, the viewer's own rows, or
	// everything when the filter lifts verification (admin).
	where := `WHERE (s.is_verified OR s.author_id = $1 OR $2)`

	var viewerID *string
	if filter.ViewerID != nil {
		viewerID = filter.ViewerID
	}

	countQuery := `SELECT COUNT(*) ` + scriptJoin + ` ` + where
	var total int
	if err := repository.db.QueryRow(context, countQuery, viewerID, filter.IncludeUnverified).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_scripts")
	}

	query := `SELECT ` + scriptColumns + ` ` + scriptJoin + ` ` + where + `
		ORDER BY s.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.db.Query(context, query, viewerID, filter.IncludeUnverified, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_scripts")
	}
	defer rows.Close()

	scripts := make([]*Script, 0)
	for rows.Next() {
		item, err := scanScript(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_script")
		}
		scripts = append(scripts, item)
	}

	return scripts, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Script, error) {
	query := `SELECT ` + scriptColumns + ` ` + scriptJoin + ` WHERE s.id = $1`

	row := repository.db.QueryRow(context, query, id)
	item, err := scanScript(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Script")
		}
		return nil, dberr.Wrap(err, "get_script")
	}

	return item, nil
}

func (repository *PostgresRepository) Create(context context.Context, script *Script) error {
	query := `INSERT INTO hub.script
		(id, author_id, title, description, content, file_url, slug, is_verified, view_count, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := repository.db.QueryRow(context, query,
		script.ID, script.AuthorID, script.Title, script.Description, script.Content,
		script.FileURL, script.Slug, script.IsVerified, script.ViewCount, script.ThumbnailURL,
	).Scan(&script.CreatedAt)

	return dberr.Wrap(err, "A script with this title already exists")
}

func (repository *PostgresRepository) Update(context context.Context, script *Script) error {
	query := `UPDATE hub.script
		SET title = $2, description = $3, content = $4, file_url = $5, slug = $6, thumbnail_url = $7
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query,
		script.ID, script.Title, script.Description, script.Content,
		script.FileURL, script.Slug, script.ThumbnailURL,
	)
	if err != nil {
		return dberr.Wrap(err, "A script with this title already exists")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Script")
	}

	return nil
}

func (repository *PostgresRepository) SetVerified(context context.Context, id string, verified bool) error {
	tag, err := repository.db.Exec(context, `UPDATE hub.script SET is_verified = $2 WHERE id = $1`, id, verified)
	if err != nil {
		return dberr.Wrap(err, "set_script_verified")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Script")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, `DELETE FROM hub.script WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_script")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Script")
	}
	return nil
}

// IncrementViews is a single atomic UPDATE so concurrent viewers never lose
// increments. Missing rows are ignored; the caller treats this as telemetry.
func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	_, err := repository.db.Exec(context, `UPDATE hub.script SET view_count = view_count + 1 WHERE id = $1`, id)
	return dberr.Wrap(err, "increment_script_views")
}

func scanScript(row pgx.Row) (*Script, error) {
	item := &Script{}
	author := &AuthorSummary{}
	var username *string

	err := row.Scan(
		&item.ID, &item.AuthorID, &item.Title, &item.Description, &item.Content, &item.FileURL,
		&item.Slug, &item.IsVerified, &item.ViewCount, &item.ThumbnailURL, &item.CreatedAt,
		&username, &author.ProfilePictureURL,
	)
	if err != nil {
		return nil, err
	}

	// Author rows can be absent for orphaned scripts (author deleted).
	if username != nil {
		author.Username = *username
		item.Author = author
	}

	return item, nil
}
