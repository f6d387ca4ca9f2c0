// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package program

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

const programColumns = `pr.id, pr.title, pr.description, pr.version, pr.download_url, pr.file_size,
	pr.thumbnail_url, pr.download_count, pr.view_count, pr.is_featured, pr.created_by,
	pr.created_at, pr.updated_at,
	p.username, p.profile_picture_url`

const programJoin = `FROM hub.program pr
	LEFT JOIN users.profile p ON p.id = pr.created_by`

func (repository *PostgresRepository) List(context context.Context, page pagination.Params) ([]*Program, int, error) {
	var total int
	if err := repository.db.QueryRow(context, `SELECT COUNT(*) FROM hub.program`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_programs")
	}

	query := `SELECT ` + programColumns + ` ` + programJoin + `
		ORDER BY pr.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(context, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_programs")
	}
	defer rows.Close()

	programs := make([]*Program, 0)
	for rows.Next() {
		item, err := scanProgram(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_program")
		}
		programs = append(programs, item)
	}

	return programs, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Program, error) {
	query := `SELECT ` + programColumns + ` ` + programJoin + ` WHERE pr.id = $1`

	item, err := scanProgram(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Program")
		}
		return nil, dberr.Wrap(err, "get_program")
	}

	return item, nil
}

func (repository *PostgresRepository) Create(context context.Context, program *Program) error {
	query := `INSERT INTO hub.program
		(id, title, description, version, download_url, file_size, thumbnail_url,
		 download_count, view_count, is_featured, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err := repository.db.QueryRow(context, query,
		program.ID, program.Title, program.Description, program.Version, program.DownloadURL,
		program.FileSize, program.ThumbnailURL, program.DownloadCount, program.ViewCount,
		program.IsFeatured, program.CreatedBy,
	).Scan(&program.CreatedAt)

	return dberr.Wrap(err, "A program with this title already exists")
}

func (repository *PostgresRepository) Update(context context.Context, program *Program) error {
	query := `UPDATE hub.program
		SET title = $2, description = $3, version = $4, download_url = $5, file_size = $6,
		    thumbnail_url = $7, is_featured = $8, updated_at = $9
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query,
		program.ID, program.Title, program.Description, program.Version, program.DownloadURL,
		program.FileSize, program.ThumbnailURL, program.IsFeatured, program.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "A program with this title already exists")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Program")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, `DELETE FROM hub.program WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_program")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Program")
	}
	return nil
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	_, err := repository.db.Exec(context, `UPDATE hub.program SET view_count = view_count + 1 WHERE id = $1`, id)
	return dberr.Wrap(err, "increment_program_views")
}

func (repository *PostgresRepository) IncrementDownloads(context context.Context, id string) error {
	_, err := repository.db.Exec(context, `UPDATE hub.program SET download_count = download_count + 1 WHERE id = $1`, id)
	return dberr.Wrap(err, "increment_program_downloads")
}

func scanProgram(row pgx.Row) (*Program, error) {
	item := &Program{}
	creator := &CreatorSummary{}
	var username *string

	err := row.Scan(
		&item.ID, &item.Title, &item.Description, &item.Version, &item.DownloadURL, &item.FileSize,
		&item.ThumbnailURL, &item.DownloadCount, &item.ViewCount, &item.IsFeatured, &item.CreatedBy,
		&item.CreatedAt, &item.UpdatedAt,
		&username, &creator.ProfilePictureURL,
	)
	if err != nil {
		return nil, err
	}

	if username != nil {
		creator.Username = *username
		item.Creator = creator
	}

	return item, nil
}
