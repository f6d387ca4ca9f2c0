// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package social

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	hubcontent "github.com/av3hub/avhub/internal/hub/content"
	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/dberr"
)

// # Comments

type PostgresCommentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCommentRepository(db *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

const commentColumns = `c.id, c.content, c.author_id, c.script_id, c.program_id, c.parent_id,
	c.created_at, c.updated_at,
	p.username, p.profile_picture_url`

const commentJoin = `FROM hub.comment c
	LEFT JOIN users.profile p ON p.id = c.author_id`

func (repository *PostgresCommentRepository) ListByTarget(context context.Context, target hubcontent.Ref) ([]*Comment, error) {
	scriptID, programID := target.Columns()

	// Exactly one of the two parameters is non-null for a validated Ref.
	query := `SELECT ` + commentColumns + ` ` + commentJoin + `
		WHERE (c.script_id = $1 AND $1 IS NOT NULL)
		   OR (c.program_id = $2 AND $2 IS NOT NULL)
		ORDER BY c.created_at ASC`

	rows, err := repository.db.Query(context, query, scriptID, programID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		item, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, item)
	}

	return comments, nil
}

func (repository *PostgresCommentRepository) GetByID(context context.Context, id string) (*Comment, error) {
	query := `SELECT ` + commentColumns + ` ` + commentJoin + ` WHERE c.id = $1`

	item, err := scanComment(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "get_comment")
	}

	return item, nil
}

func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) error {
	scriptID, programID := comment.Target.Columns()

	query := `INSERT INTO hub.comment (id, content, author_id, script_id, program_id, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := repository.db.QueryRow(context, query,
		comment.ID, comment.Content, comment.AuthorID, scriptID, programID, comment.ParentID,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresCommentRepository) UpdateContent(context context.Context, id, body string) (*Comment, error) {
	query := `UPDATE hub.comment SET content = $2, updated_at = NOW() WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id, body)
	if err != nil {
		return nil, dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("Comment")
	}

	return repository.GetByID(context, id)
}

func (repository *PostgresCommentRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, `DELETE FROM hub.comment WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func scanComment(row pgx.Row) (*Comment, error) {
	item := &Comment{}
	author := &AuthorSummary{}
	var username *string
	var scriptID, programID *string

	err := row.Scan(
		&item.ID, &item.Content, &item.AuthorID, &scriptID, &programID, &item.ParentID,
		&item.CreatedAt, &item.UpdatedAt,
		&username, &author.ProfilePictureURL,
	)
	if err != nil {
		return nil, err
	}

	target, ok := hubcontent.FromColumns(scriptID, programID)
	if !ok {
		return nil, errors.New("comment row violates the single-target invariant")
	}
	item.Target = target

	if username != nil {
		author.Username = *username
		item.Author = author
	}

	return item, nil
}

// # Likes

type PostgresLikeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLikeRepository(db *pgxpool.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (repository *PostgresLikeRepository) Find(context context.Context, authorID string, target hubcontent.Ref) (*Like, error) {
	scriptID, programID := target.Columns()

	query := `SELECT id, author_id, script_id, program_id, created_at FROM hub.like
		WHERE author_id = $1
		  AND ((script_id = $2 AND $2 IS NOT NULL) OR (program_id = $3 AND $3 IS NOT NULL))`

	item := &Like{}
	var likedScriptID, likedProgramID *string
	err := repository.db.QueryRow(context, query, authorID, scriptID, programID).Scan(
		&item.ID, &item.AuthorID, &likedScriptID, &likedProgramID, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Like")
		}
		return nil, dberr.Wrap(err, "find_like")
	}

	if ref, ok := hubcontent.FromColumns(likedScriptID, likedProgramID); ok {
		item.Target = ref
	}

	return item, nil
}

func (repository *PostgresLikeRepository) Create(context context.Context, like *Like) error {
	scriptID, programID := like.Target.Columns()

	query := `INSERT INTO hub.like (id, author_id, script_id, program_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := repository.db.QueryRow(context, query,
		like.ID, like.AuthorID, scriptID, programID,
	).Scan(&like.CreatedAt)

	return dberr.Wrap(err, "Already liked")
}

func (repository *PostgresLikeRepository) Delete(context context.Context, id string) error {
	_, err := repository.db.Exec(context, `DELETE FROM hub.like WHERE id = $1`, id)
	return dberr.Wrap(err, "delete_like")
}

func (repository *PostgresLikeRepository) Count(context context.Context, target hubcontent.Ref) (int, error) {
	scriptID, programID := target.Columns()

	query := `SELECT COUNT(*) FROM hub.like
		WHERE (script_id = $1 AND $1 IS NOT NULL)
		   OR (program_id = $2 AND $2 IS NOT NULL)`

	var total int
	if err := repository.db.QueryRow(context, query, scriptID, programID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_likes")
	}

	return total, nil
}
