package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/google/uuid"
)

type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(s string) ([]string, error) {
	var tags []string
	if s == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner, withEmail bool) (*models.Note, error) {
	n := &models.Note{}
	var tags string
	dest := []any{&n.ID, &n.OwnerID, &n.Seq, &n.Title, &n.Body, &tags, &n.Category, &n.CreatedAt}
	if withEmail {
		dest = append(dest, &n.OwnerEmail)
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	t, err := decodeTags(tags)
	if err != nil {
		return nil, fmt.Errorf("decode tags of note %s: %w", n.ID, err)
	}
	n.Tags = t
	return n, nil
}

func (r *SQLRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	tags, err := encodeTags(note.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, r.q.create,
		note.ID, note.OwnerID, note.Seq, note.Title, note.Body, tags, note.Category, note.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *SQLRepository) list(ctx context.Context, query string, withEmail bool, args ...any) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		n, err := scanNote(rows, withEmail)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	return r.list(ctx, r.q.listByOwner, false, ownerID)
}

func (r *SQLRepository) ListAll(ctx context.Context) ([]*models.Note, error) {
	return r.list(ctx, r.q.listAll, true)
}

// missOrForeign classifies a statement that matched no row for ownerID.
func (r *SQLRepository) missOrForeign(ctx context.Context, id string) error {
	var owner string
	err := r.db.QueryRowContext(ctx, r.q.ownerOf, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return common.ErrNotOwned
}

func (r *SQLRepository) GetOwned(ctx context.Context, id, ownerID string) (*models.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx, r.q.getOwned, id, ownerID), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.missOrForeign(ctx, id)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) Update(ctx context.Context, id, ownerID string, fields models.NoteFields) error {
	tags, err := encodeTags(fields.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.q.update,
		fields.Title, fields.Body, tags, fields.Category, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return r.affected(ctx, res, id)
}

func (r *SQLRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, r.q.delete, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return r.affected(ctx, res, id)
}

func (r *SQLRepository) affected(ctx context.Context, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return r.missOrForeign(ctx, id)
	}
	return nil
}
