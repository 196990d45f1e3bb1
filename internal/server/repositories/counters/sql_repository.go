package counters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

type queries struct {
	next    string
	current string
}

// The upsert takes the row lock and increments in one statement, so two
// callers can never read the same last_seq.
var postgresQueries = queries{
	next: `INSERT INTO note_counters (owner_id, last_seq) VALUES ($1, 1)
		ON CONFLICT (owner_id) DO UPDATE SET last_seq = note_counters.last_seq + 1
		RETURNING last_seq`,
	current: `SELECT last_seq FROM note_counters WHERE owner_id = $1`,
}

var sqliteQueries = queries{
	next: `INSERT INTO note_counters (owner_id, last_seq) VALUES (?, 1)
		ON CONFLICT (owner_id) DO UPDATE SET last_seq = note_counters.last_seq + 1
		RETURNING last_seq`,
	current: `SELECT last_seq FROM note_counters WHERE owner_id = ?`,
}

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

func (r *SQLRepository) Next(ctx context.Context, ownerID string) (int64, error) {
	var seq int64
	if err := r.db.QueryRowContext(ctx, r.q.next, ownerID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return seq, nil
}

func (r *SQLRepository) Current(ctx context.Context, ownerID string) (int64, error) {
	var seq int64
	err := r.db.QueryRowContext(ctx, r.q.current, ownerID).Scan(&seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return seq, nil
}
