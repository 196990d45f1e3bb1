package revocations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
)

type queries struct {
	create        string
	exists        string
	deleteExpired string
}

var postgresQueries = queries{
	create: `INSERT INTO revoked_sessions (token_id, expires_at, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_id) DO NOTHING`,
	exists:        `SELECT 1 FROM revoked_sessions WHERE token_id = $1`,
	deleteExpired: `DELETE FROM revoked_sessions WHERE expires_at < $1`,
}

var sqliteQueries = queries{
	create: `INSERT INTO revoked_sessions (token_id, expires_at, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (token_id) DO NOTHING`,
	exists:        `SELECT 1 FROM revoked_sessions WHERE token_id = ?`,
	deleteExpired: `DELETE FROM revoked_sessions WHERE expires_at < ?`,
}

// SQLRepository keeps expiries as unix seconds so both engines compare
// them as plain integers.
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

func (r *SQLRepository) Create(ctx context.Context, tokenID string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, r.q.create, tokenID, expiresAt.Unix(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Exists(ctx context.Context, tokenID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, r.q.exists, tokenID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *SQLRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.q.deleteExpired, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
