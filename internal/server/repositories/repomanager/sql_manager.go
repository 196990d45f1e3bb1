package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/server/migrations"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/counters"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/revocations"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// migrateUp is a seam for tests.
var migrateUp = migrations.Up

type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewRepositoryManager(d dbx.Dialect) (RepositoryManager, error) {
	switch d {
	case dbx.Postgres, dbx.SQLite:
		return &SQLRepositoryManager{dialect: d}, nil
	}
	return nil, fmt.Errorf("unsupported dialect %q", d)
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, m.dialect)
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	if m.dialect == dbx.SQLite {
		return users.NewSQLiteRepository(db)
	}
	return users.NewPostgresRepository(db)
}

func (m *SQLRepositoryManager) Counters(db dbx.DBTX) counters.Repository {
	if m.dialect == dbx.SQLite {
		return counters.NewSQLiteRepository(db)
	}
	return counters.NewPostgresRepository(db)
}

func (m *SQLRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	if m.dialect == dbx.SQLite {
		return notes.NewSQLiteRepository(db)
	}
	return notes.NewPostgresRepository(db)
}

func (m *SQLRepositoryManager) Revocations(db dbx.DBTX) revocations.Repository {
	if m.dialect == dbx.SQLite {
		return revocations.NewSQLiteRepository(db)
	}
	return revocations.NewPostgresRepository(db)
}

// Open connects to dsn with the dialect's driver and pings it. For SQLite
// the parent directory of the database file is created first.
func Open(ctx context.Context, d dbx.Dialect, dsn string) (*sql.DB, error) {
	if d == dbx.SQLite {
		if path := filex.SQLiteFilePath(dsn); path != "" {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}

	if d == dbx.SQLite && filex.SQLiteFilePath(dsn) == "" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}

	return db, nil
}
