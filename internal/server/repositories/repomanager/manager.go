// Package repomanager hands out repositories for the configured SQL
// dialect, bound to either a *sql.DB or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/counters"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/revocations"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Counters(db dbx.DBTX) counters.Repository
	Notes(db dbx.DBTX) notes.Repository
	Revocations(db dbx.DBTX) revocations.Repository
}
