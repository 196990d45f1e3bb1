package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasher(t *testing.T) *cryptox.PasswordHasher {
	t.Helper()
	h, err := cryptox.NewPasswordHasher(cryptox.Bcrypt)
	require.NoError(t, err)
	return h.WithBcryptCost(bcrypt.MinCost)
}

func newSQLiteManager(t *testing.T) repomanager.RepositoryManager {
	t.Helper()
	m, err := repomanager.NewRepositoryManager(dbx.SQLite)
	require.NoError(t, err)
	return m
}

// fixture wires services over one migrated SQLite database.
type fixture struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	users    *UserService
	notes    *NoteService
	sessions *SessionService
}

func newFixtureOn(t *testing.T, db *sql.DB) *fixture {
	t.Helper()
	rm := newSQLiteManager(t)
	return &fixture{
		db:       db,
		rm:       rm,
		users:    NewUserService(db, rm, newHasher(t)),
		notes:    NewNoteService(db, rm),
		sessions: NewSessionService(db, rm, []byte("test-secret"), time.Hour),
	}
}

func newFixture(t *testing.T) *fixture {
	return newFixtureOn(t, repotest.NewSQLiteDB(t))
}

// overrideManager replaces selected repositories of a real manager.
type overrideManager struct {
	repomanager.RepositoryManager
	users func(dbx.DBTX) users.Repository
	notes func(dbx.DBTX) notes.Repository
}

func (m *overrideManager) Users(db dbx.DBTX) users.Repository {
	if m.users != nil {
		return m.users(db)
	}
	return m.RepositoryManager.Users(db)
}

func (m *overrideManager) Notes(db dbx.DBTX) notes.Repository {
	if m.notes != nil {
		return m.notes(db)
	}
	return m.RepositoryManager.Notes(db)
}
