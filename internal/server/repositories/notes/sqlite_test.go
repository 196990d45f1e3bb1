package notes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertUser(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES (?, ?, ?, 'h', 'user', ?)`, id, id+"@example.com", id, time.Now().UTC())
	require.NoError(t, err)
}

func TestSQLite_OwnershipIsEnforced(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewSQLiteDB(t)
	insertUser(t, db, "alice")
	insertUser(t, db, "bob")
	repo := NewSQLiteRepository(db)

	n, err := repo.Create(ctx, &models.Note{OwnerID: "alice", Seq: 1, Title: "mine", Body: "secret", Tags: []string{"a", "b"}})
	require.NoError(t, err)

	_, err = repo.GetOwned(ctx, n.ID, "bob")
	assert.ErrorIs(t, err, common.ErrNotOwned)

	err = repo.Update(ctx, n.ID, "bob", models.NoteFields{Title: "pwned", Body: "x"})
	assert.ErrorIs(t, err, common.ErrNotOwned)

	err = repo.Delete(ctx, n.ID, "bob")
	assert.ErrorIs(t, err, common.ErrNotOwned)

	got, err := repo.GetOwned(ctx, n.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.Equal(t, "secret", got.Body)
	assert.Equal(t, []string{"a", "b"}, got.Tags)

	err = repo.Update(ctx, "no-such-note", "alice", models.NoteFields{Title: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_UpdateDeleteAndList(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewSQLiteDB(t)
	insertUser(t, db, "alice")
	insertUser(t, db, "bob")
	repo := NewSQLiteRepository(db)

	var ids []string
	for seq := int64(1); seq <= 3; seq++ {
		n, err := repo.Create(ctx, &models.Note{OwnerID: "alice", Seq: seq, Title: "t", Body: "b"})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}
	_, err := repo.Create(ctx, &models.Note{OwnerID: "bob", Seq: 1, Title: "bob's", Body: "b"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, ids[0], "alice", models.NoteFields{Title: "edited", Body: "nb", Tags: []string{"x"}, Category: "c"}))
	require.NoError(t, repo.Delete(ctx, ids[1], "alice"))
	assert.ErrorIs(t, repo.Delete(ctx, ids[1], "alice"), common.ErrorNotFound)

	mine, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(3), mine[0].Seq)
	assert.Equal(t, int64(1), mine[1].Seq)
	assert.Equal(t, "edited", mine[1].Title)
	assert.Equal(t, []string{"x"}, mine[1].Tags)
	assert.Equal(t, "c", mine[1].Category)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alice@example.com", all[0].OwnerEmail)
	assert.Equal(t, "bob@example.com", all[2].OwnerEmail)
}

func TestSQLite_DuplicateSeqRejected(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewSQLiteDB(t)
	insertUser(t, db, "alice")
	repo := NewSQLiteRepository(db)

	_, err := repo.Create(ctx, &models.Note{OwnerID: "alice", Seq: 1, Title: "a", Body: "b"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Note{OwnerID: "alice", Seq: 1, Title: "c", Body: "d"})
	assert.Error(t, err)
}
