package revocations

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	createQ = `(?s)^INSERT\s+INTO\s+revoked_sessions\s*\(token_id,\s*expires_at,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(token_id\)\s*DO\s+NOTHING\s*$`
	existsQ = `(?s)^SELECT\s+1\s+FROM\s+revoked_sessions\s+WHERE\s+token_id\s*=\s*\$1\s*$`
	purgeQ  = `(?s)^DELETE\s+FROM\s+revoked_sessions\s+WHERE\s+expires_at\s*<\s*\$1\s*$`
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_StoresUnixExpiry(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	exp := time.Unix(1_700_000_000, 0)
	mock.ExpectExec(createQ).
		WithArgs("jti-1", exp.Unix(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), "jti-1", exp); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(createQ).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), "jti-1", time.Now())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(existsQ).WithArgs("jti-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(existsQ).WithArgs("jti-2").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(existsQ).WithArgs("jti-3").WillReturnError(errors.New("db down"))

	ok, err := repo.Exists(context.Background(), "jti-1")
	if err != nil || !ok {
		t.Fatalf("Exists(jti-1) = %v, %v; want true, nil", ok, err)
	}
	ok, err = repo.Exists(context.Background(), "jti-2")
	if err != nil || ok {
		t.Fatalf("Exists(jti-2) = %v, %v; want false, nil", ok, err)
	}
	if _, err = repo.Exists(context.Background(), "jti-3"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDeleteExpired(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Unix(1_700_000_000, 0)
	mock.ExpectExec(purgeQ).WithArgs(now.Unix()).WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("DeleteExpired error: %v", err)
	}
	if n != 4 {
		t.Fatalf("removed %d, want 4", n)
	}
}
