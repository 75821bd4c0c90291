package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLiteRepository(db), mock, db
}

func TestGet_QueriesByKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+value\s+FROM\s+kv\s+WHERE\s+key\s*=\s*\?$`
	mock.ExpectQuery(q).
		WithArgs("contacts").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

	v, ok, err := repo.Get(context.Background(), "contacts")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_DriverErrorIsWrapped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+value\s+FROM\s+kv`).
		WithArgs("theme").
		WillReturnError(errors.New("disk I/O error"))

	_, _, err := repo.Get(context.Background(), "theme")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to get kv[theme]: disk I/O error")
}

func TestSet_UpsertsKeyAndValue(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+kv\s*\(key,\s*value,\s*updated_at\).*ON\s+CONFLICT\(key\)\s+DO\s+UPDATE`
	mock.ExpectExec(q).
		WithArgs("theme", "dark").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "theme", "dark"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_DriverErrorIsWrapped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+kv`).
		WithArgs("contacts", "[]").
		WillReturnError(errors.New("database is locked"))

	err := repo.Set(context.Background(), "contacts", "[]")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set kv[contacts]: database is locked")
}
