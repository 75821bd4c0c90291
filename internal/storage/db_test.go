package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/contactpro/internal/logging"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_InMemory_CreatesKVTable(t *testing.T) {
	ctx := context.Background()

	d, err := InitDatabase(ctx, ":memory:", logging.Discard())
	require.NoError(t, err)
	defer d.Close()

	var name string
	err = d.DB.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "kv", name)

	require.NoError(t, d.KV.Set(ctx, KeyTheme, "dark"))
	v, ok, err := d.KV.Get(ctx, KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)
}

func TestInitDatabase_File_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "contacts.db")

	d, err := InitDatabase(ctx, path, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, d.KV.Set(ctx, KeyContacts, `[]`))
	require.NoError(t, d.Close())

	d2, err := InitDatabase(ctx, path, logging.Discard())
	require.NoError(t, err)
	defer d2.Close()

	v, ok, err := d2.KV.Get(ctx, KeyContacts)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, v)
}

func TestRunMigrations_ErrorIsWrapped(t *testing.T) {
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	_, err := InitDatabase(context.Background(), ":memory:", logging.Discard())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to run migrations: boom")
}
