// Package kv provides the client-side key/value persistence used by the
// storage gateway.
//
// The Repository interface stores opaque text documents under string keys.
// SQLiteRepository persists them in the "kv" table created by the goose
// migrations in internal/migrations, using a dbx.DBTX (either *sql.DB or
// *sql.Tx).
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "theme", "dark")
//	v, ok, _ := repo.Get(ctx, "theme")
package kv
