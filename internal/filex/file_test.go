package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a", "b", "contacts.db")

	require.NoError(t, EnsureParentDir(path))

	st, err := os.Stat(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	require.True(t, st.IsDir())

	require.NoError(t, EnsureParentDir(path))
}

func TestWriteFile_CreatesParentAndWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "contacts.csv")

	require.NoError(t, WriteFile(path, []byte("hello")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestEnsureParentDir_FailsUnderRegularFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(file, "sub", "x.db"))
	require.Error(t, err)
}
