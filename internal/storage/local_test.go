package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_ReadMissing(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	_, err := s.Read(context.Background(), "data/missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_SaveCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "data/nested/file.json", strings.NewReader("[]")))

	got, err := os.ReadFile(filepath.Join(dir, "data", "nested", "file.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	data, err := s.Read(ctx, "data/nested/file.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestLocalStorage_SaveReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "f.json", strings.NewReader("first")))
	require.NoError(t, s.Save(ctx, "f.json", strings.NewReader("second")))

	data, err := s.Read(ctx, "f.json")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorage_SaveFailsWhenParentIsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0o644))
	s := NewLocalStorage(dir)

	err := s.Save(context.Background(), "data/contact-messages.json", strings.NewReader("[]"))
	assert.Error(t, err)
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, "f.json", strings.NewReader("x")), context.Canceled)
	_, err := s.Read(ctx, "f.json")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStorage_Ping(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, NewLocalStorage(dir).Ping(context.Background()))
	assert.NoError(t, NewLocalStorage(filepath.Join(dir, "not-yet")).Ping(context.Background()))

	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, NewLocalStorage(file).Ping(context.Background()))
}
