package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhteys/backend/internal/model"
	"github.com/yhteys/backend/internal/storage"
)

const testKey = "data/contact-messages.json"

func newFileRepo(t *testing.T) (*JSONFileContactRepository, string) {
	t.Helper()
	dir := t.TempDir()
	return NewJSONFileContactRepository(storage.NewLocalStorage(dir), testKey), filepath.Join(dir, testKey)
}

func sampleMessage(i int) *model.ContactMessage {
	return &model.ContactMessage{
		ID:        fmt.Sprintf("id-%d", i),
		CreatedAt: time.Date(2026, 10, 19, 12, 0, i, 0, time.UTC),
		Name:      fmt.Sprintf("Sender %d", i),
		Email:     fmt.Sprintf("sender%d@example.com", i),
		Subject:   "Hello",
		Message:   "Line one\nLine <two> & more",
		Type:      model.CategoryFeedback,
		Accepted:  true,
		Company:   "",
	}
}

func TestJSONFileContactRepository_LoadMissingFile(t *testing.T) {
	repo, _ := newFileRepo(t)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJSONFileContactRepository_AppendCreatesFile(t *testing.T) {
	repo, path := newFileRepo(t)

	require.NoError(t, repo.Append(context.Background(), sampleMessage(1)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": \"id-1\","), "unexpected layout:\n%s", text)
	assert.True(t, strings.HasSuffix(text, "}\n]"), "unexpected layout:\n%s", text)
	assert.Contains(t, text, `Line <two> & more`)
	assert.Contains(t, text, `"createdAt": "2026-10-19T12:00:01.000Z"`)
	assert.Contains(t, text, `"accepted": true`)
	assert.Contains(t, text, `"company": ""`)
}

func TestJSONFileContactRepository_RoundTrip(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	var want []*model.ContactMessage
	for i := 0; i < 5; i++ {
		m := sampleMessage(i)
		want = append(want, m)
		require.NoError(t, repo.Append(ctx, m))
	}

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	// A fresh repository over the same directory sees the same records.
	reopened := NewJSONFileContactRepository(repo.store, testKey)
	got, err = reopened.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reload mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFileContactRepository_MalformedFileIsEmpty(t *testing.T) {
	tests := map[string]string{
		"invalid json": "{not json",
		"object":       `{"id":"x"}`,
		"string":       `"hello"`,
		"empty file":   "",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			repo, path := newFileRepo(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			ctx := context.Background()

			got, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, repo.Append(ctx, sampleMessage(1)))
			got, err = repo.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "id-1", got[0].ID)
		})
	}
}

func TestJSONFileContactRepository_PreservesForeignElements(t *testing.T) {
	repo, path := newFileRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`[42, {"id":"legacy","createdAt":"2025-01-02T03:04:05.000Z","name":"Old"}]`), 0o644))
	ctx := context.Background()

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "legacy", got[0].ID)

	require.NoError(t, repo.Append(ctx, sampleMessage(2)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  42,\n"), "foreign element lost:\n%s", data)

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "legacy", got[0].ID)
	assert.Equal(t, "id-2", got[1].ID)
}

func TestJSONFileContactRepository_LoadIsLenientPerElement(t *testing.T) {
	repo, path := newFileRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := `[
  null,
  "text",
  {"id":"a","createdAt":"yesterday","name":"Ada","email":"ada@example.com","accepted":"yes"},
  {"id":"b","createdAt":"2026-10-19T08:20:00.1Z","name":7,"subject":"Hi","accepted":true}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "Ada", got[0].Name)
	assert.Equal(t, "ada@example.com", got[0].Email)
	assert.True(t, got[0].CreatedAt.IsZero())
	assert.False(t, got[0].Accepted)

	assert.Equal(t, "b", got[1].ID)
	assert.Empty(t, got[1].Name)
	assert.Equal(t, "Hi", got[1].Subject)
	assert.True(t, got[1].Accepted)
	assert.True(t, got[1].CreatedAt.Equal(time.Date(2026, 10, 19, 8, 20, 0, 100*int(time.Millisecond), time.UTC)))
}

// failingStorage reads nothing and fails every write.
type failingStorage struct {
	readFunc func(ctx context.Context, key string) ([]byte, error)
	saveErr  error
}

func (f *failingStorage) Read(ctx context.Context, key string) ([]byte, error) {
	if f.readFunc != nil {
		return f.readFunc(ctx, key)
	}
	return nil, storage.ErrNotFound
}

func (f *failingStorage) Save(_ context.Context, _ string, _ io.Reader) error {
	return f.saveErr
}

func (f *failingStorage) Ping(_ context.Context) error { return nil }

func TestJSONFileContactRepository_AppendWriteFailure(t *testing.T) {
	cause := errors.New("disk full")
	repo := NewJSONFileContactRepository(&failingStorage{saveErr: cause}, testKey)

	err := repo.Append(context.Background(), sampleMessage(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestJSONFileContactRepository_ReadFailureIsEmpty(t *testing.T) {
	repo := NewJSONFileContactRepository(&failingStorage{
		readFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, errors.New("permission denied")
		},
	}, testKey)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryContactRepository_AppendAndLoad(t *testing.T) {
	repo := NewMemoryContactRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sampleMessage(1)))
	require.NoError(t, repo.Append(ctx, sampleMessage(2)))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id-1", got[0].ID)
	assert.Equal(t, "id-2", got[1].ID)

	// Returned records are copies.
	got[0].Name = "changed"
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sender 1", again[0].Name)
}
