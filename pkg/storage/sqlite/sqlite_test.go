package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutThenGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k1", []byte(`[1,2]`)))

	v, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), v)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := setupStore(t)

	_, err := s.Get(context.Background(), "absent")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutUpsertsValueAndTimestamp(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	s.now = func() time.Time { return first }
	require.NoError(t, s.Put(ctx, "k", []byte("old")))
	s.now = func() time.Time { return second }
	require.NoError(t, s.Put(ctx, "k", []byte("new")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)

	at, err := s.UpdatedAt(ctx, "k")
	require.NoError(t, err)
	assert.True(t, at.Equal(second), "updated_at = %v", at)
}

func TestDeleteAndKeys(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "b", []byte("2")))
	require.NoError(t, s.Put(ctx, "a", []byte("1")))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))

	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestOpenOnDiskIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "forms.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, storage.SetTheme(ctx, s, storage.ThemeDark))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, storage.ThemeDark, storage.Theme(ctx, s))
}

func TestCollectionsOverSQLite(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	templates := storage.Templates(s)

	require.NoError(t, templates.Prepend(ctx, model.SavedTemplate{ID: "t1", Title: "One"}))
	require.NoError(t, templates.Prepend(ctx, model.SavedTemplate{ID: "t2", Title: "Two"}))
	require.NoError(t, templates.SoftDelete(ctx, "t1"))

	active := templates.Active(ctx)
	require.Len(t, active, 1)
	assert.Equal(t, "t2", active[0].ID)

	trash := templates.Trash(ctx)
	require.Len(t, trash, 1)
	assert.True(t, trash[0].IsDeleted)
	assert.NotZero(t, trash[0].DeletedAt)
}
