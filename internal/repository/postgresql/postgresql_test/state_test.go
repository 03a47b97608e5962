package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/statestore"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStore_SetGetDelete(t *testing.T) {
	db := openTestDatabase(t)
	store := postgresql.NewStateStore(db)
	ctx := context.Background()

	_, err := store.Get(ctx, "session:a")
	assert.ErrorIs(t, err, statestore.ErrNotFound)

	require.NoError(t, store.Set(ctx, "session:a", []byte(`{"entry_id":"x"}`), time.Hour))
	value, err := store.Get(ctx, "session:a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"entry_id":"x"}`, string(value))

	require.NoError(t, store.Set(ctx, "session:a", []byte(`{"entry_id":"y"}`), 0))
	value, err = store.Get(ctx, "session:a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"entry_id":"y"}`, string(value))

	require.NoError(t, store.Delete(ctx, "session:a"))
	_, err = store.Get(ctx, "session:a")
	assert.ErrorIs(t, err, statestore.ErrNotFound)
}

func TestStateStore_ExpiryAndPurge(t *testing.T) {
	db := openTestDatabase(t)
	store := postgresql.NewStateStore(db)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte(`"v"`), 10*time.Millisecond))
	require.NoError(t, store.Set(ctx, "long", []byte(`"v"`), time.Hour))
	time.Sleep(50 * time.Millisecond)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, statestore.ErrNotFound)

	purged, err := postgresql.PurgeExpiredState(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Get(ctx, "long")
	assert.NoError(t, err)
}
