package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemory_GetSetDelete(t *testing.T) {
	store := NewMemory(4)
	ctx := context.Background()

	data, err := store.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	data, err = store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), data)

	assert.NoError(t, store.Delete(ctx, "k"))
	data, _ = store.Get(ctx, "k")
	assert.Nil(t, data)
}

func TestMemory_TTLExpiry(t *testing.T) {
	store := NewMemory(4)
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	assert.NoError(t, store.Set(ctx, "k", []byte("v"), 5*time.Minute))

	data, _ := store.Get(ctx, "k")
	assert.Equal(t, []byte("v"), data)

	now = now.Add(5*time.Minute + time.Second)
	data, _ = store.Get(ctx, "k")
	assert.Nil(t, data)
}

func TestMemory_LRUEviction(t *testing.T) {
	store := NewMemory(2)
	ctx := context.Background()

	_ = store.Set(ctx, "a", []byte("1"), 0)
	_ = store.Set(ctx, "b", []byte("2"), 0)

	// Touch "a" so "b" becomes the eviction candidate.
	_, _ = store.Get(ctx, "a")
	_ = store.Set(ctx, "c", []byte("3"), 0)

	data, _ := store.Get(ctx, "a")
	assert.Equal(t, []byte("1"), data)
	data, _ = store.Get(ctx, "b")
	assert.Nil(t, data)
	data, _ = store.Get(ctx, "c")
	assert.Equal(t, []byte("3"), data)
}
