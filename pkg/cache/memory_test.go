package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var out []string
	found, err := c.Get(ctx, "tags:all", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "tags:all", []string{"breakfast", "lunch"}, time.Minute))

	found, err = c.Get(ctx, "tags:all", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"breakfast", "lunch"}, out)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))

	now = now.Add(2 * time.Second)
	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "ingredients:search:a", 1, 0))
	require.NoError(t, c.Set(ctx, "ingredients:search:b", 2, 0))
	require.NoError(t, c.Set(ctx, "tags:all", 3, 0))

	require.NoError(t, c.DeletePattern(ctx, "ingredients:*"))

	var v int
	found, _ := c.Get(ctx, "ingredients:search:a", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "tags:all", &v)
	assert.True(t, found)
}
