package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStable(t *testing.T) {
	a := Key("linkedin", "Go Developer ", "Cape Town", 1, 10)
	b := Key("linkedin", "go developer", "cape town", 1, 10)
	c := Key("linkedin", "go developer", "cape town", 2, 10)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "linkedin:")
}

func TestMemoryTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.SetJSON(ctx, "k", map[string]int{"n": 3}, time.Minute))

	var got map[string]int
	hit, err := m.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, got["n"])

	now = now.Add(2 * time.Minute)
	hit, err = m.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryDel(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetJSON(ctx, "a", 1, 0))
	require.NoError(t, m.Del(ctx, "a"))

	var v int
	hit, _ := m.GetJSON(ctx, "a", &v)
	assert.False(t, hit)
}
