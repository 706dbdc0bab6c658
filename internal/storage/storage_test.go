package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NewMemory()

	key, err := s.Upload(ctx, "u1/cv.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "u1/cv.pdf", key)
	assert.True(t, s.(*Memory).Has(key))

	u, err := s.SignedGetURL(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.Contains(t, u, "expires=")

	require.NoError(t, s.Delete(ctx, key))
	assert.False(t, s.(*Memory).Has(key))
}
