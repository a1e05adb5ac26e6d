package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetDel(t *testing.T) {
	cache, err := NewCache(time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	cache.Set("institution:ins_1", "First Platypus Bank")

	got, ok := cache.Get("institution:ins_1")
	require.True(t, ok)
	assert.Equal(t, "First Platypus Bank", got)

	cache.Del("institution:ins_1")
	_, ok = cache.Get("institution:ins_1")
	assert.False(t, ok)
}
