package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrilens/domain/dataset"
)

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache()
	ds, err := dataset.New([]string{"A"}, [][]string{{"1"}})
	require.NoError(t, err)

	_, ok := cache.Get("x.csv")
	assert.False(t, ok)

	cache.Put("x.csv", ds)
	got, ok := cache.Get("x.csv")
	require.True(t, ok)
	assert.Same(t, ds, got)
	assert.Equal(t, 1, cache.Len())

	cache.Drop("x.csv")
	_, ok = cache.Get("x.csv")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}
