package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStableAndPositional(t *testing.T) {
	assert.Equal(t, Key("model", "text"), Key("model", "text"))
	assert.NotEqual(t, Key("model", "text"), Key("text", "model"))
	// Joining with a separator keeps ("ab","c") and ("a","bc") apart.
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.True(t, len(Key("x")) > len("textcheck:v1:"))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	require.NoError(t, c.Set("k", []byte("v")))
	val, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, c.Delete("k"))
	_, found = c.Get("k")
	assert.False(t, found)

	require.NoError(t, c.Set("a", []byte("1")))
	require.NoError(t, c.Set("b", []byte("2")))
	require.NoError(t, c.Clear())
	_, found = c.Get("a")
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)
	require.NoError(t, c.Set("k", []byte("v")))
	time.Sleep(30 * time.Millisecond)
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	require.NoError(t, c.Set("k", []byte("v")))
	val, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, c.Delete("k"))
	require.NoError(t, c.Delete("k"), "deleting a missing entry is not an error")
	_, found = c.Get("k")
	assert.False(t, found)
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), -time.Second)
	require.NoError(t, c.Set("k", []byte("v")))
	_, found := c.Get("k")
	assert.False(t, found, "already-expired entries never come back")
}

func TestDiskCacheSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewDiskCache(dir, time.Minute).Set("k", []byte("v")))

	val, found := NewDiskCache(dir, time.Minute).Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewDiskCache(dir, time.Minute).Set(Key("seeded"), []byte("v")))

	c := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := c.Get(Key("seeded"))
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)

	// After promotion the entry survives losing the disk layer.
	require.NoError(t, NewDiskCache(dir, time.Minute).Clear())
	val, found = c.Get(Key("seeded"))
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)
}

func TestLayeredCacheWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)
	require.NoError(t, c.Set("k", []byte("v")))

	_, found := NewDiskCache(dir, time.Minute).Get("k")
	assert.True(t, found)

	require.NoError(t, c.Delete("k"))
	_, found = c.Get("k")
	assert.False(t, found)
}
