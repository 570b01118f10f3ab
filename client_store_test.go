package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientStore_RoundTrip(t *testing.T) {
	store, err := openClientStoreAt(filepath.Join(t.TempDir(), "client.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	var missing string
	ok, err := store.Get("absent", &missing)
	require.NoError(t, err)
	assert.False(t, ok)

	widths := map[string]int{columnName: 400, columnPrice: 150}
	require.NoError(t, store.Set(columnWidthsKey, widths))

	var loaded map[string]int
	ok, err = store.Get(columnWidthsKey, &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, widths, loaded)

	// Overwrite.
	widths[columnName] = 320
	require.NoError(t, store.Set(columnWidthsKey, widths))
	ok, err = store.Get(columnWidthsKey, &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 320, loaded[columnName])

	require.NoError(t, store.Delete(columnWidthsKey))
	ok, err = store.Get(columnWidthsKey, &loaded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.sqlite")

	store, err := openClientStoreAt(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(viewStateKey, "sort=name&dir=asc"))
	require.NoError(t, store.Close())

	store, err = openClientStoreAt(path)
	require.NoError(t, err)
	defer store.Close()

	var raw string
	ok, err := store.Get(viewStateKey, &raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sort=name&dir=asc", raw)
}

func TestClientStore_InvalidateHooks(t *testing.T) {
	store, err := openClientStoreAt(filepath.Join(t.TempDir(), "client.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	var keys []string
	store.OnInvalidate(func(key string) { keys = append(keys, key) })

	require.NoError(t, store.Set("a", 1))
	require.NoError(t, store.Delete("a"))
	assert.Equal(t, []string{"a", "a"}, keys)
}

func TestClientStore_NilSafe(t *testing.T) {
	store := &clientStore{}
	assert.NoError(t, store.Set("k", 1))
	assert.NoError(t, store.Delete("k"))
	var out int
	ok, err := store.Get("k", &out)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, store.Close())
}
