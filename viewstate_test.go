package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewState(t *testing.T) {
	assert.Nil(t, parseViewState(""))
	assert.Nil(t, parseViewState("sort=bogus&dir=asc"))
	assert.Nil(t, parseViewState("%zz"))

	sort := parseViewState("sort=vendor&dir=desc")
	require.NotNil(t, sort)
	assert.Equal(t, columnVendor, sort.Key)
	assert.Equal(t, sortDesc, sort.Direction)

	// A missing or unknown direction falls back to ascending.
	sort = parseViewState("sort=price")
	require.NotNil(t, sort)
	assert.Equal(t, sortAsc, sort.Direction)

	sort = parseViewState("sort=price&dir=sideways")
	require.NotNil(t, sort)
	assert.Equal(t, sortAsc, sort.Direction)
}

func TestEncodeViewState(t *testing.T) {
	assert.Empty(t, encodeViewState(nil))

	encoded := encodeViewState(&sortState{Key: columnName, Direction: sortDesc})
	assert.Equal(t, "dir=desc&sort=name", encoded)

	// Round trip.
	parsed := parseViewState(encoded)
	require.NotNil(t, parsed)
	assert.Equal(t, columnName, parsed.Key)
	assert.Equal(t, sortDesc, parsed.Direction)
}

func TestStripLegacyParams(t *testing.T) {
	raw, changed := stripLegacyParams("sort=name&dir=asc")
	assert.False(t, changed)
	assert.Equal(t, "sort=name&dir=asc", raw)

	raw, changed = stripLegacyParams("cols=name:320&sort=name&dir=asc")
	assert.True(t, changed)
	parsed := parseViewState(raw)
	require.NotNil(t, parsed)
	assert.Equal(t, columnName, parsed.Key)
	assert.NotContains(t, raw, "cols")

	// Only legacy params present: strips to an empty view.
	raw, changed = stripLegacyParams("cols=name:320")
	assert.True(t, changed)
	assert.Empty(t, raw)
}
