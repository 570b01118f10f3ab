package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampColumnWidth(t *testing.T) {
	assert.Equal(t, minColumnWidth, clampColumnWidth(10))
	assert.Equal(t, 200, clampColumnWidth(200))
	assert.Equal(t, maxColumnWidth, clampColumnWidth(9000))
}

func TestResolveColumnWidths(t *testing.T) {
	widths := resolveColumnWidths(nil)
	assert.Equal(t, defaultColumnWidths(), widths)

	widths = resolveColumnWidths(map[string]int{
		columnName: 400,
		"bogus":    50,
		columnSKU:  -1,
	})
	assert.Equal(t, 400, widths[columnName])
	assert.Equal(t, defaultColumnWidths()[columnSKU], widths[columnSKU])
	_, ok := widths["bogus"]
	assert.False(t, ok)
}

func TestColumnLayout_Resize(t *testing.T) {
	var persisted map[string]int
	layout := newColumnLayout(map[string]int{columnVendor: 130}, func(widths map[string]int) {
		persisted = widths
	})

	layout.StartResize(columnVendor, 1000, layout.Width(columnVendor))
	assert.True(t, layout.Resizing())

	layout.MoveResize(1050)
	assert.Equal(t, 180, layout.Width(columnVendor))

	// Dragging far past the limit clamps.
	layout.MoveResize(3000)
	assert.Equal(t, maxColumnWidth, layout.Width(columnVendor))

	// Dragging back before release still applies.
	layout.MoveResize(1020)
	assert.Equal(t, 150, layout.Width(columnVendor))

	layout.EndResize()
	assert.False(t, layout.Resizing())
	require.NotNil(t, persisted)
	assert.Equal(t, 150, persisted[columnVendor])
}

func TestColumnLayout_MoveWithoutSession(t *testing.T) {
	layout := newColumnLayout(nil, nil)
	before := layout.Width(columnName)
	layout.MoveResize(500)
	assert.Equal(t, before, layout.Width(columnName))
	layout.EndResize() // no-op
}

func TestColumnLayout_WidthsSnapshot(t *testing.T) {
	layout := newColumnLayout(nil, nil)
	snapshot := layout.Widths()
	snapshot[columnName] = 1
	assert.NotEqual(t, 1, layout.Width(columnName))
}
