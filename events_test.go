package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogger_AppendsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	logger := newEventLogger(path)

	logger.Emit(uiEvent{Event: "search", Query: "pen"})
	logger.Emit(uiEvent{Event: "product-deleted", RowID: "7"})
	logger.Emit(uiEvent{}) // no event name, dropped

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var events []uiEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event uiEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, events, 2)
	assert.Equal(t, "search", events[0].Event)
	assert.Equal(t, "pen", events[0].Query)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "7", events[1].RowID)
}
