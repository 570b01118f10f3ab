package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// uiEvent is one line of the append-only diagnostic log. The file is
// ndjson so cmd/eventstats and plain shell tools can chew through it.
type uiEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	RowID     string            `json:"row_id,omitempty"`
	Query     string            `json:"query,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

type eventLogger struct {
	path string
	mu   sync.Mutex
}

func newEventLogger(path string) *eventLogger {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	return &eventLogger{path: path}
}

func (l *eventLogger) Emit(event uiEvent) {
	if l == nil || strings.TrimSpace(event.Event) == "" {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if len(event.Extra) == 0 {
		event.Extra = nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(data)
}
