package main

// Column layout: per-column widths in the stored pixel unit, clamped to
// a usable range, with an interactive drag session. While a session is
// active every pointer-motion event is routed to it no matter where the
// pointer is, so a drag survives leaving the header cell.

const (
	minColumnWidth = 110
	maxColumnWidth = 520
)

func defaultColumnWidths() map[string]int {
	return map[string]int{
		columnName:   320,
		columnVendor: 180,
		columnSKU:    160,
		columnRating: 120,
		columnPrice:  150,
	}
}

func clampColumnWidth(value int) int {
	if value < minColumnWidth {
		return minColumnWidth
	}
	if value > maxColumnWidth {
		return maxColumnWidth
	}
	return value
}

// resolveColumnWidths merges stored overrides over the defaults,
// ignoring unknown keys and non-positive values.
func resolveColumnWidths(overrides map[string]int) map[string]int {
	widths := defaultColumnWidths()
	for _, key := range productColumnKeys {
		if value, ok := overrides[key]; ok && value > 0 {
			widths[key] = clampColumnWidth(value)
		}
	}
	return widths
}

type resizeSession struct {
	key        string
	startX     int
	startWidth int
}

type columnLayout struct {
	widths   map[string]int
	resize   *resizeSession
	onChange func(map[string]int)
}

func newColumnLayout(overrides map[string]int, onChange func(map[string]int)) *columnLayout {
	return &columnLayout{
		widths:   resolveColumnWidths(overrides),
		onChange: onChange,
	}
}

func (l *columnLayout) Width(key string) int {
	return l.widths[key]
}

func (l *columnLayout) Widths() map[string]int {
	snapshot := make(map[string]int, len(l.widths))
	for key, value := range l.widths {
		snapshot[key] = value
	}
	return snapshot
}

// StartResize begins a drag session; a lingering previous session is
// torn down first.
func (l *columnLayout) StartResize(key string, startX, startWidth int) {
	l.resize = &resizeSession{key: key, startX: startX, startWidth: startWidth}
}

func (l *columnLayout) Resizing() bool {
	return l.resize != nil
}

// MoveResize applies the pointer position to the active session.
func (l *columnLayout) MoveResize(x int) {
	if l.resize == nil {
		return
	}
	l.widths[l.resize.key] = clampColumnWidth(l.resize.startWidth + x - l.resize.startX)
}

// EndResize finishes the session and hands the final map to the
// persistence hook.
func (l *columnLayout) EndResize() {
	if l.resize == nil {
		return
	}
	l.resize = nil
	if l.onChange != nil {
		l.onChange(l.Widths())
	}
}
