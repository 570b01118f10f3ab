package main

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type markdownTheme string

const (
	markdownThemeAuto  markdownTheme = "auto"
	markdownThemeDark  markdownTheme = "dark"
	markdownThemeLight markdownTheme = "light"
)

var (
	markdownMu       sync.Mutex
	markdownRenderer *glamour.TermRenderer
	markdownErr      error
	markdownStyle    = markdownThemeAuto
	markdownWordWrap = 72
)

// renderMarkdown returns glamour-rendered terminal output, falling back
// to the raw text when the renderer is unavailable.
func renderMarkdown(content string) string {
	renderer := ensureMarkdownRenderer()
	if renderer == nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func ensureMarkdownRenderer() *glamour.TermRenderer {
	markdownMu.Lock()
	defer markdownMu.Unlock()
	if markdownRenderer != nil && markdownErr == nil {
		return markdownRenderer
	}
	options := []glamour.TermRendererOption{
		glamour.WithWordWrap(markdownWordWrap),
	}
	switch markdownStyle {
	case markdownThemeLight:
		options = append(options, glamour.WithStandardStyle("light"))
	case markdownThemeDark:
		options = append(options, glamour.WithStandardStyle("dark"))
	default:
		options = append(options, glamour.WithAutoStyle())
	}
	markdownRenderer, markdownErr = glamour.NewTermRenderer(options...)
	if markdownErr != nil {
		return nil
	}
	return markdownRenderer
}

func setMarkdownTheme(theme markdownTheme) {
	markdownMu.Lock()
	if theme == "" {
		theme = markdownThemeAuto
	}
	if markdownStyle != theme {
		markdownStyle = theme
		markdownRenderer = nil
		markdownErr = nil
	}
	markdownMu.Unlock()
}

func markdownThemeFromString(value string) markdownTheme {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dark":
		return markdownThemeDark
	case "light":
		return markdownThemeLight
	default:
		return markdownThemeAuto
	}
}

const helpMarkdown = `# wareroom

Terminal admin for the product catalog.

## Table

- ` + "`/`" + ` search (debounced) • ` + "`{`/`}`" + ` pick a column • ` + "`s`" + ` cycles its sort
- ` + "`left/right`" + ` change page • ` + "`r`" + ` refresh
- ` + "`a`" + ` add row • ` + "`e`" + ` edit row • ` + "`d`" + ` delete row
- ` + "`space`" + ` select row • ` + "`ctrl+a`" + ` select/deselect page
- ` + "`<`/`>`" + ` resize the highlighted column (mouse drag on the header works too)
- ` + "`y`" + ` copy SKU • ` + "`x`" + ` export CSV • ` + "`X`" + ` export XLSX
- ` + "`ctrl+o`" + ` sign out • ` + "`q`" + ` quit • ` + "`?`" + ` toggle this help

## Editing

Tab cycles fields, enter saves, esc cancels. A dirty edit asks for
confirmation before it is abandoned.

Local rows (not yet on the server) are marked with ` + "`+`" + ` and only appear
on the default unsorted, unfiltered view.
`
