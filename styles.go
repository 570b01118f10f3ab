package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	app, topBar, topStatus           lipgloss.Style
	panel, panelFocused              lipgloss.Style
	columnTitle                      lipgloss.Style
	statusBar, statusSeg, statusHint lipgloss.Style
	fieldLabel, fieldError           lipgloss.Style
	localMark, dirtyMark             lipgloss.Style
	overlay, overlayPrompt, hint     lipgloss.Style
	errorBanner                      lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	panelBorder := lipgloss.NormalBorder()
	focusedBorder := lipgloss.DoubleBorder()

	return styles{
		app:           base,
		topBar:        base.Padding(0, 1).Bold(true),
		topStatus:     base.Padding(0, 1),
		panel:         base.BorderStyle(panelBorder),
		panelFocused:  base.BorderStyle(focusedBorder),
		columnTitle:   base.Copy().Bold(true).Padding(0, 1),
		statusBar:     base.Padding(0, 1),
		statusSeg:     base.Padding(0, 1).MarginRight(1),
		statusHint:    base.Copy().Faint(true),
		fieldLabel:    base.Copy().Bold(true),
		fieldError:    base.Copy().Foreground(lipgloss.Color("9")),
		localMark:     base.Copy().Foreground(lipgloss.Color("10")),
		dirtyMark:     base.Copy().Foreground(lipgloss.Color("11")),
		overlay:       base.Border(lipgloss.RoundedBorder()).Padding(1, 2),
		overlayPrompt: base.Copy().Bold(true),
		hint:          base.Copy().Faint(true),
		errorBanner:   base.Copy().Foreground(lipgloss.Color("9")).Padding(0, 1),
	}
}
