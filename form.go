package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// productForm is the add/edit overlay: one text input per editable
// field, tab cycling focus. The form itself holds no business state;
// every keystroke is pushed to its onChange hook so the overlay store
// stays the single source of truth.
type productForm struct {
	title    string
	inputs   []textinput.Model
	focus    int
	onChange func(field, value string)
}

func newProductForm(title string, onChange func(field, value string)) *productForm {
	inputs := make([]textinput.Model, len(editableFields))
	for i, field := range editableFields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 128
		input.Placeholder = columnTitle(fieldColumnKey(field))
		if field == fieldPrice {
			input.CharLimit = 32
		}
		inputs[i] = input
	}
	f := &productForm{title: title, inputs: inputs, onChange: onChange}
	f.inputs[0].Focus()
	return f
}

func fieldColumnKey(field string) string {
	// Field and column keys coincide for everything the form edits.
	return field
}

func (f *productForm) SetTitle(title string) {
	f.title = title
}

// SetValues seeds the inputs from the active draft or edit session.
func (f *productForm) SetValues(value func(field string) string) {
	for i, field := range editableFields {
		f.inputs[i].SetValue(value(field))
	}
	f.setFocus(0)
}

func (f *productForm) setFocus(index int) {
	if index < 0 {
		index = len(f.inputs) - 1
	}
	if index >= len(f.inputs) {
		index = 0
	}
	for i := range f.inputs {
		if i == index {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = index
}

func (f *productForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil
		}
	}
	var cmd tea.Cmd
	before := f.inputs[f.focus].Value()
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	after := f.inputs[f.focus].Value()
	if after != before && f.onChange != nil {
		f.onChange(editableFields[f.focus], after)
	}
	return cmd
}

func (f *productForm) View(s styles, width int, fieldError func(field string) string) string {
	var b strings.Builder
	b.WriteString(s.overlayPrompt.Render(f.title))
	b.WriteRune('\n')
	for i, field := range editableFields {
		b.WriteRune('\n')
		b.WriteString(s.fieldLabel.Render(columnTitle(fieldColumnKey(field))))
		b.WriteRune('\n')
		b.WriteString(f.inputs[i].View())
		if msg := fieldError(field); msg != "" {
			b.WriteRune('\n')
			b.WriteString(s.fieldError.Render(msg))
		}
		b.WriteRune('\n')
	}
	b.WriteRune('\n')
	b.WriteString(s.hint.Render("tab next field • enter save • esc cancel"))
	return s.overlay.Width(width).Render(b.String())
}
