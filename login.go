package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginResultMsg struct {
	resp loginResponse
	err  error
}

// loginView is the sign-in screen: username, password, remember-me.
type loginView struct {
	username   textinput.Model
	password   textinput.Model
	remember   bool
	focus      int // 0 username, 1 password, 2 remember
	submitting bool
	errMsg     string
}

func newLoginView() *loginView {
	username := textinput.New()
	username.Prompt = "> "
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Prompt = "> "
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &loginView{username: username, password: password}
}

func (v *loginView) setFocus(index int) {
	if index < 0 {
		index = 2
	}
	if index > 2 {
		index = 0
	}
	v.focus = index
	v.username.Blur()
	v.password.Blur()
	switch index {
	case 0:
		v.username.Focus()
	case 1:
		v.password.Focus()
	}
}

// Update handles login-screen input; it returns a submit command when
// the form is sent.
func (v *loginView) Update(msg tea.Msg, api *apiClient, expiresMin int) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			v.setFocus(v.focus + 1)
			return nil
		case "shift+tab", "up":
			v.setFocus(v.focus - 1)
			return nil
		case " ":
			if v.focus == 2 {
				v.remember = !v.remember
				return nil
			}
		case "enter":
			return v.submit(api, expiresMin)
		}
	}
	var cmd tea.Cmd
	switch v.focus {
	case 0:
		v.username, cmd = v.username.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	}
	if v.errMsg != "" {
		if _, ok := msg.(tea.KeyMsg); ok {
			v.errMsg = ""
		}
	}
	return cmd
}

func (v *loginView) submit(api *apiClient, expiresMin int) tea.Cmd {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	if username == "" || password == "" {
		v.errMsg = "username and password are required"
		return nil
	}
	if v.submitting {
		return nil
	}
	v.submitting = true
	v.errMsg = ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resp, err := api.Login(ctx, username, password, expiresMin)
		return loginResultMsg{resp: resp, err: err}
	}
}

// ApplyResult folds the login response in, reporting success.
func (v *loginView) ApplyResult(msg loginResultMsg) bool {
	v.submitting = false
	if msg.err != nil {
		v.errMsg = humanizeError(msg.err, "sign-in failed, try again")
		return false
	}
	if msg.resp.AccessToken == "" && msg.resp.Token == "" {
		v.errMsg = "no token in the server response"
		return false
	}
	return true
}

func (v *loginView) View(s styles, width, height int) string {
	var b strings.Builder
	b.WriteString(s.overlayPrompt.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(s.fieldLabel.Render("Username"))
	b.WriteRune('\n')
	b.WriteString(v.username.View())
	b.WriteString("\n\n")
	b.WriteString(s.fieldLabel.Render("Password"))
	b.WriteRune('\n')
	b.WriteString(v.password.View())
	b.WriteString("\n\n")
	check := "[ ]"
	if v.remember {
		check = "[x]"
	}
	line := check + " Remember me"
	if v.focus == 2 {
		line = "• " + line
	}
	b.WriteString(line)
	if v.submitting {
		b.WriteString("\n\n")
		b.WriteString(s.statusHint.Render("Signing in…"))
	}
	if v.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(s.fieldError.Render(v.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(s.hint.Render("tab next • space toggle • enter sign in"))
	card := s.overlay.Width(min(48, max(28, width-8))).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
