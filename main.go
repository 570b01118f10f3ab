package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	theme := flag.String("theme", "", "Markdown rendering theme: auto, light, or dark")
	flag.Parse()

	// Optional .env next to the binary for local API overrides.
	_ = godotenv.Load()

	m := initialModel()
	if *theme != "" {
		setMarkdownTheme(markdownThemeFromString(*theme))
	}

	if _, err := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
