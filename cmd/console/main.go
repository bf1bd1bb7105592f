package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/promptstudio/prompt-studio/internal/client"
	"github.com/promptstudio/prompt-studio/internal/conversation"
	"github.com/promptstudio/prompt-studio/internal/platform/logger"
	"github.com/promptstudio/prompt-studio/internal/tui"
)

const defaultServerBase = "http://localhost:8080"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	base := strings.TrimSpace(os.Getenv("SERVER_API_BASE"))
	if base == "" {
		base = defaultServerBase
	}

	c, err := client.New(base)
	if err != nil {
		return err
	}

	convDir, err := conversation.DefaultDir()
	if err != nil {
		return err
	}
	store, err := conversation.NewStore(convDir)
	if err != nil {
		return err
	}

	// Logs go to a file so they never tear the terminal UI.
	log, err := logger.NewFile(os.Getenv("APP_ENV"), filepath.Join(filepath.Dir(convDir), "console.log"))
	if err != nil {
		log = logger.NewNop()
	}
	defer log.Sync()

	p := tea.NewProgram(tui.New(c, store, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console exited: %w", err)
	}
	return nil
}
