package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptstudio/prompt-studio/internal/client"
	"github.com/promptstudio/prompt-studio/internal/promptbuild"
)

const executeTimeout = 2 * time.Minute

// loadCatalogCmd fetches templates and models in one command so the UI
// either has a complete catalog or a single error to show.
func loadCatalogCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		templates, err := c.Templates(ctx)
		if err != nil {
			return catalogErrMsg{err: err}
		}
		models, err := c.Models(ctx)
		if err != nil {
			return catalogErrMsg{err: err}
		}
		return catalogLoadedMsg{templates: templates, models: models}
	}
}

// executeCmd runs one prompt execution against the server.
func executeCmd(c *client.Client, templateID string, inputs *promptbuild.Inputs) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), executeTimeout)
		defer cancel()

		result, err := c.Execute(ctx, templateID, inputs)
		if err != nil {
			return executeErrMsg{err: err}
		}
		return executeResultMsg{result: result}
	}
}
