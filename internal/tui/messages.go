package tui

import "github.com/promptstudio/prompt-studio/internal/catalog"

// catalogLoadedMsg delivers both catalogs fetched at startup.
type catalogLoadedMsg struct {
	templates []catalog.Template
	models    []catalog.Model
}

// catalogErrMsg signals that the catalog fetch failed.
type catalogErrMsg struct {
	err error
}

// executeResultMsg delivers a completed prompt execution.
type executeResultMsg struct {
	result string
}

// executeErrMsg signals that an execution failed. The message is already
// human-readable.
type executeErrMsg struct {
	err error
}
