// Package tui is the interactive console: pick a template, pick a model,
// fill the form (or chat), and read the rendered result.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/client"
	"github.com/promptstudio/prompt-studio/internal/conversation"
	"github.com/promptstudio/prompt-studio/internal/platform/logger"
)

// screen is the active view of the console state machine.
type screen int

const (
	screenLoading screen = iota
	screenTemplates
	screenModels
	screenForm
	screenChat
	screenResult
)

// templateItem adapts a catalog template to the list widget.
type templateItem struct {
	tpl catalog.Template
}

func (i templateItem) Title() string       { return i.tpl.Title }
func (i templateItem) Description() string { return i.tpl.Description }
func (i templateItem) FilterValue() string { return i.tpl.Title + " " + i.tpl.Description }

// modelItem adapts a catalog model to the list widget.
type modelItem struct {
	model catalog.Model
}

func (i modelItem) Title() string       { return i.model.Label }
func (i modelItem) Description() string { return i.model.BestFor }
func (i modelItem) FilterValue() string { return i.model.Label + " " + i.model.BestFor }

type Model struct {
	client *client.Client
	store  *conversation.Store
	log    *logger.Logger

	screen screen
	width  int
	height int

	templates []catalog.Template
	models    []catalog.Model

	templateList list.Model
	modelList    list.Model

	selectedTemplate *catalog.Template
	selectedModel    *catalog.Model

	form *form

	// chat state
	chat      *conversation.Manager
	chatInput textinput.Model
	chatView  viewport.Model

	// result state
	result     string
	resultView viewport.Model

	spinner spinner.Model

	// busy is the single-flight guard: while an execution is in flight no
	// second submit is accepted.
	busy bool
	err  string
}

func New(c *client.Client, store *conversation.Store, log *logger.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	ci := textinput.New()
	ci.Placeholder = "Type a message"
	ci.CharLimit = 0

	return Model{
		client:    c,
		store:     store,
		log:       log,
		screen:    screenLoading,
		spinner:   sp,
		chatInput: ci,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCatalogCmd(m.client))
}

func newCatalogList(items []list.Item, title string, width, height int) list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return l
}

// listSize keeps the catalogs readable without swallowing the whole screen.
func (m Model) listSize() (int, int) {
	w := m.width
	if w <= 0 {
		w = 80
	}
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return w, h
}

func (m *Model) buildLists() {
	tplItems := make([]list.Item, 0, len(m.templates))
	for _, tpl := range m.templates {
		tplItems = append(tplItems, templateItem{tpl: tpl})
	}
	modelItems := make([]list.Item, 0, len(m.models))
	for _, mdl := range m.models {
		modelItems = append(modelItems, modelItem{model: mdl})
	}

	w, h := m.listSize()
	m.templateList = newCatalogList(tplItems, "Prompt Templates", w, h)
	m.modelList = newCatalogList(modelItems, "AI Models", w, h)
}
