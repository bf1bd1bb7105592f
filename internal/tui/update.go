package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/conversation"
	"github.com/promptstudio/prompt-studio/internal/promptbuild"
)

const modelInputKey = "modelId"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case spinner.TickMsg:
		if !m.busy && m.screen != screenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.templates = msg.templates
		m.models = msg.models
		m.buildLists()
		m.screen = screenTemplates
		m.err = ""
		return m, nil

	case catalogErrMsg:
		m.err = msg.err.Error()
		return m, nil

	case executeResultMsg:
		return m.handleResult(msg)

	case executeErrMsg:
		m.busy = false
		m.err = msg.err.Error()
		if m.screen == screenChat && m.chat != nil {
			// The user turn was shown optimistically; take it back.
			m.chat.RollbackLast()
			m.refreshChatView()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveWidget(msg)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	w, h := m.listSize()
	m.templateList.SetSize(w, h)
	m.modelList.SetSize(w, h)

	m.chatInput.Width = msg.Width - 4
	m.chatView.Width = msg.Width
	m.chatView.Height = chatViewportHeight(msg.Height)
	m.resultView.Width = msg.Width
	m.resultView.Height = msg.Height - 4

	if m.form != nil {
		for i := range m.form.fields {
			fld := &m.form.fields[i]
			switch fld.spec.Type {
			case catalog.InputTextarea:
				fld.area.SetWidth(msg.Width - 4)
			case catalog.InputSelectSearch:
			default:
				fld.text.Width = msg.Width - 4
			}
		}
	}
	if m.screen == screenChat {
		m.refreshChatView()
	}
	if m.screen == screenResult {
		m.renderResult()
	}
	return m
}

func chatViewportHeight(total int) int {
	h := total - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) handleResult(msg executeResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.err = ""

	if m.screen == screenChat && m.chat != nil {
		m.chat.Append(conversation.RoleAssistant, msg.result)
		m.refreshChatView()
		m.chatView.GotoBottom()
		return m, nil
	}

	m.result = msg.result
	m.renderResult()
	m.screen = screenResult
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.screen {
	case screenLoading:
		return m.handleLoadingKey(msg)
	case screenTemplates:
		return m.handleTemplatesKey(msg)
	case screenModels:
		return m.handleModelsKey(msg)
	case screenForm:
		return m.handleFormKey(msg)
	case screenChat:
		return m.handleChatKey(msg)
	case screenResult:
		return m.handleResultKey(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.chat != nil {
		if m.busy {
			// The in-flight turn will never receive its reply once the
			// program exits; drop the optimistic user message before the
			// final save so no unanswered turn persists.
			m.chat.RollbackLast()
		}
		if err := m.chat.Flush(); err != nil {
			m.log.Warn("failed to save conversation on exit", "error", err.Error())
		}
	}
	return m, tea.Quit
}

func (m Model) handleLoadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		if m.err != "" {
			m.err = ""
			return m, tea.Batch(m.spinner.Tick, loadCatalogCmd(m.client))
		}
	}
	return m, nil
}

func (m Model) handleTemplatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.templateList.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m.quit()
		case "enter":
			if item, ok := m.templateList.SelectedItem().(templateItem); ok {
				tpl := item.tpl
				m.selectedTemplate = &tpl
				m.screen = screenModels
				m.err = ""
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m Model) handleModelsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modelList.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			m.screen = screenTemplates
			return m, nil
		case "enter":
			if item, ok := m.modelList.SelectedItem().(modelItem); ok {
				mdl := item.model
				m.selectedModel = &mdl
				return m.enterTemplate()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.modelList, cmd = m.modelList.Update(msg)
	return m, cmd
}

// enterTemplate opens the chat or the form for the selected template.
func (m Model) enterTemplate() (tea.Model, tea.Cmd) {
	m.err = ""
	if m.selectedTemplate.IsChat() {
		m.chat = conversation.NewManager(m.store, m.log, m.selectedTemplate.ID)
		m.chatView.Width = m.width
		m.chatView.Height = chatViewportHeight(m.height)
		m.refreshChatView()
		m.chatView.GotoBottom()
		m.screen = screenChat
		return m, m.chatInput.Focus()
	}

	m.form = newForm(*m.selectedTemplate, m.width-4)
	m.screen = screenForm
	return m, m.form.focusCurrent()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.screen = screenModels
		m.form = nil
		m.err = ""
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "ctrl+s":
		return m.submitForm()
	case "left", "right":
		if cur := m.form.current(); cur != nil && cur.spec.Type == catalog.InputSelectSearch {
			if msg.String() == "left" {
				cur.cycle(-1)
			} else {
				cur.cycle(1)
			}
			return m, nil
		}
	case "enter":
		if cur := m.form.current(); cur != nil && cur.spec.Type != catalog.InputTextarea {
			return m.submitForm()
		}
	}

	return m, m.form.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if name := m.form.missingRequired(); name != "" {
		m.err = "Missing required input: " + name
		return m, nil
	}

	inputs := m.form.inputs()
	inputs.Set(modelInputKey, m.selectedModel.ID)

	m.busy = true
	m.err = ""
	return m, tea.Batch(m.spinner.Tick, executeCmd(m.client, m.selectedTemplate.ID, inputs))
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Teardown waits for the in-flight turn to resolve; leaving now
		// would persist the optimistic user message with no reply and
		// strand the late response outside the chat screen.
		if m.busy {
			return m, nil
		}
		if err := m.chat.Flush(); err != nil {
			m.log.Warn("failed to save conversation", "error", err.Error())
		}
		m.chat = nil
		m.chatInput.Reset()
		m.screen = screenTemplates
		m.err = ""
		return m, nil
	case "ctrl+l":
		if m.busy {
			return m, nil
		}
		m.chat.Clear()
		m.refreshChatView()
		m.err = ""
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	case "enter":
		return m.submitChatMessage()
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) submitChatMessage() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	text := strings.TrimSpace(m.chatInput.Value())
	if text == "" {
		return m, nil
	}

	// History is captured before the optimistic append so the new turn is
	// not duplicated inside the prompt's history block.
	history := conversation.HistoryPayload(m.chat.Messages())

	m.chat.Append(conversation.RoleUser, text)
	m.chatInput.Reset()
	m.refreshChatView()
	m.chatView.GotoBottom()

	inputs := promptbuild.NewInputs()
	inputs.Set("Your Message", text)
	inputs.Set("conversationHistory", history)
	inputs.Set(modelInputKey, m.selectedModel.ID)

	m.busy = true
	m.err = ""
	return m, tea.Batch(m.spinner.Tick, executeCmd(m.client, m.selectedTemplate.ID, inputs))
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.screen = screenForm
		m.err = ""
		return m, m.form.focusCurrent()
	case "n":
		m.screen = screenTemplates
		m.form = nil
		m.result = ""
		m.err = ""
		return m, nil
	case "q":
		return m.quit()
	}

	var cmd tea.Cmd
	m.resultView, cmd = m.resultView.Update(msg)
	return m, cmd
}

// updateActiveWidget forwards non-key messages to whichever widget owns the
// screen, keeping cursor blinks and scroll animations alive.
func (m Model) updateActiveWidget(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenTemplates:
		m.templateList, cmd = m.templateList.Update(msg)
	case screenModels:
		m.modelList, cmd = m.modelList.Update(msg)
	case screenForm:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	case screenChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	case screenResult:
		m.resultView, cmd = m.resultView.Update(msg)
	}
	return m, cmd
}
