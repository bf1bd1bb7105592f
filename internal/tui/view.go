package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/conversation"
)

func (m Model) View() string {
	switch m.screen {
	case screenLoading:
		return m.viewLoading()
	case screenTemplates:
		return m.templateList.View()
	case screenModels:
		return m.viewModels()
	case screenForm:
		return m.viewForm()
	case screenChat:
		return m.viewChat()
	case screenResult:
		return m.viewResult()
	}
	return ""
}

func (m Model) viewLoading() string {
	if m.err != "" {
		return errorStyle.Render("Failed to load catalogs: "+m.err) + "\n" +
			helpStyle.Render("r retry • q quit")
	}
	return fmt.Sprintf("\n  %s Loading templates and models...\n", m.spinner.View())
}

func (m Model) viewModels() string {
	var b strings.Builder
	if m.selectedTemplate != nil {
		b.WriteString(subtitleStyle.Render("Template: "+m.selectedTemplate.Title) + "\n")
	}
	b.WriteString(m.modelList.View())
	b.WriteString("\n" + helpStyle.Render("enter select • esc back"))
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.selectedTemplate.Title) + "\n")
	if m.selectedModel != nil {
		b.WriteString(subtitleStyle.Render("Model: "+m.selectedModel.Label) + "\n\n")
	}

	for i := range m.form.fields {
		fld := &m.form.fields[i]
		label := fld.spec.Name
		if !fld.spec.IsRequired() {
			label += " (optional)"
		}
		style := labelStyle
		if i == m.form.focused {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(label) + "\n")

		switch fld.spec.Type {
		case catalog.InputTextarea:
			b.WriteString(fld.area.View() + "\n")
		case catalog.InputSelectSearch:
			value := fld.value()
			if value == "" {
				value = "(no options)"
			}
			marker := "  "
			if i == m.form.focused {
				marker = "> "
			}
			b.WriteString(marker + selectValueStyle.Render("< "+value+" >") + "\n")
		default:
			b.WriteString(fld.text.View() + "\n")
		}
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(m.spinner.View() + " Executing prompt...\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}
	b.WriteString(helpStyle.Render("tab next field • left/right cycle options • ctrl+s run • esc back"))
	return b.String()
}

func (m Model) viewChat() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Chat with AI"))
	if m.selectedModel != nil {
		b.WriteString(subtitleStyle.Render("  " + m.selectedModel.Label))
	}
	b.WriteString("\n")
	b.WriteString(m.chatView.View() + "\n")

	if m.busy {
		b.WriteString(m.spinner.View() + " Thinking...\n")
	} else {
		b.WriteString(m.chatInput.View() + "\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}
	b.WriteString(helpStyle.Render("enter send • ctrl+l clear history • esc back • ctrl+c quit"))
	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.selectedTemplate.Title+" - Result") + "\n")
	b.WriteString(m.resultView.View() + "\n")
	b.WriteString(helpStyle.Render("esc edit inputs • n new template • q quit"))
	return b.String()
}

// refreshChatView rebuilds the chat transcript inside the viewport.
func (m *Model) refreshChatView() {
	if m.chat == nil {
		m.chatView.SetContent("")
		return
	}
	msgs := m.chat.Messages()
	if len(msgs) == 0 {
		m.chatView.SetContent(subtitleStyle.Render("No messages yet. Say hello."))
		return
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.Role == conversation.RoleUser {
			b.WriteString(userMsgStyle.Render("You") + "\n" + msg.Content)
		} else {
			b.WriteString(assistantMsgStyle.Render("Assistant") + "\n" + msg.Content)
		}
	}
	m.chatView.SetContent(b.String())
}

// renderResult runs the markdown renderer over the model output. Rendering
// failures fall back to the raw text.
func (m *Model) renderResult() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.resultView.Width = width
	m.resultView.Height = m.height - 4
	if m.resultView.Height < 5 {
		m.resultView.Height = 5
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		m.resultView.SetContent(m.result)
		return
	}
	out, err := renderer.Render(m.result)
	if err != nil {
		m.resultView.SetContent(m.result)
		return
	}
	m.resultView.SetContent(out)
	m.resultView.GotoTop()
}
