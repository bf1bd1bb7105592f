package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/client"
	"github.com/promptstudio/prompt-studio/internal/conversation"
	"github.com/promptstudio/prompt-studio/internal/platform/logger"
)

// chatInFlight builds a model sitting on the chat screen with one
// optimistically appended user turn and a send in flight.
func chatInFlight(t *testing.T, store *conversation.Store) Model {
	t.Helper()
	c, err := client.New("http://localhost:1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	m := New(c, store, logger.NewNop())

	tpl, ok := catalog.TemplateByID(catalog.ChatTemplateID)
	if !ok {
		t.Fatalf("chat template missing")
	}
	mdl, ok := catalog.ModelByID("groq-llama-3.1-8b")
	if !ok {
		t.Fatalf("model missing")
	}
	m.selectedTemplate = tpl
	m.selectedModel = mdl

	next, _ := m.enterTemplate()
	m = next.(Model)

	m.chatInput.SetValue("hello there")
	next, _ = m.submitChatMessage()
	m = next.(Model)

	if !m.busy {
		t.Fatalf("submit did not mark send in flight")
	}
	if msgs := m.chat.Messages(); len(msgs) != 1 || msgs[0].Role != conversation.RoleUser {
		t.Fatalf("optimistic append missing: %+v", msgs)
	}
	return m
}

func TestChat_EscWaitsForInFlightSend(t *testing.T) {
	store, err := conversation.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	m := chatInFlight(t, store)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.screen != screenChat || m.chat == nil {
		t.Fatalf("chat torn down while send in flight")
	}

	next, _ = m.Update(executeErrMsg{err: errors.New("Request timed out. Please try again.")})
	m = next.(Model)
	if m.busy {
		t.Fatalf("busy flag stuck after failure")
	}
	if msgs := m.chat.Messages(); len(msgs) != 0 {
		t.Fatalf("failed turn not rolled back: %+v", msgs)
	}
	if err := m.chat.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if msgs, _ := store.Load(catalog.ChatTemplateID); len(msgs) != 0 {
		t.Fatalf("unanswered user turn persisted: %+v", msgs)
	}

	// Now that nothing is in flight, esc leaves the chat normally.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.screen != screenTemplates || m.chat != nil {
		t.Fatalf("esc after resolution did not leave chat")
	}
}

func TestChat_ClearIgnoredWhileSendInFlight(t *testing.T) {
	store, err := conversation.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	m := chatInFlight(t, store)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	if len(m.chat.Messages()) != 1 {
		t.Fatalf("history cleared while send in flight")
	}

	// The reply lands in the conversation it was sent from.
	next, _ = m.Update(executeResultMsg{result: "hi back"})
	m = next.(Model)
	if m.screen != screenChat {
		t.Fatalf("chat result landed on wrong screen: %d", m.screen)
	}
	msgs := m.chat.Messages()
	if len(msgs) != 2 || msgs[1].Role != conversation.RoleAssistant {
		t.Fatalf("assistant reply misplaced: %+v", msgs)
	}
}

func TestChat_QuitMidFlightDropsUnansweredTurn(t *testing.T) {
	store, err := conversation.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	m := chatInFlight(t, store)

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("quit did not produce a command")
	}
	if msgs, _ := store.Load(catalog.ChatTemplateID); len(msgs) != 0 {
		t.Fatalf("unanswered user turn persisted on quit: %+v", msgs)
	}
}
