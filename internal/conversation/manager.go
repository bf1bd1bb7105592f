package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/promptstudio/prompt-studio/internal/platform/logger"
	"github.com/promptstudio/prompt-studio/internal/promptbuild"
)

const (
	// MaxMessages bounds the on-disk history. Older turns fall off the front.
	MaxMessages = 50

	// saveDebounce coalesces bursts of writes. The manager persists once the
	// history stops changing for this long, or immediately on Flush.
	saveDebounce = 500 * time.Millisecond
)

// Manager holds the in-memory history for one template and persists it
// through the store with trailing debounce. Safe for concurrent use.
type Manager struct {
	store      *Store
	log        *logger.Logger
	templateID string

	mu       sync.Mutex
	messages []Message
	timer    *time.Timer
}

// NewManager loads existing history for the template. A corrupt or
// unreadable file degrades to an empty conversation with a warning rather
// than blocking the chat.
func NewManager(store *Store, log *logger.Logger, templateID string) *Manager {
	m := &Manager{store: store, log: log, templateID: templateID}

	msgs, err := store.Load(templateID)
	if err != nil {
		log.Warn("conversation history unreadable, starting fresh",
			"template_id", templateID,
			"error", err.Error(),
		)
		msgs = nil
	}
	if len(msgs) > MaxMessages {
		msgs = msgs[len(msgs)-MaxMessages:]
	}
	m.messages = msgs
	return m
}

// Messages returns a copy of the current history, oldest first.
func (m *Manager) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Append records a turn and schedules a save. Content is sanitized before
// it touches memory so nothing unsanitized can reach disk. History beyond
// MaxMessages drops oldest-first.
func (m *Manager) Append(role, content string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   promptbuild.Sanitize(content),
		Timestamp: time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	if len(m.messages) > MaxMessages {
		m.messages = m.messages[len(m.messages)-MaxMessages:]
	}
	m.scheduleSaveLocked()
	return msg
}

// RollbackLast removes exactly the most recent message. The console calls
// this when an optimistically shown user turn fails to execute.
func (m *Manager) RollbackLast() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return
	}
	m.messages = m.messages[:len(m.messages)-1]
	m.scheduleSaveLocked()
}

// Clear empties the conversation in memory and on disk. A failed file
// delete is logged and otherwise ignored; the in-memory reset always wins.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.messages = nil
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	if err := m.store.Delete(m.templateID); err != nil {
		m.log.Warn("failed to delete conversation file",
			"template_id", m.templateID,
			"error", err.Error(),
		)
	}
}

// Flush cancels any pending debounce and persists immediately.
func (m *Manager) Flush() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	snapshot := make([]Message, len(m.messages))
	copy(snapshot, m.messages)
	m.mu.Unlock()

	return m.store.Save(m.templateID, snapshot)
}

// scheduleSaveLocked arms the trailing debounce timer, replacing any timer
// already pending. Caller holds m.mu.
func (m *Manager) scheduleSaveLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(saveDebounce, func() {
		if err := m.Flush(); err != nil {
			m.log.Warn("failed to persist conversation",
				"template_id", m.templateID,
				"error", err.Error(),
			)
		}
	})
}

// HistoryPayload converts the last window of turns into the wire shape the
// execute endpoint expects under the conversationHistory input.
func HistoryPayload(msgs []Message) []any {
	out := make([]any, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, map[string]any{
			"role":    msg.Role,
			"content": msg.Content,
		})
	}
	return out
}
