// Package conversation keeps per-template chat history on disk so a chat
// session survives console restarts.
package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Message is one turn of a chat conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Store persists one JSON file per template under the state directory.
type Store struct {
	dir string
}

// DefaultDir resolves the state directory under the user's home.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".promptstudio", "conversations"), nil
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("conversation: store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create conversation directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func (s *Store) path(templateID string) string {
	name := unsafePathChars.ReplaceAllString(templateID, "_")
	return filepath.Join(s.dir, name+".json")
}

// Load reads the history for a template. A missing file is an empty
// conversation, not an error.
func (s *Store) Load(templateID string) ([]Message, error) {
	data, err := os.ReadFile(s.path(templateID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read conversation: %w", err)
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("decode conversation: %w", err)
	}
	return msgs, nil
}

// Save writes the history atomically: a temp file in the same directory is
// renamed over the target so a crash never leaves a half-written file.
func (s *Store) Save(templateID string, msgs []Message) error {
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}

	target := s.path(templateID)
	tmp, err := os.CreateTemp(s.dir, ".conversation-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write conversation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace conversation: %w", err)
	}
	return nil
}

// Delete removes the history file. Absence is success.
func (s *Store) Delete(templateID string) error {
	err := os.Remove(s.path(templateID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}
