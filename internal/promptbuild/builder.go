// Package promptbuild turns a template definition plus sanitized user
// inputs into the single instruction string sent to the model provider.
// Build is pure: identical inputs always yield identical output.
package promptbuild

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/platform/apierr"
)

const (
	// MaxMessageChars bounds one chat turn.
	MaxMessageChars = 10_000

	// HistoryWindow is how many prior turns are replayed into the prompt.
	HistoryWindow = 10

	messageInput = "Your Message"
	historyInput = "conversationHistory"
)

// Build renders the final prompt for a template and its inputs. Inputs are
// expected to be sanitized already; Build additionally collapses embedded
// newlines so user text cannot fake role markers.
func Build(tpl *catalog.Template, inputs *Inputs) (string, error) {
	if tpl == nil || inputs == nil {
		return "", apierr.New(apierr.MalformedRequest, "Invalid parameters: template and userInputs are required")
	}
	if tpl.IsChat() {
		return buildChat(tpl, inputs)
	}
	return buildForm(tpl, inputs)
}

func buildChat(tpl *catalog.Template, inputs *Inputs) (string, error) {
	raw, _ := inputs.Get(messageInput)
	msg, ok := raw.(string)
	current := strings.TrimSpace(msg)
	if !ok || current == "" {
		return "", apierr.NewParam(apierr.MissingInput, messageInput, "Invalid message: message cannot be empty")
	}
	if utf8.RuneCountInString(current) > MaxMessageChars {
		return "", apierr.NewParam(apierr.InputTooLong, messageInput, "Message too long: maximum 10,000 characters allowed")
	}

	var b strings.Builder
	b.WriteString(tpl.SystemPrompt)
	b.WriteString("\n\n")

	if lines := historyLines(inputs); len(lines) > 0 {
		b.WriteString("CONVERSATION HISTORY:\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString("User: ")
	b.WriteString(CollapseNewlines(current))
	b.WriteString("\n\nAssistant:")
	return b.String(), nil
}

// historyLines renders the trailing window of prior turns. The window is
// cut before filtering, so malformed entries inside it are dropped rather
// than replaced by older turns.
func historyLines(inputs *Inputs) []string {
	raw, ok := inputs.Get(historyInput)
	if !ok {
		return nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}
	if len(entries) > HistoryWindow {
		entries = entries[len(entries)-HistoryWindow:]
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		role, _ := m["role"].(string)
		content, _ := m["content"].(string)
		if role == "" || content == "" {
			continue
		}
		label := "Assistant"
		if role == "user" {
			label = "User"
		}
		out = append(out, label+": "+CollapseNewlines(content))
	}
	return out
}

func buildForm(tpl *catalog.Template, inputs *Inputs) (string, error) {
	var b strings.Builder
	b.WriteString(tpl.SystemPrompt)
	b.WriteString("\n\nUSER INPUT:\n")

	sanitized := NewInputs()
	for _, key := range inputs.Keys() {
		v, _ := inputs.Get(key)
		if s, ok := v.(string); ok {
			sanitized.Set(key, CollapseNewlines(s))
		} else {
			sanitized.Set(key, v)
		}
	}
	b.WriteString(serializeInputs(sanitized))

	if tpl.OutputSchema != nil {
		b.WriteString("\n\nRESPONSE RULES:\n- Return ONLY valid JSON\n- Follow this schema strictly:\n")
		b.WriteString(indentJSON(tpl.OutputSchema, ""))
	}
	return b.String(), nil
}

// serializeInputs renders the mapping as a two-space-indented JSON block,
// keys in the order the caller sent them.
func serializeInputs(in *Inputs) string {
	if in.Len() == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	keys := in.Keys()
	for i, k := range keys {
		v, _ := in.Get(k)
		kb, _ := json.Marshal(k)
		b.WriteString("  ")
		b.Write(kb)
		b.WriteString(": ")
		b.WriteString(indentJSON(v, "  "))
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.String()
}

// indentJSON marshals v with two-space indentation, continuation lines
// prefixed for nesting at the given depth, and without HTML escaping.
func indentJSON(v any, prefix string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimRight(buf.String(), "\n")
}
