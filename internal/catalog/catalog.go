// Package catalog holds the immutable template and model catalogs.
//
// Both catalogs are fixed at process start and safe for unlimited
// concurrent reads. Lookups are by stable id.
package catalog

// InputType enumerates the form widgets a template input can render as.
type InputType string

const (
	InputText         InputType = "text"
	InputTextarea     InputType = "textarea"
	InputSelectSearch InputType = "select-search"
)

// InputSpec declares one named input of a template. Required defaults to
// true; only an explicit false makes an input optional.
type InputSpec struct {
	Name     string    `json:"name"`
	Type     InputType `json:"type"`
	Options  []string  `json:"options,omitempty"`
	Required *bool     `json:"required,omitempty"`
}

// IsRequired reports whether the input must be present and non-empty.
func (s InputSpec) IsRequired() bool {
	return s.Required == nil || *s.Required
}

// Template is a reusable prompt blueprint: declared inputs plus the system
// instruction the prompt builder starts from. OutputSchema, when set, is an
// advisory JSON schema appended to the prompt as a strict-output directive.
type Template struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Inputs       []InputSpec    `json:"inputs"`
	SystemPrompt string         `json:"systemPrompt"`
	OutputSchema map[string]any `json:"outputSchema,omitempty"`
}

// ChatTemplateID is the one template that carries multi-turn conversation
// state. Everything else is single-shot.
const ChatTemplateID = "chat-with-ai"

// IsChat reports whether the template maintains conversation history.
func (t *Template) IsChat() bool {
	return t.ID == ChatTemplateID
}

// Model describes one invocable backend model configuration.
type Model struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Label       string `json:"label"`
	BestFor     string `json:"bestFor"`
	Description string `json:"description"`
}

// TemplateByID returns the template with the given id.
func TemplateByID(id string) (*Template, bool) {
	for i := range Templates {
		if Templates[i].ID == id {
			return &Templates[i], true
		}
	}
	return nil, false
}

// ModelByID returns the model config with the given id.
func ModelByID(id string) (*Model, bool) {
	for i := range Models {
		if Models[i].ID == id {
			return &Models[i], true
		}
	}
	return nil, false
}
