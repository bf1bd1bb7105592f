// Package provider adapts the provider-agnostic invocation capability
// onto concrete model backends. The set of supported providers is a
// registry, not a dispatch switch: unregistered providers resolve to the
// NotImplemented sentinel, so selecting one is a normal, expected failure.
package provider

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/platform/apierr"
)

// MaxPromptChars caps the prompt handed to any backend.
const MaxPromptChars = 100_000

// Invoker executes a finished prompt against one provider's model family.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, model string) (string, error)
}

// Registry maps provider identifiers to invocation strategies.
type Registry struct {
	invokers map[string]Invoker
}

func NewRegistry() *Registry {
	return &Registry{invokers: map[string]Invoker{}}
}

func (r *Registry) Register(name string, inv Invoker) {
	r.invokers[strings.ToLower(strings.TrimSpace(name))] = inv
}

// ForProvider never returns nil: unknown providers get the sentinel.
func (r *Registry) ForProvider(name string) Invoker {
	if inv, ok := r.invokers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return inv
	}
	return NotImplemented{}
}

// Dispatcher resolves a model id through the catalog and delegates to the
// provider's invoker.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

func (d *Dispatcher) Invoke(ctx context.Context, prompt string, modelID string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apierr.New(apierr.Internal, "Invalid prompt: prompt must be a non-empty string")
	}
	if utf8.RuneCountInString(prompt) > MaxPromptChars {
		return "", apierr.New(apierr.Internal, "Prompt too long: maximum 100,000 characters allowed")
	}

	m, ok := catalog.ModelByID(strings.TrimSpace(modelID))
	if !ok {
		return "", apierr.New(apierr.InvalidModel, "Invalid AI model selected")
	}

	return d.registry.ForProvider(m.Provider).Invoke(ctx, prompt, m.Model)
}
