package provider

import (
	"context"
	"strings"
	"testing"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/platform/apierr"
)

type recordingInvoker struct {
	prompt string
	model  string
}

func (r *recordingInvoker) Invoke(_ context.Context, prompt string, model string) (string, error) {
	r.prompt = prompt
	r.model = model
	return "done", nil
}

func TestRegistry_UnknownProviderGetsSentinel(t *testing.T) {
	r := NewRegistry()
	inv := r.ForProvider("openai")
	_, err := inv.Invoke(context.Background(), "p", "m")
	ae, ok := apierr.AsError(err)
	if !ok || ae.Code != apierr.ProviderNotImplemented {
		t.Fatalf("expected ProviderNotImplemented, got %v", err)
	}
	if ae.Error() != "Model provider not implemented yet" {
		t.Fatalf("unexpected message: %q", ae.Error())
	}
}

func TestRegistry_LookupIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	rec := &recordingInvoker{}
	r.Register("Groq", rec)
	if _, err := r.ForProvider(" GROQ ").Invoke(context.Background(), "p", "m"); err != nil {
		t.Fatalf("registered provider not found: %v", err)
	}
}

func TestDispatcher_EmptyPrompt(t *testing.T) {
	d := NewDispatcher(NewRegistry())
	_, err := d.Invoke(context.Background(), "   ", "groq-llama-3.1-8b")
	if apierr.CodeOf(err) != apierr.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestDispatcher_PromptTooLong(t *testing.T) {
	d := NewDispatcher(NewRegistry())
	_, err := d.Invoke(context.Background(), strings.Repeat("x", MaxPromptChars+1), "groq-llama-3.1-8b")
	ae, ok := apierr.AsError(err)
	if !ok || ae.Code != apierr.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
	if !strings.Contains(ae.Error(), "Prompt too long") {
		t.Fatalf("unexpected message: %q", ae.Error())
	}
}

func TestDispatcher_UnknownModel(t *testing.T) {
	d := NewDispatcher(NewRegistry())
	_, err := d.Invoke(context.Background(), "prompt", "made-up-model")
	ae, ok := apierr.AsError(err)
	if !ok || ae.Code != apierr.InvalidModel {
		t.Fatalf("expected InvalidModel, got %v", err)
	}
	if ae.Error() != "Invalid AI model selected" {
		t.Fatalf("unexpected message: %q", ae.Error())
	}
}

func TestDispatcher_ForwardsProviderNativeModelName(t *testing.T) {
	r := NewRegistry()
	rec := &recordingInvoker{}
	r.Register(catalog.ProviderGroq, rec)
	d := NewDispatcher(r)

	got, err := d.Invoke(context.Background(), "prompt", "groq-llama-3.1-8b")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got != "done" {
		t.Fatalf("unexpected result: %q", got)
	}
	if rec.model != "llama-3.1-8b-instant" {
		t.Fatalf("expected provider-native name, got %q", rec.model)
	}
}

func TestDispatcher_OllamaModelNotImplemented(t *testing.T) {
	r := NewRegistry()
	r.Register(catalog.ProviderGroq, &recordingInvoker{})
	d := NewDispatcher(r)

	_, err := d.Invoke(context.Background(), "prompt", "ollama-llama3")
	if apierr.CodeOf(err) != apierr.ProviderNotImplemented {
		t.Fatalf("expected ProviderNotImplemented, got %v", err)
	}
}

func TestMock_EchoesLastUserTurn(t *testing.T) {
	m := Mock{}
	got, err := m.Invoke(context.Background(), "system\n\nUser: hello there\n\nAssistant:", "any")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !strings.Contains(got, "hello there") {
		t.Fatalf("unexpected mock output: %q", got)
	}
}
