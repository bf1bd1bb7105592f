package provider

import (
	"context"
	"strings"
)

// Mock is a deterministic invoker for tests and keyless development runs.
// It echoes the tail of the prompt so assertions can see what was built.
type Mock struct{}

func (Mock) Invoke(ctx context.Context, prompt string, model string) (string, error) {
	_ = ctx
	tail := prompt
	if idx := strings.LastIndex(prompt, "User: "); idx >= 0 {
		tail = prompt[idx+len("User: "):]
	}
	tail = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(tail), "Assistant:"))
	if tail == "" {
		return "mock: ok", nil
	}
	return "mock: " + tail, nil
}
