package provider

import (
	"context"

	"github.com/promptstudio/prompt-studio/internal/platform/apierr"
)

// NotImplemented is the sentinel strategy for providers that exist in the
// catalog but have no live integration yet.
type NotImplemented struct{}

func (NotImplemented) Invoke(ctx context.Context, prompt string, model string) (string, error) {
	return "", apierr.New(apierr.ProviderNotImplemented, "Model provider not implemented yet")
}
