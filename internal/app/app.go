// Package app wires configuration, logging, the provider registry, and the
// HTTP server into a runnable unit.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/config"
	"github.com/promptstudio/prompt-studio/internal/execute"
	"github.com/promptstudio/prompt-studio/internal/httpapi"
	"github.com/promptstudio/prompt-studio/internal/platform/logger"
	"github.com/promptstudio/prompt-studio/internal/provider"
	"github.com/promptstudio/prompt-studio/internal/provider/groq"
)

type App struct {
	Log    *logger.Logger
	Config *config.Config

	server *http.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	registry, err := buildRegistry(cfg, log)
	if err != nil {
		return nil, err
	}

	executor := execute.New(provider.NewDispatcher(registry), log)
	srv := httpapi.NewServer(cfg, log, executor)

	return &App{
		Log:    log,
		Config: cfg,
		server: srv,
	}, nil
}

// buildRegistry registers the live provider. Catalog providers without a
// registration (openai, ollama) fall through to the not-implemented
// sentinel inside the registry.
func buildRegistry(cfg *config.Config, log *logger.Logger) (*provider.Registry, error) {
	registry := provider.NewRegistry()

	if cfg.MockProvider {
		log.Warn("PROMPT_MOCK set, serving deterministic mock completions")
		registry.Register(catalog.ProviderGroq, provider.Mock{})
		return registry, nil
	}

	groqClient, err := groq.New(groq.Config{
		BaseURL: cfg.Groq.BaseURL,
		APIKey:  cfg.Groq.APIKey,
		Timeout: cfg.Groq.Timeout,
	})
	if err != nil {
		return nil, err
	}
	registry.Register(catalog.ProviderGroq, groqClient)
	return registry, nil
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("server starting",
		"port", a.Config.Port,
		"env", a.Config.Env,
		"client_origin", a.Config.ClientOrigin,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout)
		defer cancel()
		_ = a.server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
