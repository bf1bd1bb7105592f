// Package groq is the live provider integration: a single-turn completion
// call against Groq's OpenAI-compatible chat completions endpoint.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/promptstudio/prompt-studio/internal/platform/apierr"
)

const (
	chatCompletionsPath = "/v1/chat/completions"

	// Moderate temperature: deterministic-but-natural output.
	temperature = 0.7

	// Hard cap on generated length; bounds latency and cost per call.
	maxTokens = 4096
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration

	httpClient *http.Client
}

func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("groq: base URL required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("groq: API key required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    timeout,
		httpClient: &http.Client{Transport: tr},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by
// using a custom RoundTripper.
func NewWithHTTPClient(cfg Config, httpClient *http.Client) (*Client, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content,omitempty"`
		} `json:"message,omitempty"`
	} `json:"choices"`
}

// Invoke sends the prompt as the entire user-role content and returns the
// completion text. Provider failure signals are normalized into the shared
// taxonomy; Groq's own error shapes never escape this package.
func (c *Client) Invoke(ctx context.Context, prompt string, model string) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var resp chatCompletionResponse
	if err := c.doJSON(ctx, http.MethodPost, chatCompletionsPath, reqBody, &resp); err != nil {
		return "", normalizeError(err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	if strings.TrimSpace(content) == "" {
		return "", apierr.New(apierr.UpstreamUnavailable, "No response generated from AI model")
	}
	return content, nil
}

func (c *Client) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx2, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func normalizeError(err error) error {
	var herr *HTTPError
	if errors.As(err, &herr) {
		switch {
		case herr.StatusCode == http.StatusUnauthorized:
			return apierr.Wrap(apierr.UpstreamAuthFailure, "API authentication failed", err)
		case herr.StatusCode == http.StatusTooManyRequests:
			return apierr.Wrap(apierr.RateLimited, "API rate limit reached. Please try again later.", err)
		case herr.StatusCode == http.StatusBadRequest:
			return apierr.Wrap(apierr.UpstreamBadRequest, "Invalid request to AI service", err)
		case herr.StatusCode >= 500:
			return apierr.Wrap(apierr.UpstreamUnavailable, "AI service temporarily unavailable", err)
		default:
			return apierr.Wrap(apierr.UpstreamUnavailable, "AI service error occurred", err)
		}
	}

	// Dial failures, DNS errors, and elapsed timeouts all land here.
	return apierr.Wrap(apierr.UpstreamUnavailable, "Unable to connect to AI service", err)
}
