// Package client talks to the prompt server over HTTP on behalf of the
// console. Transient failures are retried with backoff; errors surface as
// plain language the console can show directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/promptbuild"
)

const (
	defaultTimeout = 30 * time.Second

	templatesPath = "/api/prompt/templates"
	modelsPath    = "/api/models"
	executePath   = "/api/prompt/execute"
)

type Client struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
}

type Option func(*Client)

// WithHTTPClient swaps the underlying transport. Tests install fakes here.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		retry:   DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Templates(ctx context.Context) ([]catalog.Template, error) {
	var out []catalog.Template
	if err := c.getJSON(ctx, templatesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Models(ctx context.Context) ([]catalog.Model, error) {
	var out []catalog.Model
	if err := c.getJSON(ctx, modelsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type executeRequest struct {
	TemplateID string              `json:"templateId"`
	Inputs     *promptbuild.Inputs `json:"inputs"`
}

type executeResponse struct {
	Result string `json:"result"`
}

// Execute runs a template with the given inputs and returns the model
// output. Input key order is preserved on the wire.
func (c *Client) Execute(ctx context.Context, templateID string, inputs *promptbuild.Inputs) (string, error) {
	body, err := json.Marshal(executeRequest{TemplateID: templateID, Inputs: inputs})
	if err != nil {
		return "", fmt.Errorf("client: encode request: %w", err)
	}

	var out executeResponse
	if err := c.doJSON(ctx, http.MethodPost, executePath, body, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out any) error {
	op := func(ctx context.Context) error {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &StatusError{StatusCode: resp.StatusCode, Message: serverMessage(data)}
		}
		if out == nil {
			return nil
		}
		return json.Unmarshal(data, out)
	}

	if err := Retry(ctx, c.retry, op); err != nil {
		return Humanize(err)
	}
	return nil
}

// serverMessage pulls the message out of the server's error envelope,
// falling back to the raw body.
func serverMessage(data []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(data))
}
