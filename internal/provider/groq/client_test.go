package groq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/promptstudio/prompt-studio/internal/platform/apierr"
)

type fakeTransport struct {
	status   int
	body     string
	err      error
	lastReq  *http.Request
	lastBody []byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if req.Body != nil {
		f.lastBody, _ = io.ReadAll(req.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestClient(t *testing.T, tr *fakeTransport) *Client {
	t.Helper()
	c, err := NewWithHTTPClient(Config{
		BaseURL: "https://groq.test/openai",
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, &http.Client{Transport: tr})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func TestNew_RequiresBaseURLAndKey(t *testing.T) {
	if _, err := New(Config{APIKey: "k"}); err == nil {
		t.Fatalf("expected error without base URL")
	}
	if _, err := New(Config{BaseURL: "https://x"}); err == nil {
		t.Fatalf("expected error without API key")
	}
}

func TestInvoke_SendsPromptAsSingleUserMessage(t *testing.T) {
	tr := &fakeTransport{status: http.StatusOK, body: completionBody("answer")}
	c := newTestClient(t, tr)

	got, err := c.Invoke(context.Background(), "the prompt", "llama-3.1-8b-instant")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got != "answer" {
		t.Fatalf("unexpected content: %q", got)
	}

	if tr.lastReq.URL.Path != "/openai/v1/chat/completions" {
		t.Fatalf("unexpected path: %s", tr.lastReq.URL.Path)
	}
	if auth := tr.lastReq.Header.Get("Authorization"); auth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", auth)
	}

	var sent chatCompletionRequest
	if err := json.Unmarshal(tr.lastBody, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent.Model != "llama-3.1-8b-instant" {
		t.Fatalf("unexpected model: %q", sent.Model)
	}
	if len(sent.Messages) != 1 || sent.Messages[0].Role != "user" || sent.Messages[0].Content != "the prompt" {
		t.Fatalf("unexpected messages: %+v", sent.Messages)
	}
	if sent.Temperature != 0.7 || sent.MaxTokens != 4096 {
		t.Fatalf("unexpected generation params: %+v", sent)
	}
}

func TestInvoke_BlankCompletion(t *testing.T) {
	tr := &fakeTransport{status: http.StatusOK, body: completionBody("   ")}
	c := newTestClient(t, tr)
	_, err := c.Invoke(context.Background(), "p", "m")
	ae, ok := apierr.AsError(err)
	if !ok || ae.Code != apierr.UpstreamUnavailable {
		t.Fatalf("expected UpstreamUnavailable, got %v", err)
	}
	if ae.Error() != "No response generated from AI model" {
		t.Fatalf("unexpected message: %q", ae.Error())
	}
}

func TestInvoke_StatusNormalization(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		code    apierr.Code
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, apierr.UpstreamAuthFailure, "API authentication failed"},
		{"throttled", http.StatusTooManyRequests, apierr.RateLimited, "API rate limit reached. Please try again later."},
		{"bad request", http.StatusBadRequest, apierr.UpstreamBadRequest, "Invalid request to AI service"},
		{"server error", http.StatusBadGateway, apierr.UpstreamUnavailable, "AI service temporarily unavailable"},
		{"teapot", http.StatusTeapot, apierr.UpstreamUnavailable, "AI service error occurred"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := &fakeTransport{status: tc.status, body: `{"error":{"message":"upstream detail"}}`}
			c := newTestClient(t, tr)
			_, err := c.Invoke(context.Background(), "p", "m")
			ae, ok := apierr.AsError(err)
			if !ok || ae.Code != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
			if ae.Error() != tc.message {
				t.Fatalf("unexpected message: %q", ae.Error())
			}

			var herr *HTTPError
			if !errors.As(err, &herr) || herr.StatusCode != tc.status {
				t.Fatalf("wrapped HTTPError missing or wrong status: %v", err)
			}
		})
	}
}

func TestInvoke_NetworkFailure(t *testing.T) {
	tr := &fakeTransport{err: errors.New("dial tcp: connection refused")}
	c := newTestClient(t, tr)
	_, err := c.Invoke(context.Background(), "p", "m")
	ae, ok := apierr.AsError(err)
	if !ok || ae.Code != apierr.UpstreamUnavailable {
		t.Fatalf("expected UpstreamUnavailable, got %v", err)
	}
	if ae.Error() != "Unable to connect to AI service" {
		t.Fatalf("unexpected message: %q", ae.Error())
	}
}
