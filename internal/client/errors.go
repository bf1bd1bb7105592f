package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// StatusError is a non-2xx response with the server's error message
// already extracted from the envelope.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Humanize converts transport failures into messages fit for the screen.
// Server-provided messages pass through untouched; only errors without one
// get rewritten.
func Humanize(err error) error {
	if err == nil {
		return nil
	}

	var se *StatusError
	if errors.As(err, &se) {
		if se.Message != "" {
			return errors.New(se.Message)
		}
		return fmt.Errorf("Server error: status %d", se.StatusCode)
	}

	if isTimeout(err) {
		return errors.New("Request timed out. Please try again.")
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		return errors.New("Network connection failed. Please check your internet connection.")
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return errors.New("Network connection failed. Please check your internet connection.")
	}

	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	// http.Client wraps its deadline in a url.Error whose message carries
	// the awkward "Client.Timeout exceeded" phrasing.
	return strings.Contains(err.Error(), "Client.Timeout exceeded")
}
