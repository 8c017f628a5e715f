package checks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxDrain caps how much of a response body is read before closing.
const maxDrain = 4 << 10

// HTTP checks that a GET on a URL answers with a success status.
type HTTP struct {
	base
	url            string
	client         *http.Client
	expectedStatus int
}

// NewHTTP creates an HTTP check for rawURL.
func NewHTTP(name, rawURL string, opts ...Option) (*HTTP, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: http %q: bad url %q", ErrInvalidCheck, name, rawURL)
	}
	s, b, err := newSettings("http", name, map[string]string{"url": u.Redacted()}, opts)
	if err != nil {
		return nil, err
	}

	client := s.httpClient
	if client == nil {
		client = &http.Client{Timeout: s.timeout}
	}
	return &HTTP{
		base:           b,
		url:            rawURL,
		client:         client,
		expectedStatus: s.expectedStatus,
	}, nil
}

// Execute performs the GET.
func (h *HTTP) Execute(ctx context.Context) error {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return fmt.Errorf("http %s: %w", h.name, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("http %s: %w", h.name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	if h.expectedStatus != 0 {
		if resp.StatusCode != h.expectedStatus {
			return fmt.Errorf("%w: got %d, want %d", ErrUnexpectedStatus, resp.StatusCode, h.expectedStatus)
		}
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: got %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
