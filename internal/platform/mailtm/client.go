package mailtm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PiotrWarzachowski/go-tempmail-cli/internal/logging"
)

// NewClient creates a client for the mail.tm compatible API at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "go-tempmail-cli",
	}
}

type request struct {
	op     string
	kind   error
	method string
	path   string
	token  string
	body   any
}

// do performs one round trip and returns the raw 2xx body. Every failure is
// reported as an *APIError of the request's kind.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var payload io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, &APIError{Op: r.op, Kind: r.kind, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, payload)
	if err != nil {
		return nil, &APIError{Op: r.op, Kind: r.kind, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/ld+json, application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	logging.Debugf("%s %s", r.method, req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Op: r.op, Kind: r.kind, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: r.op, Kind: r.kind, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	logging.Debugf("%s %s -> %d (%d bytes)", r.method, r.path, resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), maxErrorBody),
			Kind:       r.kind,
		}
	}

	return body, nil
}

// decodeInto unmarshals a 2xx body, reporting decode failures as the request's kind.
func decodeInto(r request, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Op: r.op, Kind: r.kind, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

type hydraCollection[T any] struct {
	Members    []T `json:"hydra:member"`
	TotalItems int `json:"hydra:totalItems"`
}

// decodeCollection accepts both the JSON-LD Hydra envelope and a bare array.
func decodeCollection[T any](r request, body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := decodeInto(r, trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var coll hydraCollection[T]
	if err := decodeInto(r, trimmed, &coll); err != nil {
		return nil, err
	}
	return coll.Members, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
