// Package api is the REST client for the task service. All calls are
// credentialed through the client's cookie jar; the server sets access
// and refresh tokens as cookies on login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the task service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New creates a client with its own cookie jar. The jar is the only
// credential store; nothing is persisted.
func New(baseURL string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
		log:     log,
	}, nil
}

// do issues one JSON request. A nil body sends no payload; a non-nil
// out decodes the response body on 2xx. Non-2xx responses map onto the
// error taxonomy: 401 => ErrUnauthenticated, other 4xx with a field
// body => *ValidationError, everything else => *StatusError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	c.log.Debug("request rejected", "method", method, "path", path,
		"request_id", reqID, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthenticated)
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		if fields := parseFieldErrors(raw); fields != nil {
			return &ValidationError{StatusCode: resp.StatusCode, Fields: fields}
		}
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
}

// parseFieldErrors decodes a {"field": ["msg", ...]} body. Values that
// arrive as a bare string are normalized to a one-element list.
func parseFieldErrors(raw []byte) map[string][]string {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil || len(generic) == 0 {
		return nil
	}
	fields := make(map[string][]string, len(generic))
	for k, v := range generic {
		switch val := v.(type) {
		case string:
			fields[k] = []string{val}
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok {
					fields[k] = append(fields[k], s)
				}
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
