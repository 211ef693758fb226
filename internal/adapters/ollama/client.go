// Package ollama is a thin client for a local Ollama server.
// It speaks the /api/chat structured-output protocol: one user message,
// a JSON schema in the format field, streaming off, temperature zero
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "reportsmith/internal/platform/errors"
	"reportsmith/internal/platform/logger"
)

// DefaultTimeout bounds one chat round-trip. Extraction over a long
// report on CPU can run for many minutes
const DefaultTimeout = 25 * time.Minute

// Client posts chat completion requests to one Ollama base URL.
// Safe for concurrent use
type Client struct {
	baseURL string
	hc      *http.Client
	log     *logger.Logger
}

// Option mutates client construction
type Option func(*Client)

// WithHTTPClient swaps the underlying http client, mainly for tests
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

// New builds a Client for baseURL, e.g. http://localhost:11434
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: DefaultTimeout},
		log:     logger.Named("ollama"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the configured base url
func (c *Client) BaseURL() string { return c.baseURL }

// For returns a client targeting baseURL that shares this client's
// underlying http transport
func (c *Client) For(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      c.hc,
		log:     c.log,
	}
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Format   map[string]any `json:"format,omitempty"`
	Stream   bool           `json:"stream"`
	Options  chatOptions    `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// Chat sends prompt as a single user message with format as the
// structured-output schema and returns the raw message content.
// Errors are classified: unreachable backend is Unavailable, anything
// else is Extraction
func (c *Client) Chat(ctx context.Context, model, prompt string, format map[string]any) (string, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Format:   format,
		Stream:   false,
		Options:  chatOptions{Temperature: 0},
	})
	if err != nil {
		return "", perr.Extractionf("encode chat request: %v", err)
	}

	endpoint := c.baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", perr.Extractionf("build chat request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().
		Str("req_id", reqID).
		Str("model", model).
		Int("prompt_bytes", len(prompt)).
		Msg("chat request")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Error().Str("req_id", reqID).Err(err).Msg("chat send failed")
		if ctx.Err() != nil {
			return "", perr.Extractionf("chat request cancelled: %v", err)
		}
		return "", perr.Unavailablef("ollama at %s is unreachable: %v", c.baseURL, err)
	}
	defer resp.Body.Close() // nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return "", perr.Extractionf("read chat response: %v", err)
	}

	c.log.Debug().
		Str("req_id", reqID).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("chat response")

	if resp.StatusCode/100 != 2 {
		return "", perr.Extractionf("ollama returned status %d: %s", resp.StatusCode, snippet(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", perr.Extractionf("decode chat response: %v", err)
	}
	if parsed.Error != "" {
		return "", perr.Extractionf("ollama error: %s", parsed.Error)
	}
	if parsed.Message.Content == "" {
		return "", perr.Extractionf("ollama returned an empty message")
	}
	return parsed.Message.Content, nil
}

// Ping checks backend liveness via GET /api/tags
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return perr.Unavailablef("build ping request: %v", err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return perr.Unavailablef("ollama at %s is unreachable: %v", c.baseURL, err)
	}
	defer resp.Body.Close()        // nolint:errcheck
	io.Copy(io.Discard, resp.Body) // nolint:errcheck

	if resp.StatusCode/100 != 2 {
		return perr.Unavailablef("ollama ping returned status %d", resp.StatusCode)
	}
	return nil
}

// snippet trims a response body for error messages
func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
