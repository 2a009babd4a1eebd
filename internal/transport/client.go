package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tokenscope/models"
)

// DefaultSnippetLimit is the character budget applied to request and
// response snippets when no explicit limit is configured.
const DefaultSnippetLimit = 400

// BinaryBodySentinel replaces snippets of bodies that are not valid text.
const BinaryBodySentinel = "[binary body]"

// Listener receives a copy of every event the client emits. The same call
// id appears twice: once with status pending, once settled.
type Listener func(models.NetworkEvent)

// Client is an HTTP client that emits a structured event for every
// outbound call. It is constructed once at startup and injected into
// every upstream client; there is no ambient global instrumentation.
type Client struct {
	http         *http.Client
	snippetLimit int
	log          zerolog.Logger

	mu        sync.Mutex
	listeners map[string]Listener
}

// New creates an instrumented client.
func New(timeout time.Duration, snippetLimit int, log zerolog.Logger) *Client {
	if snippetLimit <= 0 {
		snippetLimit = DefaultSnippetLimit
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		snippetLimit: snippetLimit,
		log:          log.With().Str("component", "transport").Logger(),
		listeners:    make(map[string]Listener),
	}
}

// AddListener registers a listener under the given id, replacing any
// previous listener with the same id. Safe to call at any time.
func (c *Client) AddListener(id string, fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners[id] = fn
}

// RemoveListener drops the listener registered under id, if any.
func (c *Client) RemoveListener(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners, id)
}

// emit delivers the event to every listener. The mutex is held across
// delivery so listeners observe events in call-start order.
func (c *Client) emit(ev models.NetworkEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, fn := range c.listeners {
		fn(ev)
	}
}

// Do performs one HTTP call and emits start/finish events around it.
// The response body is returned in full; on a non-2xx status the body is
// still returned together with an "HTTP <code>" error.
func (c *Client) Do(ctx context.Context, method, url string, body []byte) ([]byte, int, error) {
	ev := models.NetworkEvent{
		ID:             uuid.NewString(),
		Method:         method,
		URL:            url,
		Status:         models.CallPending,
		StartedAt:      time.Now(),
		RequestSnippet: snippet(body, c.snippetLimit),
	}
	c.emit(ev)
	requestsTotal.WithLabelValues(method).Inc()

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.finish(&ev, 0, nil, err)
		return nil, 0, err
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	requestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.finish(&ev, 0, nil, err)
		return nil, 0, err
	}
	defer resp.Body.Close()

	// Best effort: a failed body read must not block the response path.
	data, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		data = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = fmt.Errorf("HTTP %d", resp.StatusCode)
		c.finish(&ev, resp.StatusCode, data, err)
		return data, resp.StatusCode, err
	}
	c.finish(&ev, resp.StatusCode, data, nil)
	return data, resp.StatusCode, nil
}

// finish settles the event and emits the final copy.
func (c *Client) finish(ev *models.NetworkEvent, code int, body []byte, err error) {
	now := time.Now()
	ev.EndedAt = &now
	ev.DurationMs = now.Sub(ev.StartedAt).Milliseconds()
	ev.StatusCode = code
	ev.ResponseSnippet = snippet(body, c.snippetLimit)
	if err != nil {
		ev.Status = models.CallError
		ev.Error = err.Error()
		requestErrors.WithLabelValues(ev.Method).Inc()
		c.log.Debug().Str("url", ev.URL).Int("status", code).Err(err).Msg("call failed")
	} else {
		ev.Status = models.CallSuccess
	}
	c.emit(*ev)
}

// GetJSON performs a GET and decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	data, _, err := c.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// snippet truncates a body to the configured character budget. Bodies
// that are not valid UTF-8 are replaced with a sentinel.
func snippet(body []byte, limit int) string {
	if len(body) == 0 {
		return ""
	}
	if !utf8.Valid(body) {
		return BinaryBodySentinel
	}
	runes := []rune(string(body))
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return string(runes)
}
