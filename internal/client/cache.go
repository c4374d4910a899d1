// Package client implements the device-side document cache: a local copy of
// the document that applies actions optimistically and ships them to the
// server in the background, in order.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/barrero/supertareas/internal/action"
	"github.com/barrero/supertareas/internal/model"
)

const pendingBuffer = 64

// Cache holds the local document. Mutations apply to the local copy first,
// so the UI updates instantly; a single sender goroutine then posts each
// action to the server in submission order.
type Cache struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger

	mu  sync.RWMutex
	doc *model.Document

	pending  chan action.Action
	inflight sync.WaitGroup
	closed   chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func New(baseURL string, logger *slog.Logger) *Cache {
	c := &Cache{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
		doc:     model.NewDocument(),
		pending: make(chan action.Action, pendingBuffer),
		closed:  make(chan struct{}),
	}
	c.wg.Add(1)
	go c.sender()
	return c
}

// Init hydrates the cache from the server.
func (c *Cache) Init(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh replaces the local document with the server's. Called on startup
// and whenever a change notice arrives.
func (c *Cache) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/data", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch document: status %d", resp.StatusCode)
	}

	var doc model.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	doc.Normalize()

	c.mu.Lock()
	c.doc = &doc
	c.mu.Unlock()
	return nil
}

// Read runs fn with read access to the local document. fn must not retain
// or mutate it.
func (c *Cache) Read(fn func(*model.Document)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.doc)
}

// Do applies the action to the local document immediately and queues it for
// delivery. A locally rejected action is returned to the caller and never
// sent; delivery failures after local success are retried in the
// background and ultimately dropped, with the next refresh reconciling the
// cache against the server.
func (c *Cache) Do(ctx context.Context, a action.Action) error {
	select {
	case <-c.closed:
		return fmt.Errorf("client: cache closed")
	default:
	}

	c.mu.Lock()
	err := action.Apply(c.doc, a, time.Now())
	c.mu.Unlock()
	if err != nil {
		return err
	}

	c.inflight.Add(1)
	select {
	case c.pending <- a:
		return nil
	case <-c.closed:
		c.inflight.Done()
		return fmt.Errorf("client: cache closed")
	case <-ctx.Done():
		c.inflight.Done()
		return ctx.Err()
	}
}

// Flush blocks until every queued action has been delivered or dropped.
// Callers use it on the way out of a session to avoid losing work.
func (c *Cache) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting actions and waits for the pending queue to drain.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.closed) })
	c.wg.Wait()
}

func (c *Cache) sender() {
	defer c.wg.Done()
	deliver := func(a action.Action) {
		if err := c.send(a); err != nil {
			c.logger.Error("drop undeliverable action", "type", a.Kind(), "error", err)
		}
		c.inflight.Done()
	}

	for {
		select {
		case a := <-c.pending:
			deliver(a)
		case <-c.closed:
			// Flush whatever was queued before shutdown.
			for {
				select {
				case a := <-c.pending:
					deliver(a)
				default:
					return
				}
			}
		}
	}
}

func (c *Cache) send(a action.Action) error {
	body, err := action.Encode(a)
	if err != nil {
		return fmt.Errorf("encode action: %w", err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	return retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		resp, err := c.httpc.Post(c.baseURL+"/api/action", "application/json", bytes.NewReader(body))
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode == http.StatusOK:
			return nil
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("server status %d", resp.StatusCode))
		default:
			// 4xx: the server rejected the action; retrying cannot help.
			return fmt.Errorf("server status %d", resp.StatusCode)
		}
	})
}
