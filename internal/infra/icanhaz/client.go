// Package icanhaz fetches jokes from the icanhazdadjoke.com JSON API.
package icanhaz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hellojoke/internal/config"
	"hellojoke/internal/domain"
)

const (
	// DefaultURL is the public endpoint returning a random joke.
	DefaultURL = "https://icanhazdadjoke.com/"

	defaultTimeout = 5 * time.Second

	// maxPayloadBytes bounds how much of a response is decoded.
	maxPayloadBytes = 64 << 10
)

// payload mirrors the fields of the API response.
type payload struct {
	ID     string `json:"id"`
	Joke   string `json:"joke"`
	Status int    `json:"status"`
}

// Client is a domain.JokeProvider backed by one HTTP GET per call. It keeps
// no per-call state and is safe for concurrent use.
type Client struct {
	url       string
	userAgent string
	timeout   time.Duration
	http      *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New returns a Client for cfg. Zero values fall back to the public API and
// a five second timeout.
func New(cfg config.JokeConfig, opts ...Option) *Client {
	c := &Client{
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
	}
	if c.url == "" {
		c.url = DefaultURL
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.userAgent == "" {
		c.userAgent = "hellojoke"
	}
	// the per-call context carries the deadline
	c.http = &http.Client{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchJoke performs a single request. It does not retry. Every failure is
// a *domain.ProviderError.
func (c *Client) FetchJoke(ctx context.Context) (*domain.Joke, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, domain.NewProviderError("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewProviderError("request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayloadBytes))
		return nil, domain.NewProviderError("request", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var p payload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadBytes)).Decode(&p); err != nil {
		return nil, domain.NewProviderError("decode", err)
	}
	if strings.TrimSpace(p.Joke) == "" {
		return nil, domain.NewProviderError("decode", errors.New("payload has no joke field"))
	}

	return &domain.Joke{ID: p.ID, Text: p.Joke, Status: p.Status}, nil
}
