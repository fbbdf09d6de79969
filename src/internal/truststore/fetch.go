// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/rp-trust-store/src/internal/helper/gc"
)

var (
	// ErrUnexpectedStatus indicates the bundle endpoint answered with a non-200 status.
	ErrUnexpectedStatus = errors.New("truststore: unexpected HTTP status")

	// ErrEmptyBody indicates the bundle endpoint answered 200 with an empty body.
	ErrEmptyBody = errors.New("truststore: empty response body")
)

// HTTPConfig holds HTTP client configuration for bundle fetches
type HTTPConfig struct {
	ConnectTimeout time.Duration // TCP/TLS connect timeout
	ReadTimeout    time.Duration // Overall request timeout including body read
	Version        string        // Application version for User-Agent
	UserAgent      string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with default values.
//
// It initializes the configuration with a connect timeout of 10 seconds,
// a read timeout of 15 seconds, and the provided application version.
//
// Parameters:
//   - version: Application version string
//
// Returns:
//   - *HTTPConfig: New HTTP configuration
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    15 * time.Second,
		Version:        version,
		UserAgent:      "",
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
//
// If a custom User-Agent is configured, it returns that. Otherwise, it
// constructs a default one including the application version and GitHub URL.
//
// Returns:
//   - string: User-Agent string
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("RP-Trust-Store/%s (+https://github.com/H0llyW00dzZ/rp-trust-store)", c.Version)
}

// Client returns an HTTP client configured with the current timeouts.
//
// It creates or reuses an http.Client whose dialer enforces the connect
// timeout and whose overall timeout enforces the read timeout.
//
// Returns:
//   - *http.Client: Configured HTTP client
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		dialer := &net.Dialer{Timeout: c.ConnectTimeout}
		c.client = &http.Client{
			Timeout: c.ReadTimeout,
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				TLSHandshakeTimeout: c.ConnectTimeout,
			},
		}
		return c.client
	}

	if c.client.Timeout != c.ReadTimeout {
		c.client.Timeout = c.ReadTimeout
	}

	return c.client
}

// Fetch downloads the certificate bundle at url.
//
// Success is a 200 response with a non-empty body; anything else is an error.
// Non-200 statuses, transport failures, and empty bodies are deliberately not
// distinguished beyond the error value, since the caller treats them all as
// "no data obtained". The response body is closed on every exit path, and it
// uses buffer pooling for efficient download handling.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - url: Bundle URL to GET
//
// Returns:
//   - []byte: Raw response body on success
//   - error: Error if the request failed, answered non-200, or had no body
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Set the User-Agent header with version information and GitHub link
	req.Header.Set("User-Agent", c.GetUserAgent())

	resp, err := c.Client().Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	// Get a buffer from the pool
	buf := gc.Default.Get()
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		resp.Body.Close()
		buf.Reset()
		gc.Default.Put(buf)
		return nil, err
	}
	resp.Body.Close()

	body := append([]byte(nil), buf.Bytes()...)
	buf.Reset()
	gc.Default.Put(buf)

	if len(body) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBody, url)
	}

	return body, nil
}
