// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"context"
	"crypto/x509"
	"strings"
	"sync"
	"time"

	x509certs "github.com/H0llyW00dzZ/rp-trust-store/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/rp-trust-store/src/logger"
)

// CachePolicy controls when a freshly fetched bundle is committed to the
// cache slot relative to parsing it.
type CachePolicy int

const (
	// CacheWriteThrough commits the fetched body to the cache before parsing
	// is attempted on it. This matches the historical behavior of the wallet
	// clients this store was built for: a reachable remote that serves a
	// corrupt bundle overwrites a previously good cache.
	CacheWriteThrough CachePolicy = iota

	// CacheAfterParse commits the fetched body only once it has parsed into
	// certificates, so a corrupt remote response cannot poison the cache.
	CacheAfterParse
)

// Updater maintains the local trust store of relying-party certificates.
//
// Each call to [Updater.Update] runs one fetch-cache-parse-dedup cycle:
// fetch the configured PEM bundle, write it through to the cache slot, and
// hand back the deduplicated certificate list. When the fetch or the parse
// of fresh data fails, the previously cached bundle is used instead; when
// that also fails, the result is an empty list. No error ever escapes Update.
//
// Updater serializes concurrent Update calls internally, so at most one
// update cycle per instance is in flight at a time.
type Updater struct {
	// Policy selects when fetched data is committed to the cache.
	// The default, [CacheWriteThrough], caches before parsing.
	Policy CachePolicy

	url     string
	cache   *CacheStore
	http    *HTTPConfig
	decoder *x509certs.Certificate
	log     logger.Logger

	mu sync.Mutex
}

// New creates an Updater that fetches the PEM bundle at url and persists its
// cache slot under cacheDir.
//
// Parameters:
//   - url: Remote PEM bundle URL
//   - cacheDir: App-private directory holding the cache slot
//   - version: Application version for the User-Agent header
//   - log: Destination for diagnostic log lines
//
// Returns:
//   - *Updater: New updater instance
//   - error: Error if the cache directory cannot be created
func New(url, cacheDir, version string, log logger.Logger) (*Updater, error) {
	cache, err := NewCacheStore(cacheDir)
	if err != nil {
		return nil, err
	}

	return &Updater{
		url:     url,
		cache:   cache,
		http:    NewHTTPConfig(version),
		decoder: x509certs.New(),
		log:     log,
	}, nil
}

// HTTPConfig exposes the HTTP configuration so callers can adjust timeouts
// or the User-Agent before the first update.
func (u *Updater) HTTPConfig() *HTTPConfig { return u.http }

// Cache exposes the underlying cache store for inspection.
func (u *Updater) Cache() *CacheStore { return u.cache }

// Update runs one update cycle and returns the deduplicated certificate list.
//
// The returned slice is never nil and never contains two certificates with
// the same fingerprint. All failures are absorbed internally: the caller can
// only observe them through the length of the result and the log channel.
// Cancelling ctx aborts an in-flight fetch and resolves through the cache
// fallback like any other transport failure.
//
// Update performs blocking network and file I/O; callers on a latency
// sensitive path should invoke it from a goroutine. Retry scheduling is the
// caller's responsibility, no retries happen within a single call.
//
// Thread Safety: Safe for concurrent use; concurrent calls are serialized.
func (u *Updater) Update(ctx context.Context) []*x509.Certificate {
	u.mu.Lock()
	defer u.mu.Unlock()

	if certs, ok := u.updateFromRemote(ctx); ok {
		return certs
	}

	return u.updateFromCache()
}

// updateFromRemote attempts the fresh-fetch path. It reports ok=false for
// any outcome that should resolve through the cache fallback.
func (u *Updater) updateFromRemote(ctx context.Context) ([]*x509.Certificate, bool) {
	body, err := u.http.Fetch(ctx, u.url)
	if err != nil {
		u.log.Printf("truststore: fetching bundle from %s failed: %v", u.url, err)
		return nil, false
	}

	if strings.TrimSpace(string(body)) == "" {
		u.log.Printf("truststore: bundle from %s is blank", u.url)
		return nil, false
	}

	if u.Policy == CacheWriteThrough {
		if err := u.cache.Write(body); err != nil {
			u.log.Printf("truststore: caching fetched bundle failed: %v", err)
			return nil, false
		}
	}

	certs, err := u.decoder.ParseBundle(body)
	if err != nil {
		u.log.Printf("truststore: parsing fetched bundle failed: %v", err)
		return nil, false
	}

	if u.Policy == CacheAfterParse {
		if err := u.cache.Write(body); err != nil {
			// The fresh data is already validated, keep serving it.
			u.log.Printf("truststore: caching fetched bundle failed: %v", err)
		}
	}

	return x509certs.Dedupe(certs), true
}

// updateFromCache resolves the fallback path: the cached bundle when it is
// present and readable, otherwise an empty list.
func (u *Updater) updateFromCache() []*x509.Certificate {
	empty := []*x509.Certificate{}

	if !u.cache.Exists() {
		u.log.Println("truststore: no cached bundle available, trust store is empty")
		return empty
	}

	// Staleness is diagnostic only. The cached bundle is used regardless
	// of its age.
	if mtime, err := u.cache.LastModified(); err == nil {
		u.log.Printf("truststore: falling back to cached bundle (%.1f hours old)", time.Since(mtime).Hours())
	}

	body, err := u.cache.Read()
	if err != nil {
		u.log.Printf("truststore: reading cached bundle failed: %v", err)
		return empty
	}

	certs, err := u.decoder.ParseBundle(body)
	if err != nil {
		u.log.Printf("truststore: parsing cached bundle failed: %v", err)
		return empty
	}

	return x509certs.Dedupe(certs)
}
