// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore_test

import (
	"context"
	"crypto/x509"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/rp-trust-store/src/internal/truststore"
	x509certs "github.com/H0llyW00dzZ/rp-trust-store/src/internal/x509/certs"
)

func TestUpdate_SuccessPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testCertPEM))
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)

	certs := updater.Update(context.Background())

	require.Len(t, certs, 1, "expected one certificate from fresh fetch")
	assert.True(t, certs[0].Equal(mustParsePEMCert(t, testCertPEM)), "returned certificate mismatch")

	// Success writes through to the cache slot.
	cached, err := updater.Cache().Read()
	require.NoError(t, err, "cache slot should exist after successful fetch")
	assert.Equal(t, testCertPEM, string(cached), "cache slot should hold the fetched body")
}

func TestUpdate_DeduplicatesFetchedBundle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testCertPEM + secondCertPEM + testCertPEM))
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)

	certs := updater.Update(context.Background())

	require.Len(t, certs, 2, "expected duplicates to be dropped")
	assert.True(t, certs[0].Equal(mustParsePEMCert(t, testCertPEM)), "first occurrence should win")
	assert.True(t, certs[1].Equal(mustParsePEMCert(t, secondCertPEM)), "order should be preserved")
}

func TestUpdate_FallbackOnFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)
	require.NoError(t, updater.Cache().Write([]byte(testCertPEM+secondCertPEM)), "seeding cache")

	certs := updater.Update(context.Background())

	require.Len(t, certs, 2, "expected the cached two-certificate bundle")
	assert.True(t, certs[0].Equal(mustParsePEMCert(t, testCertPEM)))
	assert.True(t, certs[1].Equal(mustParsePEMCert(t, secondCertPEM)))
}

func TestUpdate_FullFailure(t *testing.T) {
	// Nothing listens on this port.
	updater := newTestUpdater(t, "http://127.0.0.1:1/bundle.pem")

	certs := updater.Update(context.Background())

	require.NotNil(t, certs, "result must never be nil")
	assert.Empty(t, certs, "expected empty trust store when fetch fails and no cache exists")
}

func TestUpdate_CorruptionOverwritesCache(t *testing.T) {
	// The remote is reachable but serves garbage. Under the default
	// write-through policy the garbage replaces the previously good cache
	// before parsing, so the fallback read sees the corrupt body too.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a certificate bundle"))
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)
	require.NoError(t, updater.Cache().Write([]byte(testCertPEM)), "seeding cache")

	certs := updater.Update(context.Background())

	assert.Empty(t, certs, "fallback must parse the already-overwritten cache")

	cached, err := updater.Cache().Read()
	require.NoError(t, err)
	assert.Equal(t, "not a certificate bundle", string(cached), "cache slot should hold the corrupt body")
}

func TestUpdate_AfterParsePolicyKeepsGoodCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a certificate bundle"))
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)
	updater.Policy = truststore.CacheAfterParse
	require.NoError(t, updater.Cache().Write([]byte(testCertPEM)), "seeding cache")

	certs := updater.Update(context.Background())

	require.Len(t, certs, 1, "expected fallback to the intact cached bundle")
	assert.True(t, certs[0].Equal(mustParsePEMCert(t, testCertPEM)))

	cached, err := updater.Cache().Read()
	require.NoError(t, err)
	assert.Equal(t, testCertPEM, string(cached), "good cache must survive a corrupt fetch")
}

func TestUpdate_BlankBodyDoesNotOverwriteCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   \n\t"))
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)
	require.NoError(t, updater.Cache().Write([]byte(testCertPEM)), "seeding cache")

	certs := updater.Update(context.Background())

	require.Len(t, certs, 1, "blank body should fall back to cache")

	cached, err := updater.Cache().Read()
	require.NoError(t, err)
	assert.Equal(t, testCertPEM, string(cached), "blank fetch must not touch the cache slot")
}

func TestUpdate_CorruptCacheYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)
	require.NoError(t, updater.Cache().Write([]byte("stale garbage")), "seeding cache")

	certs := updater.Update(context.Background())

	require.NotNil(t, certs, "result must never be nil")
	assert.Empty(t, certs, "corrupt cache resolves to empty trust store")
}

func TestUpdate_CancelledContextFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(secondCertPEM))
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)
	require.NoError(t, updater.Cache().Write([]byte(testCertPEM)), "seeding cache")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	certs := updater.Update(ctx)

	require.Len(t, certs, 1, "cancelled fetch should resolve through the cache")
	assert.True(t, certs[0].Equal(mustParsePEMCert(t, testCertPEM)))
}

func TestUpdate_Concurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testCertPEM))
	}))
	defer srv.Close()

	updater := newTestUpdater(t, srv.URL)

	const goroutines = 10

	var wg sync.WaitGroup
	wg.Add(goroutines)

	results := make([][]int, goroutines)
	for i := range goroutines {
		go func(id int) {
			defer wg.Done()
			certs := updater.Update(context.Background())
			results[id] = []int{len(certs)}
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		assert.Equal(t, []int{1}, r, "goroutine %d saw an inconsistent trust store", i)
	}
}

func TestRenderTable(t *testing.T) {
	certA := mustParsePEMCert(t, testCertPEM)

	out := truststore.RenderTable(nil)
	assert.Equal(t, "Trust store is empty", out, "empty store rendering")

	out = truststore.RenderTable([]*x509.Certificate{certA})
	assert.Contains(t, out, "www.google.com", "table should list certificate subjects")
	assert.Contains(t, out, x509certs.FingerprintOf(certA).String(), "table should list fingerprints")
}

func TestToJSON(t *testing.T) {
	certA := mustParsePEMCert(t, testCertPEM)

	data, err := truststore.ToJSON([]*x509.Certificate{certA})
	require.NoError(t, err, "ToJSON() error")

	assert.Contains(t, string(data), `"count": 1`)
	assert.Contains(t, string(data), x509certs.FingerprintOf(certA).String())
}
