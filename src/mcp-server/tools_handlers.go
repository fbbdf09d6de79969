// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/H0llyW00dzZ/rp-trust-store/src/internal/truststore"
	x509certs "github.com/H0llyW00dzZ/rp-trust-store/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/rp-trust-store/src/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// makeUpdateHandler returns the handler for the update_trust_store tool.
//
// It runs one update cycle against the requested bundle URL. The updater
// absorbs fetch and parse failures internally, so the tool result is always
// the current (possibly empty) trust store rather than an error, unless the
// request itself is malformed.
func makeUpdateHandler(config *Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := request.GetString("url", config.Defaults.BundleURL)
		if url == "" {
			return mcp.NewToolResultError("url parameter required: no bundle URL configured"), nil
		}

		cacheDir := request.GetString("cache_dir", config.Defaults.CacheDir)
		format := request.GetString("format", config.Defaults.Format)
		policyName := request.GetString("policy", config.Defaults.Policy)

		policy, err := parseCachePolicy(policyName)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// MCP communication happens over stdio, keep diagnostics silent.
		updater, err := truststore.New(url, cacheDir, appVersion, logger.NewMCPLogger(nil, true))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to prepare cache store: %v", err)), nil
		}
		updater.Policy = policy

		certs := updater.Update(ctx)
		return formatTrustStore(certs, format)
	}
}

// makeInspectHandler returns the handler for the inspect_trust_store tool.
// It parses the cached bundle only; the network is never touched.
func makeInspectHandler(config *Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cacheDir := request.GetString("cache_dir", config.Defaults.CacheDir)
		format := request.GetString("format", config.Defaults.Format)

		store, err := truststore.NewCacheStore(cacheDir)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to open cache store: %v", err)), nil
		}

		if !store.Exists() {
			return mcp.NewToolResultText("No cached bundle exists yet."), nil
		}

		data, err := store.Read()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read cached bundle: %v", err)), nil
		}

		certs, err := x509certs.New().ParseBundle(data)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cached bundle is not parsable: %v", err)), nil
		}

		return formatTrustStore(x509certs.Dedupe(certs), format)
	}
}

// makeStatusHandler returns the handler for the trust_store_status tool.
func makeStatusHandler(config *Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cacheDir := request.GetString("cache_dir", config.Defaults.CacheDir)

		store, err := truststore.NewCacheStore(cacheDir)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to open cache store: %v", err)), nil
		}

		if !store.Exists() {
			return mcp.NewToolResultText("Cache slot: absent"), nil
		}

		mtime, err := store.LastModified()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to stat cache slot: %v", err)), nil
		}

		data, err := store.Read()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read cache slot: %v", err)), nil
		}

		certCount := 0
		if certs, err := x509certs.New().ParseBundle(data); err == nil {
			certCount = len(x509certs.Dedupe(certs))
		}

		status := fmt.Sprintf("Cache slot: present\nPath: %s\nAge: %.1f hours\nSize: %d bytes\nCertificates: %d",
			store.Path(), time.Since(mtime).Hours(), len(data), certCount)
		return mcp.NewToolResultText(status), nil
	}
}

// parseCachePolicy maps a policy name to a truststore.CachePolicy.
func parseCachePolicy(name string) (truststore.CachePolicy, error) {
	switch name {
	case "write-through":
		return truststore.CacheWriteThrough, nil
	case "after-parse":
		return truststore.CacheAfterParse, nil
	default:
		return 0, fmt.Errorf("unknown cache policy %q, expected 'write-through' or 'after-parse'", name)
	}
}

// formatTrustStore renders the deduplicated certificate list in the requested format.
func formatTrustStore(certs []*x509.Certificate, format string) (*mcp.CallToolResult, error) {
	switch format {
	case "json":
		data, err := truststore.ToJSON(certs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	case "table":
		return mcp.NewToolResultText(truststore.RenderTable(certs)), nil
	case "pem":
		if len(certs) == 0 {
			return mcp.NewToolResultText("Trust store is empty"), nil
		}
		return mcp.NewToolResultText(string(x509certs.New().EncodeMultiplePEM(certs))), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q, expected 'pem', 'json', or 'table'", format)), nil
	}
}
