// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/rp-trust-store/src/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var serverName = "Relying-Party Trust Store" // MCP server name
var appVersion = version.Version             // default version

// GetVersion returns the default server version from the version package.
func GetVersion() string {
	return version.Version
}

// Run starts the MCP server with trust store management tools.
// It loads configuration from the MCP_CONFIG_FILE environment variable.
func Run(ver string) error {
	if ver != "" {
		appVersion = ver
	}
	// Load configuration
	config, err := loadConfig(os.Getenv("MCP_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Create MCP server
	s := server.NewMCPServer(
		serverName,
		appVersion,
		server.WithToolCapabilities(true),
	)

	// Define trust store update tool
	updateTrustStoreTool := mcp.NewTool("update_trust_store",
		mcp.WithDescription("Fetch the relying-party certificate bundle, refresh the cache slot, and return the deduplicated trust store"),
		mcp.WithString("url",
			mcp.Description("Remote PEM bundle URL (default: configured bundle URL)"),
			mcp.DefaultString(config.Defaults.BundleURL),
		),
		mcp.WithString("cache_dir",
			mcp.Description("Cache directory (default: "+config.Defaults.CacheDir+")"),
			mcp.DefaultString(config.Defaults.CacheDir),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'pem', 'json', or 'table' (default: "+config.Defaults.Format+")"),
			mcp.DefaultString(config.Defaults.Format),
		),
		mcp.WithString("policy",
			mcp.Description("Cache policy: 'write-through' or 'after-parse' (default: "+config.Defaults.Policy+")"),
			mcp.DefaultString(config.Defaults.Policy),
		),
	)

	// Define trust store inspection tool
	inspectTrustStoreTool := mcp.NewTool("inspect_trust_store",
		mcp.WithDescription("Parse the cached certificate bundle without touching the network and return the deduplicated trust store"),
		mcp.WithString("cache_dir",
			mcp.Description("Cache directory (default: "+config.Defaults.CacheDir+")"),
			mcp.DefaultString(config.Defaults.CacheDir),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'pem', 'json', or 'table' (default: "+config.Defaults.Format+")"),
			mcp.DefaultString(config.Defaults.Format),
		),
	)

	// Define trust store status tool
	trustStoreStatusTool := mcp.NewTool("trust_store_status",
		mcp.WithDescription("Report whether a cached bundle exists, its age in hours, and its size"),
		mcp.WithString("cache_dir",
			mcp.Description("Cache directory (default: "+config.Defaults.CacheDir+")"),
			mcp.DefaultString(config.Defaults.CacheDir),
		),
	)

	// Register tool handlers
	s.AddTool(updateTrustStoreTool, makeUpdateHandler(config))
	s.AddTool(inspectTrustStoreTool, makeInspectHandler(config))
	s.AddTool(trustStoreStatusTool, makeStatusHandler(config))

	// Start stdio server
	return server.ServeStdio(s)
}
