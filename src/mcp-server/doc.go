// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server for relying-party trust store management.
// It implements the Model Context Protocol ([MCP]) server with tools for updating the
// trust store from a remote [PEM] bundle, inspecting the cached bundle offline, and
// reporting cache slot status.
//
// [PEM]: https://grokipedia.com/page/Privacy-Enhanced_Mail
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
