// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the relying-party trust
// store updater. It implements a Cobra-based CLI that runs one update cycle
// against the configured bundle URL and emits the deduplicated trust store in
// PEM, JSON, or markdown table format. A local bundle can be inspected offline
// with the --file flag. The package handles file I/O, context
// cancellation, and integrates with the logger package for diagnostics.
package cli
