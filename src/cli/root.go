// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/H0llyW00dzZ/rp-trust-store/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/rp-trust-store/src/internal/truststore"
	x509certs "github.com/H0llyW00dzZ/rp-trust-store/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/rp-trust-store/src/logger"
	"github.com/spf13/cobra"
)

var (
	// ErrBundleURLRequired indicates that no bundle URL was supplied.
	ErrBundleURLRequired = errors.New("cli: bundle URL is required")

	// ErrUnknownCachePolicy indicates an unrecognized --policy value.
	ErrUnknownCachePolicy = errors.New("cli: unknown cache policy")
)

var (
	bundleURL  string
	cacheDir   string
	inputFile  string
	outputFile string
	tableView  bool
	jsonView   bool
	policyName string
)

// OperationPerformed indicates whether an update cycle was started.
var OperationPerformed bool

// OperationPerformedSuccessfully indicates whether the update cycle ran to
// completion and its output was written.
var OperationPerformedSuccessfully bool

// Execute runs the root command, handling any errors that occur during execution.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:           posix.GetExecutableName(),
		Short:         "Relying-party trust store updater",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execCli(cmd.Context(), version, log)
		},
	}

	rootCmd.Flags().StringVarP(&bundleURL, "url", "u", "", "remote PEM bundle URL")
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "", "inspect a local bundle (PEM, DER, or PKCS7) instead of updating")
	rootCmd.Flags().StringVarP(&cacheDir, "cache-dir", "c", "", "cache directory (default: user cache dir)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")
	rootCmd.Flags().BoolVarP(&tableView, "table", "t", false, "display trust store as markdown table")
	rootCmd.Flags().BoolVarP(&jsonView, "json", "j", false, "emit JSON summary of the trust store")
	rootCmd.Flags().StringVarP(&policyName, "policy", "p", "write-through", "cache policy: 'write-through' or 'after-parse'")

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// execCli runs one trust store update cycle and writes the result.
//
// The deduplicated certificate list is emitted as a PEM bundle by default,
// as a markdown table with --table, or a JSON summary with --json. Failures
// inside the update cycle itself never surface here; an unreachable remote
// with no cache simply yields an empty store.
func execCli(ctx context.Context, version string, log logger.Logger) error {
	var certs []*x509.Certificate

	switch {
	case inputFile != "":
		decoded, err := decodeLocalBundle(inputFile)
		if err != nil {
			return err
		}
		certs = decoded
	case bundleURL == "":
		return ErrBundleURLRequired
	default:
		policy, err := parsePolicy(policyName)
		if err != nil {
			return err
		}

		dir := cacheDir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return fmt.Errorf("cli: resolving cache directory: %w", err)
			}
			dir = filepath.Join(base, "rp-trust-store")
		}

		updater, err := truststore.New(bundleURL, dir, version, log)
		if err != nil {
			return fmt.Errorf("cli: preparing cache store: %w", err)
		}
		updater.Policy = policy

		OperationPerformed = true
		certs = updater.Update(ctx)
	}

	var outputData []byte
	var err error
	switch {
	case tableView:
		outputData = []byte(truststore.RenderTable(certs))
	case jsonView:
		outputData, err = truststore.ToJSON(certs)
		if err != nil {
			return fmt.Errorf("cli: encoding JSON summary: %w", err)
		}
	default:
		outputData = x509certs.New().EncodeMultiplePEM(certs)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, outputData, 0644); err != nil {
			return fmt.Errorf("cli: writing output file: %w", err)
		}
	} else {
		fmt.Print(string(outputData))
	}

	log.Printf("Trust store contains %d certificate(s)", len(certs))
	OperationPerformedSuccessfully = true
	return nil
}

// decodeLocalBundle reads and decodes a local certificate bundle, trying the
// strict multi-certificate decode first and falling back to a single
// certificate decode for PKCS7 containers.
func decodeLocalBundle(path string) ([]*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: reading input file: %w", err)
	}

	decoder := x509certs.New()
	if certs, err := decoder.DecodeMultiple(data); err == nil && len(certs) > 0 {
		return x509certs.Dedupe(certs), nil
	}

	cert, err := decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("cli: decoding input file: %w", err)
	}

	return x509certs.Dedupe([]*x509.Certificate{cert}), nil
}

// parsePolicy maps the --policy flag value to a truststore.CachePolicy.
func parsePolicy(name string) (truststore.CachePolicy, error) {
	switch name {
	case "write-through":
		return truststore.CacheWriteThrough, nil
	case "after-parse":
		return truststore.CacheAfterParse, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCachePolicy, name)
	}
}
