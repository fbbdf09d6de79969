// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// rp-trust-store is a command-line tool for maintaining a local trust store
// of relying-party certificates from a remote PEM bundle.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/rp-trust-store/cmd/rp-trust-store@latest
//
// # Usage
//
//	rp-trust-store -u BUNDLE_URL [FLAGS]
//
// # Flags
//
//	-u, --url        Remote PEM bundle URL [required unless -f is given]
//	-f, --file       Inspect a local bundle (PEM, DER, or PKCS7) instead of updating
//	-c, --cache-dir  Cache directory (default: user cache dir)
//	-o, --output     Destination file (default: stdout)
//	-t, --table      Display trust store as markdown table
//	-j, --json       Emit JSON summary of the trust store
//	-p, --policy     Cache policy: 'write-through' (default) or 'after-parse'
//
// # Examples
//
// Refresh the trust store and write the deduplicated bundle:
//
//	rp-trust-store -u https://wallet.example.com/rp-certificates.pem -o store.pem
//
// Inspect the trust store as a markdown table:
//
//	rp-trust-store -u https://wallet.example.com/rp-certificates.pem --table
//
// Only commit fetched data to the cache once it parsed:
//
//	rp-trust-store -u https://wallet.example.com/rp-certificates.pem -p after-parse
//
// Inspect a local bundle without touching the network or the cache:
//
//	rp-trust-store -f bundle.p7b --table
//
// When the remote is unreachable, the previously cached bundle is served;
// when no cache exists either, the emitted bundle is empty.
package main
