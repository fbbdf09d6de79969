// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package truststore maintains a local trust store of relying-party
// certificates. It fetches a [PEM]-encoded bundle from a remote URL, writes
// it through to a single persistent cache slot, and returns the parsed,
// fingerprint-deduplicated certificate list. When the fetch or the parse of
// fresh data fails, the previously cached bundle is served instead; when
// neither source yields usable data, the result is an empty list.
//
// This package only produces the candidate trust-anchor set. Chain building,
// expiry enforcement, and revocation checking are left to downstream code.
//
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package truststore
