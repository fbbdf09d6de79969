// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
)

// Fingerprint is the SHA-256 digest of a certificate's DER encoding.
// Two certificates with identical encoded bytes share a fingerprint
// regardless of how they were decoded.
type Fingerprint [sha256.Size]byte

// String returns the fingerprint as a lowercase hex string.
func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// FingerprintOf computes the fingerprint of a certificate over its raw
// DER bytes.
func FingerprintOf(cert *x509.Certificate) Fingerprint {
	return sha256.Sum256(cert.Raw)
}

// Dedupe removes duplicate certificates from certs, keyed by [Fingerprint].
//
// It is a pure function: the input slice is not modified, order is preserved,
// and the first occurrence of each distinct fingerprint wins. Applying it
// twice yields the same result as applying it once.
func Dedupe(certs []*x509.Certificate) []*x509.Certificate {
	seen := make(map[Fingerprint]struct{}, len(certs))
	deduped := make([]*x509.Certificate, 0, len(certs))

	for _, cert := range certs {
		fp := FingerprintOf(cert)
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		deduped = append(deduped, cert)
	}

	return deduped
}
