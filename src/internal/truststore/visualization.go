// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	x509certs "github.com/H0llyW00dzZ/rp-trust-store/src/internal/x509/certs"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderTable renders the trust store content as a formatted markdown table.
//
// It displays each certificate's subject, issuer, validity end date, and
// SHA-256 fingerprint in a tabular format using tablewriter.
//
// Parameters:
//   - certs: Deduplicated certificate list as returned by [Updater.Update]
//
// Returns:
//   - string: Markdown table representation of the trust store
func RenderTable(certs []*x509.Certificate) string {
	if len(certs) == 0 {
		return "Trust store is empty"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Subject", "Issuer", "Valid Until", "SHA-256 Fingerprint"})

	var rows [][]string
	for i, cert := range certs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			x509certs.FingerprintOf(cert).String(),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToJSON converts the trust store content to structured JSON for external tools.
//
// Parameters:
//   - certs: Deduplicated certificate list as returned by [Updater.Update]
//
// Returns:
//   - []byte: JSON representation of the trust store
//   - error: Error if JSON marshaling fails
func ToJSON(certs []*x509.Certificate) ([]byte, error) {
	type CertificateData struct {
		Index       int       `json:"index"`
		Subject     string    `json:"subject"`
		Issuer      string    `json:"issuer"`
		Fingerprint string    `json:"fingerprint"`
		NotBefore   time.Time `json:"notBefore"`
		NotAfter    time.Time `json:"notAfter"`
		IsCA        bool      `json:"isCA"`
	}

	type TrustStoreData struct {
		Timestamp    string            `json:"timestamp"`
		Count        int               `json:"count"`
		Certificates []CertificateData `json:"certificates"`
	}

	data := TrustStoreData{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Count:        len(certs),
		Certificates: make([]CertificateData, 0, len(certs)),
	}

	for i, cert := range certs {
		data.Certificates = append(data.Certificates, CertificateData{
			Index:       i + 1,
			Subject:     cert.Subject.CommonName,
			Issuer:      cert.Issuer.CommonName,
			Fingerprint: x509certs.FingerprintOf(cert).String(),
			NotBefore:   cert.NotBefore,
			NotAfter:    cert.NotAfter,
			IsCA:        cert.IsCA,
		})
	}

	return json.MarshalIndent(data, "", "  ")
}
