package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Metadata describes one ingested upload
type Metadata struct {
	Filename  string `json:"filename"`
	Format    Format `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Lines     int    `json:"lines"`
	Bullets   int    `json:"bullets"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename string, format Format, content string) *Metadata {
	m := &Metadata{
		Filename:  filename,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
	if content != "" {
		for _, line := range strings.Split(content, "\n") {
			if line == "" {
				continue
			}
			m.Lines++
			if isBulletLine(line) {
				m.Bullets++
			}
		}
	}
	return m
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
