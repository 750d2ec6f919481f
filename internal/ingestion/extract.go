// Package ingestion turns uploaded résumé files into cleaned plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxUploadBytes bounds the size of an accepted upload
const MaxUploadBytes = 5 << 20

// Format is a supported upload format
type Format string

// Supported formats
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var extensions = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// UnsupportedFormatError is returned for file types that cannot be ingested
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file %q: missing extension (supported: .txt, .md, .html)", e.Filename)
	}
	return fmt.Sprintf("unsupported file type %s (supported: .txt, .md, .html)", e.Extension)
}

// TooLargeError is returned when an upload exceeds MaxUploadBytes
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file exceeds %d bytes", e.Limit)
}

// EmptyContentError is returned when an upload yields no text
type EmptyContentError struct {
	Filename string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("no text found in %s", e.Filename)
}

// DetectFormat maps a file name to its format by extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := extensions[ext]
	if !ok {
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
	return format, nil
}

// Extract reads an upload and returns its cleaned text with metadata.
func Extract(filename string, r io.Reader) (string, *Metadata, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return "", nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > MaxUploadBytes {
		return "", nil, &TooLargeError{Limit: MaxUploadBytes}
	}

	var text string
	switch format {
	case FormatHTML:
		text, err = HTMLText(data)
		if err != nil {
			return "", nil, err
		}
	default:
		text = string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, &EmptyContentError{Filename: filename}
	}
	return cleaned, NewMetadata(filename, format, cleaned), nil
}

// HTMLText extracts readable text from an HTML document, keeping one line per block
// element and list items as bullets.
func HTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove elements that never carry résumé content
	doc.Find("script, style, noscript, nav, iframe, svg, template").Remove()

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, section, header, footer, article, dt, dd").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return root.Text(), nil
}
