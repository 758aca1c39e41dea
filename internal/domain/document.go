package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FillColor is the opaque color painted over a redacted band.
// It implements image/color.Color so renderers can use it directly.
type FillColor struct {
	R, G, B uint8
}

// White is the default fill, matching the classic "blank footer" look.
var White = FillColor{R: 255, G: 255, B: 255}

// RGBA implements color.Color.
func (c FillColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex returns the color as "#RRGGBB".
func (c FillColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseFillColor parses "#RRGGBB" (leading '#' optional) into a FillColor.
func ParseFillColor(s string) (FillColor, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return FillColor{}, fmt.Errorf("invalid fill color %q: want RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return FillColor{}, fmt.Errorf("invalid fill color %q: %v", s, err)
	}
	return FillColor{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// RedactionOptions controls a single redaction pass over a document.
type RedactionOptions struct {
	// FooterHeight is the band height in points, measured upward from the
	// bottom edge of every page. Values <= 0 make the pass a no-op.
	FooterHeight float64
	FillColor    FillColor
}

// RedactionResult is the output of one redaction pass.
type RedactionResult struct {
	Output []byte
	Pages  int
}

// Upload is one file received from a client, fully buffered.
type Upload struct {
	Name string
	Data []byte
}

// PreviewImage is a single rasterized page, PNG encoded.
type PreviewImage struct {
	Page int
	PNG  []byte
}

// ProcessedDocument is the per-file result handle cached in a session.
type ProcessedDocument struct {
	OriginalName string    `json:"original_name"`
	OutputPath   string    `json:"-"`
	Pages        int       `json:"pages"`
	FooterHeight float64   `json:"footer_height"`
	PreviewPaths []string  `json:"-"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// Session groups the results of one processing batch. It lives in memory
// until the client clears it; there is no implicit expiry mid-session.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	// Documents is keyed by original filename; Order preserves upload order.
	Documents map[string]*ProcessedDocument `json:"-"`
	Order     []string                      `json:"-"`
}

// Add records a processed document, replacing any earlier result for the
// same filename (re-uploading a file supersedes the previous run).
func (s *Session) Add(doc *ProcessedDocument) {
	if _, exists := s.Documents[doc.OriginalName]; !exists {
		s.Order = append(s.Order, doc.OriginalName)
	}
	s.Documents[doc.OriginalName] = doc
}

// Document returns the result handle for the given original filename.
func (s *Session) Document(name string) (*ProcessedDocument, bool) {
	doc, ok := s.Documents[name]
	return doc, ok
}
