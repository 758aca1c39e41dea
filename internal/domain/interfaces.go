package domain

import "context"

// FooterRedactor applies the footer band redaction to a whole document.
type FooterRedactor interface {
	Redact(input []byte, opts RedactionOptions) (*RedactionResult, error)
}

// PreviewRenderer rasterizes the first pages of a document for display.
// Previews are best effort; a renderer failure never invalidates the
// redaction result it previews.
type PreviewRenderer interface {
	RenderPreviews(pdf []byte, maxPages int, dpi float64) ([]PreviewImage, error)
}

// ResultStorage owns the ephemeral on-disk artifacts of a session.
type ResultStorage interface {
	SaveDocument(sessionID, name string, data []byte) (string, error)
	SavePreview(sessionID, name string, page int, png []byte) (string, error)
	RemoveSession(sessionID string) error
}

// SessionRepository caches processing results across requests.
type SessionRepository interface {
	Store(session *Session) error
	Retrieve(sessionID string) (*Session, error)
	Delete(sessionID string) error
}

// DocumentService is the application-level API the HTTP layer talks to.
type DocumentService interface {
	ProcessBatch(ctx context.Context, uploads []Upload, footerHeight float64) (*Session, error)
	GetSession(sessionID string) (*Session, error)
	ClearSession(sessionID string) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetTempPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetDefaultFooterHeight() float64
	GetMinFooterHeight() float64
	GetMaxFooterHeight() float64
	GetPreviewDPI() float64
	GetPreviewPages() int
	GetFillColor() string
	GetAllowedOrigins() []string
}
