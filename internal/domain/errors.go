package domain

import "errors"

// Domain errors
var (
	// ErrDocumentOpen means the input bytes are not a parseable PDF.
	ErrDocumentOpen = errors.New("document cannot be opened")
	// ErrRedaction means a page's footer band could not be committed.
	// The whole document is aborted; no partial output is ever produced.
	ErrRedaction = errors.New("redaction failed")
	// ErrPreviewGeneration means rasterizing a preview page failed.
	// Previews are best effort and never abort the redaction result.
	ErrPreviewGeneration = errors.New("preview generation failed")
	ErrSessionNotFound   = errors.New("session not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidFile       = errors.New("invalid file")
)
