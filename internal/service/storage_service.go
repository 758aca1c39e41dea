package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-footer-remover/internal/domain"
)

// LocalStorage keeps session artifacts (cleaned PDFs, preview images) in an
// ephemeral directory tree under root, one subdirectory per session. Nothing
// survives a session clear.
type LocalStorage struct {
	root   string
	logger domain.Logger
}

// NewLocalStorage creates the storage root if needed
func NewLocalStorage(root string, logger domain.Logger) (*LocalStorage, error) {
	dir := filepath.Join(root, "pdf-footer-remover")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStorage{root: dir, logger: logger}, nil
}

// SaveDocument writes a cleaned PDF and returns its path. The stored name
// carries the footer_removed_ prefix clients see on download.
func (s *LocalStorage) SaveDocument(sessionID, name string, data []byte) (string, error) {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, "footer_removed_"+sanitizeName(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}

// SavePreview writes one preview PNG and returns its path.
func (s *LocalStorage) SavePreview(sessionID, name string, page int, png []byte) (string, error) {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(sanitizeName(name), filepath.Ext(name))
	path := filepath.Join(dir, fmt.Sprintf("preview_%s_%d.png", stem, page))
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write preview: %w", err)
	}
	return path, nil
}

// RemoveSession deletes every artifact of a session. Removing a session
// that was never materialized on disk is a no-op.
func (s *LocalStorage) RemoveSession(sessionID string) error {
	dir := filepath.Join(s.root, sanitizeName(sessionID))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove session dir: %w", err)
	}
	s.logger.Debug("Session artifacts removed", "session_id", sessionID)
	return nil
}

func (s *LocalStorage) sessionDir(sessionID string) (string, error) {
	dir := filepath.Join(s.root, sanitizeName(sessionID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	return dir, nil
}

// sanitizeName strips path components so stored names can never escape the
// session directory.
func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "document"
	}
	return name
}
