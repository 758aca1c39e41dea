package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pdf-footer-remover/internal/domain"
)

// DocumentService runs the upload -> redact -> preview -> cache pipeline.
type DocumentService struct {
	redactor  domain.FooterRedactor
	previews  domain.PreviewRenderer
	storage   domain.ResultStorage
	sessions  domain.SessionRepository
	config    domain.Config
	fillColor domain.FillColor
	logger    domain.Logger
}

// NewDocumentService creates a new document service instance
func NewDocumentService(
	redactor domain.FooterRedactor,
	previews domain.PreviewRenderer,
	storage domain.ResultStorage,
	sessions domain.SessionRepository,
	config domain.Config,
	fillColor domain.FillColor,
	logger domain.Logger,
) *DocumentService {
	return &DocumentService{
		redactor:  redactor,
		previews:  previews,
		storage:   storage,
		sessions:  sessions,
		config:    config,
		fillColor: fillColor,
		logger:    logger,
	}
}

// ProcessBatch redacts every uploaded document with the same footer height
// and caches the results under a fresh session. Documents are independent:
// each gets its own buffers and its own result handle. A redaction failure
// on any document aborts the whole batch and cleans up everything written
// so far; an unredacted page is never shipped silently.
func (s *DocumentService) ProcessBatch(ctx context.Context, uploads []domain.Upload, footerHeight float64) (*domain.Session, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no files to process", domain.ErrInvalidFile)
	}

	session := &domain.Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Documents: make(map[string]*domain.ProcessedDocument, len(uploads)),
	}

	opts := domain.RedactionOptions{
		FooterHeight: footerHeight,
		FillColor:    s.fillColor,
	}

	for _, upload := range uploads {
		if err := ctx.Err(); err != nil {
			s.abort(session.ID)
			return nil, err
		}

		s.logger.Info("Processing document", "session_id", session.ID, "name", upload.Name, "bytes", len(upload.Data), "footer_height", footerHeight)

		result, err := s.redactor.Redact(upload.Data, opts)
		if err != nil {
			s.abort(session.ID)
			return nil, fmt.Errorf("redact %s: %w", upload.Name, err)
		}

		outputPath, err := s.storage.SaveDocument(session.ID, upload.Name, result.Output)
		if err != nil {
			s.abort(session.ID)
			return nil, fmt.Errorf("store %s: %w", upload.Name, err)
		}

		session.Add(&domain.ProcessedDocument{
			OriginalName: upload.Name,
			OutputPath:   outputPath,
			Pages:        result.Pages,
			FooterHeight: footerHeight,
			PreviewPaths: s.renderPreviews(session.ID, upload.Name, result.Output),
			ProcessedAt:  time.Now(),
		})
	}

	if err := s.sessions.Store(session); err != nil {
		s.abort(session.ID)
		return nil, fmt.Errorf("cache session: %w", err)
	}

	s.logger.Info("Batch processed", "session_id", session.ID, "documents", len(session.Order))

	return session, nil
}

// renderPreviews is best effort: a preview failure is logged and the
// document ships without images.
func (s *DocumentService) renderPreviews(sessionID, name string, pdf []byte) []string {
	images, err := s.previews.RenderPreviews(pdf, s.config.GetPreviewPages(), s.config.GetPreviewDPI())
	if err != nil {
		s.logger.Warn("Preview generation failed", "session_id", sessionID, "name", name, "error", err)
		return nil
	}

	paths := make([]string, 0, len(images))
	for _, img := range images {
		path, err := s.storage.SavePreview(sessionID, name, img.Page, img.PNG)
		if err != nil {
			s.logger.Warn("Failed to store preview", "session_id", sessionID, "name", name, "page", img.Page, "error", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// GetSession returns a cached session's results.
func (s *DocumentService) GetSession(sessionID string) (*domain.Session, error) {
	return s.sessions.Retrieve(sessionID)
}

// ClearSession drops the cached results and their on-disk artifacts.
func (s *DocumentService) ClearSession(sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	if err := s.storage.RemoveSession(sessionID); err != nil {
		s.logger.Error("Failed to remove session artifacts", err, "session_id", sessionID)
		return err
	}
	return nil
}

// abort discards partially written artifacts of a failed batch.
func (s *DocumentService) abort(sessionID string) {
	if err := s.storage.RemoveSession(sessionID); err != nil {
		s.logger.Error("Cleanup after failed batch did not complete", err, "session_id", sessionID)
	}
}
