// Package handler provides HTTP handlers for the API.
package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"pdf-footer-remover/internal/domain"
)

// maxMultipartMemory bounds how much of a multipart body stays in memory
// before spilling to disk.
const maxMultipartMemory = 32 << 20

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documentService domain.DocumentService
	config          domain.Config
	validate        *validator.Validate
	logger          domain.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService domain.DocumentService, config domain.Config, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		config:          config,
		validate:        validator.New(),
		logger:          logger,
	}
}

type documentResponse struct {
	Name         string   `json:"name"`
	Pages        int      `json:"pages"`
	FooterHeight float64  `json:"footer_height"`
	DownloadURL  string   `json:"download_url"`
	PreviewURLs  []string `json:"preview_urls"`
}

type sessionResponse struct {
	SessionID string             `json:"session_id"`
	CreatedAt time.Time          `json:"created_at"`
	Documents []documentResponse `json:"documents"`
}

// RedactDocuments handles the multipart upload of one or more PDFs plus a
// footer_height form value, processes the batch and returns the session
// with download/preview URLs.
func (h *DocumentHandler) RedactDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "At least one PDF file is required (field: files)")
		return
	}

	footerHeight, err := h.footerHeight(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uploads := make([]domain.Upload, 0, len(headers))
	for _, header := range headers {
		// Sanitize filename (strip any path components)
		originalName := strings.TrimSpace(filepath.Base(header.Filename))
		if originalName == "" || originalName == "." || originalName == string(filepath.Separator) {
			originalName = "document.pdf"
		}

		if strings.ToLower(filepath.Ext(originalName)) != ".pdf" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported file type for %q. Only PDF (.pdf) files are accepted.", originalName))
			return
		}

		if header.Size > h.config.GetMaxFileSize() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("File %q too large. Maximum single file size is %d bytes.", originalName, h.config.GetMaxFileSize()))
			return
		}

		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Cannot read uploaded file %q", originalName))
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Cannot read uploaded file %q", originalName))
			return
		}

		uploads = append(uploads, domain.Upload{Name: originalName, Data: data})
	}

	session, err := h.documentService.ProcessBatch(r.Context(), uploads, footerHeight)
	if err != nil {
		h.logger.Error("Batch processing failed", err, "files", len(uploads), "footer_height", footerHeight)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.sessionResponse(session))
}

// GetSession returns a previously processed batch so clients can re-render
// results without re-processing.
func (h *DocumentHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := h.documentService.GetSession(sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sessionResponse(session))
}

// DownloadDocument streams the cleaned PDF for one document of a session.
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doc, err := h.sessionDocument(vars["id"], vars["name"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "footer_removed_"+doc.OriginalName))
	http.ServeFile(w, r, doc.OutputPath)
}

// GetPreview streams one preview PNG of a processed document.
func (h *DocumentHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doc, err := h.sessionDocument(vars["id"], vars["name"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 1 || page > len(doc.PreviewPaths) {
		writeError(w, http.StatusNotFound, "Preview not available for this page")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, doc.PreviewPaths[page-1])
}

// ClearSession drops a session's cached results and artifacts.
func (h *DocumentHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := h.documentService.ClearSession(sessionID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session cleared"})
}

// footerHeight reads and validates the footer_height form value, falling
// back to the configured default when omitted.
func (h *DocumentHandler) footerHeight(r *http.Request) (float64, error) {
	raw := strings.TrimSpace(r.FormValue("footer_height"))
	if raw == "" {
		return h.config.GetDefaultFooterHeight(), nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("footer_height must be a number of points, got %q", raw)
	}

	bounds := fmt.Sprintf("gte=%g,lte=%g", h.config.GetMinFooterHeight(), h.config.GetMaxFooterHeight())
	if err := h.validate.Var(value, bounds); err != nil {
		return 0, fmt.Errorf("footer_height must be between %g and %g points",
			h.config.GetMinFooterHeight(), h.config.GetMaxFooterHeight())
	}

	return value, nil
}

func (h *DocumentHandler) sessionResponse(session *domain.Session) sessionResponse {
	resp := sessionResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
		Documents: make([]documentResponse, 0, len(session.Order)),
	}

	for _, name := range session.Order {
		doc, ok := session.Document(name)
		if !ok {
			continue
		}

		escaped := url.PathEscape(doc.OriginalName)
		previews := make([]string, 0, len(doc.PreviewPaths))
		for i := range doc.PreviewPaths {
			previews = append(previews, fmt.Sprintf("/api/v1/sessions/%s/documents/%s/previews/%d", session.ID, escaped, i+1))
		}

		resp.Documents = append(resp.Documents, documentResponse{
			Name:         doc.OriginalName,
			Pages:        doc.Pages,
			FooterHeight: doc.FooterHeight,
			DownloadURL:  fmt.Sprintf("/api/v1/sessions/%s/documents/%s/download", session.ID, escaped),
			PreviewURLs:  previews,
		})
	}

	return resp
}

// sessionDocument resolves a document handle within a session.
func (h *DocumentHandler) sessionDocument(sessionID, name string) (*domain.ProcessedDocument, error) {
	session, err := h.documentService.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	doc, ok := session.Document(name)
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}
