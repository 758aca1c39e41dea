package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"

	"pdf-footer-remover/internal/domain"
)

// FitzPreviewRenderer rasterizes leading pages of a PDF with MuPDF.
type FitzPreviewRenderer struct {
	logger domain.Logger
}

// NewFitzPreviewRenderer creates a new preview renderer
func NewFitzPreviewRenderer(logger domain.Logger) *FitzPreviewRenderer {
	return &FitzPreviewRenderer{logger: logger}
}

// RenderPreviews renders the first min(maxPages, pageCount) pages at the
// given DPI and returns them PNG encoded, 1-indexed. maxPages <= 0 means
// all pages. Any failure is reported as ErrPreviewGeneration; callers
// treat previews as best effort.
func (r *FitzPreviewRenderer) RenderPreviews(pdf []byte, maxPages int, dpi float64) ([]domain.PreviewImage, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPreviewGeneration, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if maxPages > 0 && numPages > maxPages {
		numPages = maxPages
	}

	previews := make([]domain.PreviewImage, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		img, err := doc.ImageDPI(pageNum, dpi)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrPreviewGeneration, pageNum+1, err)
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrPreviewGeneration, pageNum+1, err)
		}

		previews = append(previews, domain.PreviewImage{
			Page: pageNum + 1, // 1-indexed for clients
			PNG:  buf.Bytes(),
		})
	}

	r.logger.Debug("Previews rendered", "pages", len(previews), "dpi", dpi)

	return previews, nil
}
