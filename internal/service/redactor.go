package service

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdf-footer-remover/internal/domain"
)

// Band is the page-bottom rectangle targeted by one redaction pass,
// in page coordinates with the origin at the top-left corner
// (y grows downward, matching how footer heights are reasoned about).
type Band struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the band.
func (b Band) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the band.
func (b Band) Height() float64 { return b.Y1 - b.Y0 }

// FooterBand computes the redaction rectangle for a single page.
// The band spans the full page width and the bottom footerHeight points;
// footerHeight >= pageHeight clamps to the whole page so the rectangle
// never has negative height.
func FooterBand(pageWidth, pageHeight, footerHeight float64) Band {
	y0 := pageHeight - footerHeight
	if y0 < 0 {
		y0 = 0
	}
	return Band{
		X0: 0,
		Y0: y0,
		X1: pageWidth,
		Y1: pageHeight,
	}
}

// bandStampDesc anchors the fill flush to the bottom edge, renders it at
// native size (1px = 1pt) and fully opaque.
const bandStampDesc = "pos:bc, scale:1 abs, rot:0, op:1"

// RedactionService removes the footer band from every page of a PDF:
// in-band text is deleted from the content streams, the band is flattened
// behind an opaque fill and the document is re-serialized.
type RedactionService struct {
	conf   *model.Configuration
	logger domain.Logger
}

// NewRedactionService creates a new redaction service
func NewRedactionService(logger domain.Logger) *RedactionService {
	return &RedactionService{
		conf:   model.NewDefaultConfiguration(),
		logger: logger,
	}
}

// Redact applies the footer band to every page, in document order, and
// returns the cleaned document re-serialized and optimized (dead objects
// dropped, streams compressed). In-band content is removed from the page
// content streams, then the band is flattened behind an opaque fill. The
// input slice is never mutated; a failing page aborts the whole document
// with no partial output.
func (s *RedactionService) Redact(input []byte, opts domain.RedactionOptions) (*domain.RedactionResult, error) {
	ctx, err := api.ReadContext(bytes.NewReader(input), s.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentOpen, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentOpen, err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentOpen, err)
	}

	// A degenerate band removes nothing. Tolerated, not an error.
	if opts.FooterHeight <= 0 {
		s.logger.Debug("Non-positive footer height, skipping redaction", "footer_height", opts.FooterHeight)
		return &domain.RedactionResult{Output: input, Pages: len(dims)}, nil
	}

	if err := api.OptimizeContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRedaction, err)
	}

	stamps := make(map[int]*model.Watermark, len(dims))
	fills := make(map[[2]int][]byte)

	for i, dim := range dims {
		band := FooterBand(dim.Width, dim.Height, opts.FooterHeight)

		// Delete in-band text from the page's content stream. The band
		// spans the bottom band.Height() points in PDF user space.
		if err := stripPageFooterText(ctx, i+1, band.Height()); err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrRedaction, i+1, err)
		}

		// One fill image per distinct band geometry; pixels map 1:1 to points.
		key := [2]int{pts(band.Width()), pts(band.Height())}
		fill, ok := fills[key]
		if !ok {
			fill, err = fillPNG(key[0], key[1], opts.FillColor)
			if err != nil {
				return nil, fmt.Errorf("%w: page %d: %v", domain.ErrRedaction, i+1, err)
			}
			fills[key] = fill
		}

		wm, err := api.ImageWatermarkForReader(bytes.NewReader(fill), bandStampDesc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrRedaction, i+1, err)
		}
		stamps[i+1] = wm
	}

	ctx.EnsureVersionForWriting()
	var stripped bytes.Buffer
	if err := api.WriteContext(ctx, &stripped); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRedaction, err)
	}

	var stamped bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(stripped.Bytes()), &stamped, stamps, s.conf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRedaction, err)
	}

	// Mirrors the garbage-collected, deflated save of the source tool.
	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(stamped.Bytes()), &out, s.conf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRedaction, err)
	}

	s.logger.Debug("Footer band committed", "pages", len(dims), "footer_height", opts.FooterHeight)

	return &domain.RedactionResult{Output: out.Bytes(), Pages: len(dims)}, nil
}

// stripPageFooterText rewrites one page's content stream with every
// text-showing operator positioned inside the bottom band removed. Pages
// without content are left alone.
func stripPageFooterText(ctx *model.Context, pageNr int, bandTop float64) error {
	d, _, _, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return err
	}

	content, err := ctx.PageContent(d, pageNr)
	if err != nil {
		if errors.Is(err, model.ErrNoContent) {
			return nil
		}
		return err
	}

	stripped, err := stripBandText(content, bandTop)
	if err != nil {
		return err
	}
	if bytes.Equal(stripped, content) {
		return nil
	}

	sd, err := ctx.NewStreamDictForBuf(stripped)
	if err != nil {
		return err
	}
	if err := sd.Encode(); err != nil {
		return err
	}
	ir, err := ctx.IndRefForNewObject(*sd)
	if err != nil {
		return err
	}
	d["Contents"] = *ir

	return nil
}

// pts rounds a dimension in points up to a whole pixel count. Rounding up
// keeps the fill from undershooting the band by a fraction of a point.
func pts(v float64) int {
	n := int(math.Ceil(v))
	if n < 1 {
		n = 1
	}
	return n
}

// fillPNG renders a solid w x h block of the fill color as PNG bytes.
func fillPNG(w, h int, fill domain.FillColor) ([]byte, error) {
	img := imaging.New(w, h, fill)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
