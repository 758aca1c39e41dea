package service

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdf-footer-remover/internal/domain"
)

// pageContents returns the decoded content stream of every page of a PDF.
func pageContents(t *testing.T, pdf []byte) []string {
	t.Helper()

	ctx, err := api.ReadContext(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("cannot read PDF: %v", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		t.Fatalf("cannot validate PDF: %v", err)
	}

	contents := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		d, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil {
			t.Fatalf("page %d: cannot resolve page dict: %v", pageNr, err)
		}
		bb, err := ctx.PageContent(d, pageNr)
		if err != nil {
			t.Fatalf("page %d: cannot decode content: %v", pageNr, err)
		}
		contents = append(contents, string(bb))
	}
	return contents
}

func TestFooterBand(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		height float64
		foot   float64
		wantY0 float64
	}{
		{"us letter portrait", 612, 792, 60, 732},
		{"us letter landscape", 792, 612, 60, 552},
		{"a4", 595.28, 841.89, 90, 751.89},
		{"footer equals page height", 612, 792, 792, 0},
		{"footer exceeds page height", 612, 792, 1000, 0},
		{"zero footer", 612, 792, 0, 792},
		{"negative footer", 612, 792, -10, 792},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := FooterBand(tt.width, tt.height, tt.foot)

			if band.X0 != 0 || band.X1 != tt.width {
				t.Errorf("band does not span full width: x0=%g x1=%g want 0..%g", band.X0, band.X1, tt.width)
			}
			if math.Abs(band.Y0-tt.wantY0) > 1e-9 {
				t.Errorf("y0 = %g, want %g", band.Y0, tt.wantY0)
			}
			if band.Y1 != tt.height {
				t.Errorf("y1 = %g, want %g", band.Y1, tt.height)
			}
			if band.Height() < 0 {
				t.Errorf("band has negative height: %g", band.Height())
			}
		})
	}
}

func TestFooterBand_SpecExample(t *testing.T) {
	// 792x612pt page with a 60pt footer removes exactly (0, 552, 792, 612).
	band := FooterBand(792, 612, 60)
	want := Band{X0: 0, Y0: 552, X1: 792, Y1: 612}
	if band != want {
		t.Fatalf("FooterBand(792, 612, 60) = %+v, want %+v", band, want)
	}
}

func TestRedact_InvalidInput(t *testing.T) {
	svc := NewRedactionService(testLogger{})

	_, err := svc.Redact([]byte("definitely not a pdf"), domain.RedactionOptions{FooterHeight: 60, FillColor: domain.White})
	if !errors.Is(err, domain.ErrDocumentOpen) {
		t.Fatalf("expected ErrDocumentOpen, got %v", err)
	}
}

func TestRedact_NonPositiveFooterHeightIsNoOp(t *testing.T) {
	svc := NewRedactionService(testLogger{})
	input := buildTestPDF(t, [2]float64{612, 792}, [2]float64{612, 792})

	for _, footer := range []float64{0, -25} {
		result, err := svc.Redact(input, domain.RedactionOptions{FooterHeight: footer, FillColor: domain.White})
		if err != nil {
			t.Fatalf("footer %g: unexpected error: %v", footer, err)
		}
		if !bytes.Equal(result.Output, input) {
			t.Fatalf("footer %g: expected input returned unchanged", footer)
		}
		if result.Pages != 2 {
			t.Fatalf("footer %g: expected 2 pages, got %d", footer, result.Pages)
		}
	}
}

func TestRedact_PreservesStructure(t *testing.T) {
	svc := NewRedactionService(testLogger{})
	conf := model.NewDefaultConfiguration()

	// Mixed page sizes, including landscape, exercise per-geometry fills.
	input := buildTestPDF(t, [2]float64{612, 792}, [2]float64{792, 612}, [2]float64{595.28, 841.89})

	result, err := svc.Redact(input, domain.RedactionOptions{FooterHeight: 60, FillColor: domain.White})
	if err != nil {
		t.Fatalf("Redact failed: %v", err)
	}
	if result.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.Pages)
	}

	// Output must remain a valid document...
	if err := api.Validate(bytes.NewReader(result.Output), conf); err != nil {
		t.Fatalf("redacted output is not a valid PDF: %v", err)
	}

	// ...with page count and geometry untouched.
	ctx, err := api.ReadContext(bytes.NewReader(result.Output), conf)
	if err != nil {
		t.Fatalf("cannot re-read redacted output: %v", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		t.Fatalf("cannot validate redacted output: %v", err)
	}
	dims, err := ctx.PageDims()
	if err != nil {
		t.Fatalf("cannot read page dims of output: %v", err)
	}
	want := [][2]float64{{612, 792}, {792, 612}, {595.28, 841.89}}
	if len(dims) != len(want) {
		t.Fatalf("expected %d pages in output, got %d", len(want), len(dims))
	}
	for i, dim := range dims {
		if math.Abs(dim.Width-want[i][0]) > 0.01 || math.Abs(dim.Height-want[i][1]) > 0.01 {
			t.Errorf("page %d: dims %gx%g, want %gx%g", i+1, dim.Width, dim.Height, want[i][0], want[i][1])
		}
	}
}

func TestRedact_RemovesFooterText(t *testing.T) {
	svc := NewRedactionService(testLogger{})
	// The fixture places body text near the top of each page and footer
	// text 20pt above the bottom edge, inside a 60pt band.
	input := buildTestPDF(t, [2]float64{612, 792}, [2]float64{792, 612})

	result, err := svc.Redact(input, domain.RedactionOptions{FooterHeight: 60, FillColor: domain.White})
	if err != nil {
		t.Fatalf("Redact failed: %v", err)
	}

	for i, content := range pageContents(t, result.Output) {
		// The band must hold no extractable text.
		if strings.Contains(content, "Footer on page") {
			t.Errorf("page %d: footer text is still present in the content stream", i+1)
		}
		// Content above the band round-trips unchanged.
		want := fmt.Sprintf("(Body text on page %d) Tj", i+1)
		if !strings.Contains(content, want) {
			t.Errorf("page %d: body text above the band was lost", i+1)
		}
	}
}

func TestRedact_SelectiveWithinBand(t *testing.T) {
	svc := NewRedactionService(testLogger{})
	input := buildTestPDF(t, [2]float64{612, 792})

	// A 10pt band is below the footer baseline at y=20: nothing qualifies.
	result, err := svc.Redact(input, domain.RedactionOptions{FooterHeight: 10, FillColor: domain.White})
	if err != nil {
		t.Fatalf("Redact failed: %v", err)
	}
	content := pageContents(t, result.Output)[0]
	if !strings.Contains(content, "(Footer on page 1) Tj") {
		t.Error("text above a 10pt band must survive")
	}

	// A 60pt band contains the footer baseline: the text is deleted.
	result, err = svc.Redact(input, domain.RedactionOptions{FooterHeight: 60, FillColor: domain.White})
	if err != nil {
		t.Fatalf("Redact failed: %v", err)
	}
	content = pageContents(t, result.Output)[0]
	if strings.Contains(content, "Footer on page 1") {
		t.Error("text inside a 60pt band must be removed")
	}
}

func TestRedact_DoesNotMutateInput(t *testing.T) {
	svc := NewRedactionService(testLogger{})
	input := buildTestPDF(t, [2]float64{612, 792})
	original := append([]byte(nil), input...)

	if _, err := svc.Redact(input, domain.RedactionOptions{FooterHeight: 60, FillColor: domain.White}); err != nil {
		t.Fatalf("Redact failed: %v", err)
	}
	if !bytes.Equal(input, original) {
		t.Fatal("Redact mutated the caller's input buffer")
	}
}

func TestRedact_FooterLargerThanPage(t *testing.T) {
	svc := NewRedactionService(testLogger{})
	// 100pt tall page, 200pt footer: the band clamps to the whole page.
	input := buildTestPDF(t, [2]float64{200, 100})

	result, err := svc.Redact(input, domain.RedactionOptions{FooterHeight: 200, FillColor: domain.White})
	if err != nil {
		t.Fatalf("Redact failed: %v", err)
	}
	if err := api.Validate(bytes.NewReader(result.Output), model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("clamped output is not a valid PDF: %v", err)
	}
}

func TestRedact_SecondPassTolerated(t *testing.T) {
	svc := NewRedactionService(testLogger{})
	input := buildTestPDF(t, [2]float64{612, 792})

	first, err := svc.Redact(input, domain.RedactionOptions{FooterHeight: 60, FillColor: domain.White})
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	// Re-applying the same footer height over an already blank band is a
	// visual no-op and must succeed silently.
	second, err := svc.Redact(first.Output, domain.RedactionOptions{FooterHeight: 60, FillColor: domain.White})
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if second.Pages != first.Pages {
		t.Fatalf("page count changed between passes: %d -> %d", first.Pages, second.Pages)
	}
	if err := api.Validate(bytes.NewReader(second.Output), model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("second pass output is not a valid PDF: %v", err)
	}
}

func TestFillPNG(t *testing.T) {
	png, err := fillPNG(100, 60, domain.White)
	if err != nil {
		t.Fatalf("fillPNG failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("fillPNG returned no bytes")
	}
	// PNG magic number.
	if !bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatal("fillPNG did not produce a PNG")
	}
}

func TestPts(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{60, 60},
		{59.2, 60},
		{0.1, 1},
		{0, 1},
		{-5, 1},
	}
	for _, tt := range tests {
		if got := pts(tt.in); got != tt.want {
			t.Errorf("pts(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
