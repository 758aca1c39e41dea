package service

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// testLogger is a no-op logger for service tests.
type testLogger struct{}

func (testLogger) Info(msg string, fields ...interface{}) {}
func (testLogger) Error(msg string, err error, fields ...interface{}) {}
func (testLogger) Debug(msg string, fields ...interface{}) {}
func (testLogger) Warn(msg string, fields ...interface{}) {}

// buildTestPDF assembles a minimal but valid PDF with one page per entry in
// pageDims ({width, height} in points). Every page carries body text near
// the top and a footer line 20pt above the bottom edge, so redaction tests
// have real content above and inside the band. Cross-reference offsets are
// computed while writing, keeping the fixture valid for strict parsers.
func buildTestPDF(t *testing.T, pageDims ...[2]float64) []byte {
	t.Helper()

	if len(pageDims) == 0 {
		pageDims = [][2]float64{{612, 792}}
	}
	n := len(pageDims)
	fontObj := 2 + 2*n + 1

	kids := make([]string, n)
	for i := range pageDims {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
	}

	for i, dim := range pageDims {
		w, h := dim[0], dim[1]
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			w, h, fontObj, 4+2*i))

		content := fmt.Sprintf(
			"BT /F1 12 Tf 72 %g Td (Body text on page %d) Tj ET\nBT /F1 9 Tf 72 20 Td (Footer on page %d) Tj ET",
			h-100, i+1, i+1)
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)

	return buf.Bytes()
}
