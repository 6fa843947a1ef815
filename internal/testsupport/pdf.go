package testsupport

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// WriteMinimalPDF writes a structurally valid PDF with the given number of
// blank pages to path.
func WriteMinimalPDF(t testing.TB, path string, pages int) {
	t.Helper()
	if pages < 1 {
		t.Fatalf("pdf needs at least one page, got %d", pages)
	}

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages),
	}
	for range pages {
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	WriteText(t, path, buf.String())
}

// WithReferencePages replaces the placeholder reference document with a
// real PDF of the given length.
func WithReferencePages(pages int) ConfigOption {
	return func(b *configBuilder) {
		WriteMinimalPDF(b.t, b.cfg.Paths.ReferenceDocument, pages)
	}
}
