package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a minimal uncompressed PDF with one page per content
// stream, computing the cross-reference table by hand so the file is valid
// for any standard reader.
func buildPDF(t *testing.T, pageStreams []string) []byte {
	t.Helper()

	n := len(pageStreams)
	fontObj := 3 + 2*n
	offsets := make([]int, fontObj+1)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i := 0; i < n; i++ {
		writeObj(3+i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, 3+n+i))
	}
	for i, stream := range pageStreams {
		writeObj(3+n+i, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	writeObj(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", fontObj+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= fontObj; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", fontObj+1, xrefOffset)

	return buf.Bytes()
}

func textStream(s string) string {
	return fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", s)
}

func TestPDF(t *testing.T) {
	data := buildPDF(t, []string{
		textStream("Employee Leave Policy"),
		textStream("Annual leave accrues monthly"),
	})

	got, err := Text(data, FormatPDF)
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	want := "Employee Leave Policy\nAnnual leave accrues monthly"
	if got != want {
		t.Fatalf("unexpected text: %q, want %q", got, want)
	}
}

func TestPDFSkipsCorruptPage(t *testing.T) {
	// The middle page's content stream is malformed; extraction must keep
	// going and return the surviving pages instead of aborting.
	data := buildPDF(t, []string{
		textStream("Alpha section"),
		"BT /F1 12 Tf (broken",
		textStream("Gamma section"),
	})

	got, err := Text(data, FormatPDF)
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if !strings.Contains(got, "Alpha section") || !strings.Contains(got, "Gamma section") {
		t.Fatalf("surviving pages missing from output: %q", got)
	}
}

func TestPDFNoText(t *testing.T) {
	// Pages with no text operators model a scanned/image-only document.
	data := buildPDF(t, []string{"", ""})
	if _, err := Text(data, FormatPDF); !errors.Is(err, ErrNoTextContent) {
		t.Fatalf("want ErrNoTextContent, got %v", err)
	}
}

func TestPDFCorrupt(t *testing.T) {
	_, err := Text([]byte("%PDF-1.4 but nothing else"), FormatPDF)
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("want *ExtractionError, got %v", err)
	}
	if extractionErr.Format != FormatPDF {
		t.Fatalf("unexpected format in error: %q", extractionErr.Format)
	}
}

func TestPDFIdempotent(t *testing.T) {
	data := buildPDF(t, []string{textStream("Stable page")})
	first, err := Text(data, FormatPDF)
	if err != nil {
		t.Fatalf("first extraction failed: %v", err)
	}
	second, err := Text(data, FormatPDF)
	if err != nil {
		t.Fatalf("second extraction failed: %v", err)
	}
	if first != second {
		t.Fatalf("extraction not idempotent: %q != %q", first, second)
	}
}
