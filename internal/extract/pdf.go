package extract

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"rsc.io/pdf"
)

// extractPDF opens the document as a paginated PDF and extracts the text runs
// of every page in rendering order. Runs on a page are joined with single
// spaces, pages with newlines.
//
// A page whose text extraction fails is skipped with a warning instead of
// aborting the whole document, so a single corrupt page does not lose the
// rest. If no page yields text the document is likely a scanned/image-only
// PDF and ErrNoTextContent is returned.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Err: err}
	}

	var pages []string
	for num := 1; num <= reader.NumPage(); num++ {
		text, err := pdfPageText(reader, num)
		if err != nil {
			log.Printf("WARN: Skipping PDF page %d: %v", num, err)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	combined := strings.Join(pages, "\n")
	if strings.TrimSpace(combined) == "" {
		return "", ErrNoTextContent
	}
	return combined, nil
}

// pdfPageText extracts the text of a single page. The underlying content
// interpreter panics on malformed content streams, so the panic is converted
// to an error here to keep the failure local to the page.
func pdfPageText(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content stream: %v", r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", fmt.Errorf("page object missing")
	}

	var b strings.Builder
	var last pdf.Text
	for _, t := range page.Content().Text {
		// Runs arrive one per text-show operation, often several per visual
		// word, so joining them all with spaces would split words apart. A
		// space is inserted only where the geometry shows a separation:
		// vertically (new line on the page) or horizontally.
		if last.S != "" && (t.Y != last.Y || t.X-(last.X+last.W) > 0.3*last.FontSize) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		last = t
	}
	return strings.TrimSpace(b.String()), nil
}
