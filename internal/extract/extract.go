// Package extract converts uploaded SOP documents (PDF, DOCX, XLSX, plain
// text) into a single normalized UTF-8 text blob suitable for prompting.
//
// Extraction is a pure transform over the input bytes: no network calls, no
// temp files. Callers are expected to reject files larger than MaxFileSize
// before handing bytes to this package; extraction was validated against that
// limit but does not enforce it.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxFileSize is the upload limit (10 MiB) this package was validated
// against. Enforced by the caller before extraction is attempted.
const MaxFileSize = 10 << 20

// Format identifies a supported document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
	FormatText Format = "txt"
)

// ParseFormat resolves a declared media type, file extension, or bare format
// name to a supported Format. It returns ErrUnsupportedFormat for anything
// outside the four supported formats.
func ParseFormat(declared string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(declared)) {
	case "application/pdf", ".pdf", "pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx", "docx":
		return FormatDOCX, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx", "xlsx":
		return FormatXLSX, nil
	case "text/plain", ".txt", "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, declared)
}

// FormatForFilename resolves a Format from a filename's extension.
func FormatForFilename(filename string) (Format, error) {
	return ParseFormat(filepath.Ext(filename))
}

// Text extracts the text content of a document in the given format.
//
// The result is trimmed; an empty or whitespace-only result is reported as
// ErrNoTextContent rather than returned silently. Format-specific decode
// failures are reported as *ExtractionError.
func Text(data []byte, format Format) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatXLSX:
		text, err = extractXLSX(data)
	case FormatText:
		text, err = extractPlainText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoTextContent
	}
	return text, nil
}

// extractPlainText decodes the bytes directly as UTF-8 text.
func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &ExtractionError{Format: FormatText, Err: fmt.Errorf("content is not valid UTF-8")}
	}
	return string(data), nil
}
