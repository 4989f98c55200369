package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDOCX pulls the raw visible text out of an OOXML wordprocessing
// document, discarding all formatting. A DOCX file is a zip archive whose
// main body lives in word/document.xml; text runs are <w:t> elements and
// paragraphs become line breaks.
func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Err: fmt.Errorf("not a valid OOXML archive: %w", err)}
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", &ExtractionError{Format: FormatDOCX, Err: fmt.Errorf("word/document.xml not found in archive")}
	}

	rc, err := document.Open()
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Err: fmt.Errorf("failed to open document body: %w", err)}
	}
	defer rc.Close()

	text, err := docxBodyText(rc)
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Err: err}
	}
	return text, nil
}

// docxBodyText walks the document XML token stream collecting character data
// inside <w:t> elements. Paragraph ends, line breaks, and tabs become
// whitespace so the output reads as plain text.
func docxBodyText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var b strings.Builder
	inTextRun := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document XML: %w", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "t":
				inTextRun = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inTextRun {
				b.Write(tok)
			}
		}
	}
	return b.String(), nil
}
