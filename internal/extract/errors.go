package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when the declared file type is not one of
// the four supported formats.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrNoTextContent is returned when extraction produced no usable text, e.g.
// a scanned image-only PDF or an empty spreadsheet. Callers are expected to
// offer a manual text-entry path as recovery.
var ErrNoTextContent = errors.New("no text content could be extracted")

// ExtractionError reports a format-specific decode failure (corrupt file,
// unsupported encoding).
type ExtractionError struct {
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s content: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
