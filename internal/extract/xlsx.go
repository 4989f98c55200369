package extract

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX iterates every sheet of an OOXML workbook, converting each row
// to a space-joined string of cell values in column order. Rows are joined
// with newlines and sheets concatenated, matching the shape of the text a
// reader would see scanning the spreadsheet top to bottom.
func extractXLSX(data []byte) (string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractionError{Format: FormatXLSX, Err: fmt.Errorf("not a valid workbook: %w", err)}
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			log.Printf("WARN: Failed to close workbook: %v", err)
		}
	}()

	var lines []string
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return "", &ExtractionError{Format: FormatXLSX, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
		}
		for _, row := range rows {
			var cells []string
			for _, cell := range row {
				if cell = strings.TrimSpace(cell); cell != "" {
					cells = append(cells, cell)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
