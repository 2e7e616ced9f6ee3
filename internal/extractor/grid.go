package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// SupportedExtension reports whether ext (with leading dot, any case)
// names one of the two supported spreadsheet formats.
func SupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".xls", ".xlsx":
		return true
	}
	return false
}

// readGrid loads the first sheet of a spreadsheet as an untyped grid of
// cell strings. No header interpretation happens here.
func readGrid(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSXGrid(path)
	case ".xls":
		return readXLSGrid(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format: %s", filepath.Ext(path))
	}
}

func readXLSXGrid(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	// Raw cell values keep dates as Excel serial numbers instead of a
	// style-dependent display string.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readXLSGrid(path string) ([][]string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy workbook: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("legacy workbook has no sheets")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol()+1)
		for j := 0; j <= row.LastCol(); j++ {
			if j < len(cells) {
				cells[j] = row.Col(j)
			}
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
