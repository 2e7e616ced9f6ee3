package extractor

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/baihuihang/delivery-statements/internal/models"
)

// cellAt returns the trimmed cell text at col, or "" when the row is
// shorter than the layout expects.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parseDecimal parses a numeric cell, tolerating thousands separators
// and currency marks.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimLeft(s, "¥￥")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dateLayouts are tried in order against textual date cells. Only
// unambiguous year-first forms are listed; anything else stays opaque
// rather than guessing the field order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.1.2",
	"2006年1月2日",
	time.RFC3339,
}

// parseDate interprets a date cell. Excel serial numbers and several
// textual forms are accepted; anything else is kept opaque with its raw
// text preserved.
func parseDate(raw string) models.DeliveryDate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.DeliveryDate{}
	}

	// Serial date numbers arrive when the workbook stores the cell as a
	// styled number. 60 skips the fictional 1900-02-29 region.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 60 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return models.DeliveryDate{Time: t, Raw: raw, Valid: true}
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return models.DeliveryDate{Time: t, Raw: raw, Valid: true}
		}
	}
	return models.DeliveryDate{Raw: raw}
}

// collapseLineBreaks flattens embedded line breaks in a product name to
// single spaces.
func collapseLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
