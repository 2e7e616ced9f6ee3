package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/models"
)

// Extractor turns one delivery-order spreadsheet into normalized line
// items by scanning fixed cell positions.
type Extractor struct {
	layout Layout
	logger *zap.Logger
}

// NewExtractor creates an Extractor using the default form layout.
func NewExtractor(logger *zap.Logger) *Extractor {
	return NewExtractorWithLayout(DefaultLayout(), logger)
}

// NewExtractorWithLayout creates an Extractor for a custom layout.
func NewExtractorWithLayout(layout Layout, logger *zap.Logger) *Extractor {
	return &Extractor{layout: layout, logger: logger}
}

// ExtractFile reads path and returns its line items. A row is kept only
// when both the product name and the quantity are present; all other
// columns degrade to defaults. Rows at and after the totals marker are
// excluded.
func (e *Extractor) ExtractFile(path string) ([]models.LineItem, error) {
	e.logger.Debug("Extracting delivery order", zap.String("file", path))

	grid, err := readGrid(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	items := e.extractGrid(grid, filepath.Base(path))

	e.logger.Debug("Delivery order extracted",
		zap.String("file", path),
		zap.Int("records", len(items)))
	return items, nil
}

// extractGrid applies the positional layout to an untyped cell grid.
func (e *Extractor) extractGrid(grid [][]string, source string) []models.LineItem {
	l := e.layout

	var customer string
	var date models.DeliveryDate
	if len(grid) > l.HeaderRow {
		header := grid[l.HeaderRow]
		customer = cellAt(header, l.CustomerCol)
		date = parseDate(cellAt(header, l.DateCol))
	}

	var items []models.LineItem
	for i := l.DataStartRow; i < len(grid); i++ {
		row := grid[i]

		product := cellAt(row, l.ProductCol)
		if strings.Contains(product, l.TotalsMarker) {
			break
		}

		quantity, hasQuantity := parseDecimal(cellAt(row, l.QuantityCol))
		if product == "" || !hasQuantity || quantity == 0 {
			continue
		}

		unitPrice, _ := parseDecimal(cellAt(row, l.UnitPriceCol))
		amount, _ := parseDecimal(cellAt(row, l.AmountCol))

		items = append(items, models.LineItem{
			Product:   collapseLineBreaks(product),
			Spec:      cellAt(row, l.SpecCol),
			Quantity:  quantity,
			Unit:      cellAt(row, l.UnitCol),
			UnitPrice: unitPrice,
			Amount:    amount,
			Customer:  customer,
			Date:      date,
			Source:    source,
		})
	}
	return items
}
