// Package workbook persists the flat corpus and its aggregate views as
// named sheets in one merged output workbook.
package workbook

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/aggregate"
	"github.com/baihuihang/delivery-statements/internal/models"
)

// MergedFileName is the file name of the merged output workbook.
const MergedFileName = "merged_delivery_orders.xlsx"

// Sheet names, matching the original report layout.
const (
	sheetSummary       = "汇总"
	sheetDetail        = "详细数据"
	sheetByCustomer    = "按客户分析"
	sheetByProduct     = "按产品分析"
	sheetByMonth       = "按月份分析"
	sheetCustomerMonth = "客户月度分析"
)

// Writer writes the merged workbook.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a workbook Writer.
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write saves the corpus and all five views to path, one sheet each.
func (w *Writer) Write(path string, items []models.LineItem, views *aggregate.Views) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := w.writeSummary(f, headerStyle, views.SummaryByItem); err != nil {
		return err
	}
	if err := w.writeDetail(f, headerStyle, items); err != nil {
		return err
	}
	if err := w.writeByCustomer(f, headerStyle, views.ByCustomer); err != nil {
		return err
	}
	if err := w.writeByProduct(f, headerStyle, views.ByProduct); err != nil {
		return err
	}
	if err := w.writeByMonth(f, headerStyle, views.ByMonth); err != nil {
		return err
	}
	if err := w.writeCustomerMonth(f, headerStyle, views.ByCustomerMonth); err != nil {
		return err
	}

	// The summary sheet replaces the default sheet.
	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save merged workbook: %w", err)
	}

	w.logger.Info("Merged workbook written",
		zap.String("path", path),
		zap.Int("records", len(items)),
		zap.Int("products", len(views.SummaryByItem)))
	return nil
}

// newSheet creates (or renames the default sheet into) name and writes
// the header row.
func (w *Writer) newSheet(f *excelize.File, name string, headerStyle int, headers []interface{}) error {
	if name == sheetSummary {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("failed to rename default sheet: %w", err)
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", name, err)
	}
	end, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(name, "A1", end, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", name, err)
	}
	endCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(name, "A", endCol, 14); err != nil {
		return fmt.Errorf("failed to set column widths of %q: %w", name, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", rowIdx, sheet, err)
	}
	return nil
}

func (w *Writer) writeSummary(f *excelize.File, style int, rows []models.ItemSummary) error {
	if err := w.newSheet(f, sheetSummary, style,
		[]interface{}{"货名", "规格", "单位", "数量", "平均单价", "金额", "客户", "文件"}); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheetSummary, i+2, []interface{}{
			r.Product, r.Spec, r.Unit, r.Quantity, r.AvgUnitPrice.Cell(), r.Amount, r.Customers, r.Sources,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeDetail(f *excelize.File, style int, items []models.LineItem) error {
	if err := w.newSheet(f, sheetDetail, style,
		[]interface{}{"货名", "规格", "数量", "单位", "单价", "金额", "客户", "日期", "文件", "月份"}); err != nil {
		return err
	}

	sorted := make([]models.LineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Product != sorted[j].Product {
			return sorted[i].Product < sorted[j].Product
		}
		if sorted[i].Spec != sorted[j].Spec {
			return sorted[i].Spec < sorted[j].Spec
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for i, it := range sorted {
		if err := setRow(f, sheetDetail, i+2, []interface{}{
			it.Product, it.Spec, it.Quantity, it.Unit, it.UnitPrice, it.Amount,
			it.Customer, it.Date.String(), it.Source, it.YearMonth,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeByCustomer(f *excelize.File, style int, rows []models.CustomerSummary) error {
	if err := w.newSheet(f, sheetByCustomer, style,
		[]interface{}{"客户", "订单数", "数量", "金额", "平均单价"}); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheetByCustomer, i+2, []interface{}{
			r.Customer, r.Orders, r.Quantity, r.Amount, r.AvgUnitPrice.Cell(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeByProduct(f *excelize.File, style int, rows []models.ProductSummary) error {
	if err := w.newSheet(f, sheetByProduct, style,
		[]interface{}{"货名", "规格", "单位", "数量", "平均单价", "金额", "客户"}); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheetByProduct, i+2, []interface{}{
			r.Product, r.Spec, r.Unit, r.Quantity, r.AvgUnitPrice.Cell(), r.Amount, r.Customers,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeByMonth(f *excelize.File, style int, rows []models.MonthSummary) error {
	if err := w.newSheet(f, sheetByMonth, style,
		[]interface{}{"月份", "订单数", "客户数", "数量", "金额", "平均订单金额"}); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheetByMonth, i+2, []interface{}{
			r.YearMonth, r.Orders, r.Customers, r.Quantity, r.Amount, r.AvgOrderAmount.Cell(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeCustomerMonth(f *excelize.File, style int, rows []models.CustomerMonthSummary) error {
	if err := w.newSheet(f, sheetCustomerMonth, style,
		[]interface{}{"客户", "月份", "订单数", "数量", "金额"}); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheetCustomerMonth, i+2, []interface{}{
			r.Customer, r.YearMonth, r.Orders, r.Quantity, r.Amount,
		}); err != nil {
			return err
		}
	}
	return nil
}
