// Package statement lays out the per-customer monthly 对账单 document.
package statement

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/models"
	"github.com/baihuihang/delivery-statements/internal/numeral"
)

const sheetName = "对账单"

// Fixed statement geometry: rows 1-3 company block, row 4 customer and
// period, row 5 table header, data from row 6.
const (
	titleRow     = 1
	addressRow   = 2
	contactRow   = 3
	customerRow  = 4
	headerRow    = 5
	dataStartRow = 6
)

// CompanyInfo is the header block printed on every statement.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Fax     string
}

// Renderer writes styled statement documents.
type Renderer struct {
	company CompanyInfo
	logger  *zap.Logger
}

// NewRenderer creates a statement Renderer.
func NewRenderer(company CompanyInfo, logger *zap.Logger) *Renderer {
	return &Renderer{company: company, logger: logger}
}

// PeriodLabel renders a "2006-01" year-month key as the 对账单 period
// heading.
func PeriodLabel(yearMonth string) string {
	parts := strings.SplitN(yearMonth, "-", 2)
	if len(parts) == 2 {
		year, errY := strconv.Atoi(parts[0])
		month, errM := strconv.Atoi(parts[1])
		if errY == nil && errM == nil {
			return fmt.Sprintf("%d年%d月", year, month)
		}
	}
	return "未知月份"
}

// Render writes one statement for a single customer and period to
// outputPath. Items are sorted ascending by delivery date; the total is
// presented both in capital numerals and as a plain two-decimal figure.
// Existence checks are the caller's responsibility.
func (r *Renderer) Render(items []models.LineItem, customer, periodLabel, outputPath string) error {
	sorted := make([]models.LineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	var total float64
	for _, it := range sorted {
		total += it.Amount
	}
	capital, err := numeral.Capital(total)
	if err != nil {
		return fmt.Errorf("failed to render capital amount: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name statement sheet: %w", err)
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	if err := r.writeHeader(f, styles, customer, periodLabel); err != nil {
		return err
	}
	if err := r.writeItems(f, styles, sorted); err != nil {
		return err
	}
	if err := r.writeTotals(f, styles, len(sorted), total, capital); err != nil {
		return err
	}
	if err := configurePage(f); err != nil {
		return err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save statement: %w", err)
	}

	r.logger.Info("Statement written",
		zap.String("customer", customer),
		zap.String("period", periodLabel),
		zap.Int("items", len(sorted)),
		zap.Float64("total", total),
		zap.String("path", outputPath))
	return nil
}

type styleSet struct {
	title   int
	header  int
	subhead int
	cell    int
	product int
	closing int
	right   int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	var s styleSet
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "宋体", Size: 18, Bold: true},
		Alignment: center,
	}); err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	if s.subhead, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "宋体", Size: 10},
		Alignment: center,
	}); err != nil {
		return nil, fmt.Errorf("failed to create subheader style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "宋体", Size: 11, Bold: true},
		Alignment: center,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Border:    thin,
	}); err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.cell, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "宋体", Size: 10},
		Alignment: center,
		Border:    thin,
	}); err != nil {
		return nil, fmt.Errorf("failed to create cell style: %w", err)
	}
	if s.product, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "宋体", Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	}); err != nil {
		return nil, fmt.Errorf("failed to create product style: %w", err)
	}
	if s.closing, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "宋体", Size: 11},
	}); err != nil {
		return nil, fmt.Errorf("failed to create closing style: %w", err)
	}
	if s.right, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "宋体", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return nil, fmt.Errorf("failed to create right-aligned style: %w", err)
	}
	return &s, nil
}

func (r *Renderer) writeHeader(f *excelize.File, s *styleSet, customer, periodLabel string) error {
	widths := []struct {
		col   string
		width float64
	}{
		{"A", 12}, {"B", 20}, {"C", 8}, {"D", 10}, {"E", 10}, {"F", 12}, {"G", 12},
	}
	for _, cw := range widths {
		if err := f.SetColWidth(sheetName, cw.col, cw.col, cw.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	merge := func(row int, value string, style int) error {
		start := fmt.Sprintf("A%d", row)
		end := fmt.Sprintf("G%d", row)
		if err := f.MergeCell(sheetName, start, end); err != nil {
			return fmt.Errorf("failed to merge row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheetName, start, value); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		return f.SetCellStyle(sheetName, start, end, style)
	}

	if err := merge(titleRow, r.company.Name, s.title); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheetName, titleRow, 30); err != nil {
		return fmt.Errorf("failed to set title row height: %w", err)
	}
	if err := merge(addressRow, "地址："+r.company.Address, s.subhead); err != nil {
		return err
	}
	contact := fmt.Sprintf("电话：%s    传真：%s", r.company.Phone, r.company.Fax)
	if err := merge(contactRow, contact, s.subhead); err != nil {
		return err
	}

	if err := f.MergeCell(sheetName, "A4", "B4"); err != nil {
		return fmt.Errorf("failed to merge customer cell: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A4", "客户："+customer); err != nil {
		return fmt.Errorf("failed to write customer: %w", err)
	}
	if err := f.MergeCell(sheetName, "C4", "E4"); err != nil {
		return fmt.Errorf("failed to merge period cell: %w", err)
	}
	if err := f.SetCellValue(sheetName, "C4", periodLabel+"对账单"); err != nil {
		return fmt.Errorf("failed to write period: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "C4", "E4", s.subhead); err != nil {
		return fmt.Errorf("failed to style period: %w", err)
	}

	headers := []interface{}{"送货日期", "品名规格", "单位", "数量", "单价", "金额", "备注"}
	cell := fmt.Sprintf("A%d", headerRow)
	if err := f.SetSheetRow(sheetName, cell, &headers); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	if err := f.SetCellStyle(sheetName, cell, fmt.Sprintf("G%d", headerRow), s.header); err != nil {
		return fmt.Errorf("failed to style table header: %w", err)
	}
	return nil
}

func (r *Renderer) writeItems(f *excelize.File, s *styleSet, items []models.LineItem) error {
	for i, it := range items {
		row := dataStartRow + i
		label := strings.TrimSpace(it.Product + " " + it.Spec)
		values := []interface{}{
			it.Date.String(), label, it.Unit, it.Quantity, it.UnitPrice, it.Amount, "",
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("failed to write item row %d: %w", row, err)
		}
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), s.cell); err != nil {
			return fmt.Errorf("failed to style item row %d: %w", row, err)
		}
		// The product label wraps instead of spilling.
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), s.product); err != nil {
			return fmt.Errorf("failed to style product cell %d: %w", row, err)
		}
	}
	return nil
}

func (r *Renderer) writeTotals(f *excelize.File, s *styleSet, itemCount int, total float64, capital string) error {
	row := dataStartRow + itemCount + 2

	if err := f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row)); err != nil {
		return fmt.Errorf("failed to merge capital total: %w", err)
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "合计人民币大写："+capital); err != nil {
		return fmt.Errorf("failed to write capital total: %w", err)
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), s.closing); err != nil {
		return fmt.Errorf("failed to style capital total: %w", err)
	}

	if err := f.MergeCell(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("G%d", row)); err != nil {
		return fmt.Errorf("failed to merge decimal total: %w", err)
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("人民币小写：%.2f元", total)); err != nil {
		return fmt.Errorf("failed to write decimal total: %w", err)
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("G%d", row), s.right); err != nil {
		return fmt.Errorf("failed to style decimal total: %w", err)
	}
	return nil
}

// configurePage applies the print setup: A4 portrait, one page wide,
// fixed margins, and the header block repeated on every printed page.
func configurePage(f *excelize.File) error {
	size := 9 // A4
	orientation := "portrait"
	fitToWidth := 1
	fitToHeight := 0
	if err := f.SetPageLayout(sheetName, &excelize.PageLayoutOptions{
		Size:        &size,
		Orientation: &orientation,
		FitToWidth:  &fitToWidth,
		FitToHeight: &fitToHeight,
	}); err != nil {
		return fmt.Errorf("failed to set page layout: %w", err)
	}

	left, right := 0.5, 0.5
	top, bottom := 0.75, 0.75
	header, footer := 0.3, 0.3
	if err := f.SetPageMargins(sheetName, &excelize.PageLayoutMarginsOptions{
		Left:   &left,
		Right:  &right,
		Top:    &top,
		Bottom: &bottom,
		Header: &header,
		Footer: &footer,
	}); err != nil {
		return fmt.Errorf("failed to set page margins: %w", err)
	}

	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Titles",
		RefersTo: fmt.Sprintf("'%s'!$1:$%d", sheetName, headerRow),
		Scope:    sheetName,
	}); err != nil {
		return fmt.Errorf("failed to set print titles: %w", err)
	}
	return nil
}
