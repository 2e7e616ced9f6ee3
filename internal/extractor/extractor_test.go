package extractor

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// orderRow is one data row of a generated test order.
type orderRow struct {
	product interface{}
	spec    interface{}
	qty     interface{}
	unit    interface{}
	price   interface{}
	amount  interface{}
}

// writeOrder builds a delivery-order workbook matching the default
// layout: customer in C7, date in I7, data from row 11, totals row
// after the data.
func writeOrder(t *testing.T, path string, customer, date interface{}, rows []orderRow) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	if customer != nil {
		require.NoError(t, f.SetCellValue(sheet, "C7", customer))
	}
	if date != nil {
		require.NoError(t, f.SetCellValue(sheet, "I7", date))
	}

	row := 11
	for _, r := range rows {
		set := func(col string, v interface{}) {
			if v != nil {
				require.NoError(t, f.SetCellValue(sheet, col+itoa(row), v))
			}
		}
		set("B", r.product)
		set("D", r.spec)
		set("F", r.qty)
		set("G", r.unit)
		set("H", r.price)
		set("I", r.amount)
		row++
	}
	require.NoError(t, f.SetCellValue(sheet, "B"+itoa(row), "合计金额"))
	require.NoError(t, f.SetCellValue(sheet, "I"+itoa(row), 999999))

	require.NoError(t, f.SaveAs(path))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")
	writeOrder(t, path, "深圳电子厂", "2024-01-05", []orderRow{
		{product: "塑胶粒\nABS", spec: "黑色", qty: 10.0, unit: "包", price: 5.0, amount: 50.0},
		{product: "纸箱", qty: 2.0, amount: 20.0},
	})

	items, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "塑胶粒 ABS", first.Product, "line breaks collapse to spaces")
	assert.Equal(t, "黑色", first.Spec)
	assert.Equal(t, 10.0, first.Quantity)
	assert.Equal(t, "包", first.Unit)
	assert.Equal(t, 5.0, first.UnitPrice)
	assert.Equal(t, 50.0, first.Amount)
	assert.Equal(t, "深圳电子厂", first.Customer)
	require.True(t, first.Date.Valid)
	assert.Equal(t, "2024-01-05", first.Date.String())
	assert.Equal(t, "order.xlsx", first.Source)

	second := items[1]
	assert.Equal(t, "纸箱", second.Product)
	assert.Equal(t, "", second.Spec)
	assert.Equal(t, 0.0, second.UnitPrice, "missing price defaults to zero")
}

func TestExtractTrustsAmountVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")
	// Amount deliberately disagrees with quantity times unit price.
	writeOrder(t, path, "深圳电子厂", "2024-01-05", []orderRow{
		{product: "塑胶粒", qty: 10.0, price: 5.0, amount: 999.0},
	})

	items, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 999.0, items[0].Amount, "amount is taken from source, never recomputed")
}

func TestExtractStopsAtTotalsRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "C7", "客户"))
	require.NoError(t, f.SetCellValue("Sheet1", "B11", "货物甲"))
	require.NoError(t, f.SetCellValue("Sheet1", "F11", 1.0))
	require.NoError(t, f.SetCellValue("Sheet1", "B12", "合计金额"))
	// Rows after the totals marker must be excluded.
	require.NoError(t, f.SetCellValue("Sheet1", "B13", "货物乙"))
	require.NoError(t, f.SetCellValue("Sheet1", "F13", 5.0))
	require.NoError(t, f.SaveAs(path))
	f.Close()

	items, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "货物甲", items[0].Product)
}

func TestExtractMissingCustomerCell(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")
	writeOrder(t, path, nil, nil, []orderRow{
		{product: "纸箱", qty: 2.0},
	})

	items, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "", items[0].Customer)
	assert.False(t, items[0].Date.Valid)
}

func TestExtractSkipsIncompleteRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")
	writeOrder(t, path, "客户", "2024-01-05", []orderRow{
		{product: "无数量"},               // quantity missing
		{qty: 3.0},                     // product missing
		{product: "零数量", qty: 0.0},     // zero quantity
		{product: "有效", qty: 1.0, amount: 5.0},
	})

	items, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "有效", items[0].Product)
}

func TestExtractEmptyOrderYieldsNoItems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")
	writeOrder(t, path, "客户", "2024-01-05", nil)

	items, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExtractSerialDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")
	// A real date cell is stored as a styled serial number; raw reads
	// must still recover the calendar date. 45366 is 2024-03-15.
	writeOrder(t, path, "客户", "45366", []orderRow{
		{product: "纸箱", qty: 1.0},
	})

	items, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].Date.Valid)
	assert.Equal(t, "2024-03-15", items[0].Date.String())
}

func TestExtractAmbiguousShortDateStaysOpaque(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "order.xlsx")
	// Two-digit-year forms could be month-day-year or day-month-year;
	// the raw text is kept instead of guessing.
	writeOrder(t, path, "客户", "12-01-05", []orderRow{
		{product: "纸箱", qty: 1.0},
	})

	items, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].Date.Valid)
	assert.Equal(t, "12-01-05", items[0].Date.String())
}

func TestExtractUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	_, err := NewExtractor(zap.NewNop()).ExtractFile(path)
	assert.Error(t, err)
}
