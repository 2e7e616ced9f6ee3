package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/extractor"
)

// writeOrder creates a minimal valid delivery order with one data row.
func writeOrder(t *testing.T, path, customer, product string, qty float64) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "C7", customer))
	require.NoError(t, f.SetCellValue("Sheet1", "I7", "2024-01-05"))
	require.NoError(t, f.SetCellValue("Sheet1", "B11", product))
	require.NoError(t, f.SetCellValue("Sheet1", "F11", qty))
	require.NoError(t, f.SetCellValue("Sheet1", "B12", "合计金额"))
	require.NoError(t, f.SaveAs(path))
}

func TestBuildWalksTreeAndIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2024年1月"), 0755))

	writeOrder(t, filepath.Join(root, "order1.xlsx"), "甲公司", "纸箱", 2)
	writeOrder(t, filepath.Join(root, "2024年1月", "ORDER2.XLSX"), "乙公司", "塑胶粒", 5)

	// A corrupt workbook must contribute zero records, not abort.
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.xlsx"), []byte("garbage"), 0644))
	// Office lock files and unrelated files are ignored entirely.
	require.NoError(t, os.WriteFile(filepath.Join(root, "~$order1.xlsx"), []byte{}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))

	builder := NewBuilder(extractor.NewExtractor(zap.NewNop()), zap.NewNop())
	result, err := builder.Build(root)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Files, "discovery counts every spreadsheet, broken ones included")
	require.Len(t, result.Items, 2)

	customers := map[string]bool{}
	for _, it := range result.Items {
		customers[it.Customer] = true
	}
	assert.True(t, customers["甲公司"])
	assert.True(t, customers["乙公司"])
}

func TestBuildMissingRootFails(t *testing.T) {
	builder := NewBuilder(extractor.NewExtractor(zap.NewNop()), zap.NewNop())
	_, err := builder.Build(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestBuildEmptyTree(t *testing.T) {
	builder := NewBuilder(extractor.NewExtractor(zap.NewNop()), zap.NewNop())
	result, err := builder.Build(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, result.Files)
	assert.Empty(t, result.Items)
}
