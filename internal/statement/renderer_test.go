package statement

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/models"
)

var testCompany = CompanyInfo{
	Name:    "百惠行对账单",
	Address: "东莞市黄江镇华南塑胶城区132号",
	Phone:   "(0769) 83631717",
	Fax:     "83637787",
}

func item(t *testing.T, day string, product string, amount float64) models.LineItem {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	return models.LineItem{
		Product:  product,
		Spec:     "黑色",
		Quantity: 2,
		Unit:     "包",
		Amount:   amount,
		Customer: "深圳电子厂",
		Date:     models.DeliveryDate{Time: parsed, Raw: day, Valid: true},
	}
}

func TestRenderStatement(t *testing.T) {
	out := filepath.Join(t.TempDir(), "statement.xlsx")
	items := []models.LineItem{
		// Deliberately out of order; rendering sorts by date.
		item(t, "2024-01-20", "纸箱", 30.00),
		item(t, "2024-01-05", "塑胶粒", 40.50),
	}

	r := NewRenderer(testCompany, zap.NewNop())
	require.NoError(t, r.Render(items, "深圳电子厂", "2024年1月", out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("对账单", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "百惠行对账单", get("A1"))
	assert.Equal(t, "地址：东莞市黄江镇华南塑胶城区132号", get("A2"))
	assert.Equal(t, "电话：(0769) 83631717    传真：83637787", get("A3"))
	assert.Equal(t, "客户：深圳电子厂", get("A4"))
	assert.Equal(t, "2024年1月对账单", get("C4"))
	assert.Equal(t, "送货日期", get("A5"))
	assert.Equal(t, "备注", get("G5"))

	// Rows sorted ascending by date; product and spec joined.
	assert.Equal(t, "2024-01-05", get("A6"))
	assert.Equal(t, "塑胶粒 黑色", get("B6"))
	assert.Equal(t, "包", get("C6"))
	assert.Equal(t, "2024-01-20", get("A7"))
	assert.Equal(t, "纸箱 黑色", get("B7"))

	// Totals two blank rows below the table, in both renderings.
	assert.Equal(t, "合计人民币大写：柒拾元伍角", get("A10"))
	assert.Equal(t, "人民币小写：70.50元", get("D10"))
}

func TestRenderRejectsOversizedTotal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "statement.xlsx")
	huge := item(t, "2024-01-05", "塑胶粒", 2_000_000_000)

	err := NewRenderer(testCompany, zap.NewNop()).Render(
		[]models.LineItem{huge}, "深圳电子厂", "2024年1月", out)
	assert.Error(t, err)
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		yearMonth string
		want      string
	}{
		{"2024-01", "2024年1月"},
		{"2024-12", "2024年12月"},
		{models.UnknownYearMonth, "未知月份"},
		{"garbage", "未知月份"},
	}
	for _, tt := range tests {
		if got := PeriodLabel(tt.yearMonth); got != tt.want {
			t.Errorf("PeriodLabel(%q) = %q, want %q", tt.yearMonth, got, tt.want)
		}
	}
}
