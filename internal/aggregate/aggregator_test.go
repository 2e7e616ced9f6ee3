package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/models"
)

func date(t *testing.T, value string) models.DeliveryDate {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return models.DeliveryDate{Time: parsed, Raw: value, Valid: true}
}

func fixtureCorpus(t *testing.T) []models.LineItem {
	t.Helper()
	return []models.LineItem{
		{Product: "苹果", Spec: "大", Quantity: 10, Unit: "箱", UnitPrice: 5, Amount: 50,
			Customer: "甲公司", Date: date(t, "2024-01-05"), Source: "a.xlsx"},
		{Product: "苹果", Spec: "大", Quantity: 5, Unit: "箱", UnitPrice: 6, Amount: 30,
			Customer: "乙公司", Date: date(t, "2024-02-10"), Source: "b.xlsx"},
		{Product: "梨", Quantity: 2, Unit: "箱", UnitPrice: 20, Amount: 40,
			Customer: "甲公司", Date: date(t, "2024-01-20"), Source: "a.xlsx"},
	}
}

func TestSummaryByItem(t *testing.T) {
	items := fixtureCorpus(t)
	views := NewAggregator(zap.NewNop()).Aggregate(items)

	require.Len(t, views.SummaryByItem, 2)

	// Sorted by amount descending.
	apple := views.SummaryByItem[0]
	assert.Equal(t, "苹果", apple.Product)
	assert.Equal(t, 15.0, apple.Quantity)
	assert.Equal(t, 80.0, apple.Amount)
	require.True(t, apple.AvgUnitPrice.Defined)
	assert.Equal(t, 5.33, apple.AvgUnitPrice.Value)
	assert.Equal(t, "乙公司, 甲公司", apple.Customers)
	assert.Equal(t, "a.xlsx, b.xlsx", apple.Sources)

	pear := views.SummaryByItem[1]
	assert.Equal(t, "梨", pear.Product)
	assert.Equal(t, 40.0, pear.Amount)
}

func TestByCustomer(t *testing.T) {
	views := NewAggregator(zap.NewNop()).Aggregate(fixtureCorpus(t))

	require.Len(t, views.ByCustomer, 2)
	first := views.ByCustomer[0]
	assert.Equal(t, "甲公司", first.Customer)
	assert.Equal(t, 2, first.Orders)
	assert.Equal(t, 90.0, first.Amount)
	assert.Equal(t, 12.0, first.Quantity)
	require.True(t, first.AvgUnitPrice.Defined)
	assert.Equal(t, 7.5, first.AvgUnitPrice.Value)
}

func TestByMonth(t *testing.T) {
	views := NewAggregator(zap.NewNop()).Aggregate(fixtureCorpus(t))

	require.Len(t, views.ByMonth, 2)
	jan := views.ByMonth[0]
	assert.Equal(t, "2024-01", jan.YearMonth)
	assert.Equal(t, 2, jan.Orders)
	assert.Equal(t, 1, jan.Customers)
	assert.Equal(t, 90.0, jan.Amount)
	require.True(t, jan.AvgOrderAmount.Defined)
	assert.Equal(t, 45.0, jan.AvgOrderAmount.Value)

	assert.Equal(t, "2024-02", views.ByMonth[1].YearMonth)
}

func TestByCustomerMonth(t *testing.T) {
	views := NewAggregator(zap.NewNop()).Aggregate(fixtureCorpus(t))

	require.Len(t, views.ByCustomerMonth, 2)
	// Sorted ascending by (customer, year-month).
	assert.Equal(t, "乙公司", views.ByCustomerMonth[0].Customer)
	assert.Equal(t, "2024-02", views.ByCustomerMonth[0].YearMonth)
	assert.Equal(t, "甲公司", views.ByCustomerMonth[1].Customer)
	assert.Equal(t, "2024-01", views.ByCustomerMonth[1].YearMonth)
	assert.Equal(t, 2, views.ByCustomerMonth[1].Orders)
}

func TestUnparseableDateGroupsUnderUnknown(t *testing.T) {
	items := []models.LineItem{
		{Product: "纸箱", Quantity: 1, Amount: 10, Customer: "甲公司",
			Date: models.DeliveryDate{Raw: "某天"}, Source: "a.xlsx"},
	}
	views := NewAggregator(zap.NewNop()).Aggregate(items)

	require.Len(t, views.ByMonth, 1)
	assert.Equal(t, models.UnknownYearMonth, views.ByMonth[0].YearMonth)
	assert.Equal(t, models.UnknownYearMonth, items[0].YearMonth)
}

func TestZeroQuantityAverageIsUndefined(t *testing.T) {
	items := []models.LineItem{
		{Product: "赠品", Quantity: 0, Amount: 10, Customer: "甲公司",
			Date: date(t, "2024-01-05"), Source: "a.xlsx"},
	}
	views := NewAggregator(zap.NewNop()).Aggregate(items)

	require.Len(t, views.SummaryByItem, 1)
	assert.False(t, views.SummaryByItem[0].AvgUnitPrice.Defined)
	assert.Equal(t, "", views.SummaryByItem[0].AvgUnitPrice.Cell())
}

// The totals of every view must reconcile with the flat corpus.
func TestGroupingCompleteness(t *testing.T) {
	items := fixtureCorpus(t)
	views := NewAggregator(zap.NewNop()).Aggregate(items)

	var corpusTotal float64
	for _, it := range items {
		corpusTotal += it.Amount
	}
	var byItemTotal, byCustomerTotal, byMonthTotal float64
	for _, r := range views.SummaryByItem {
		byItemTotal += r.Amount
	}
	for _, r := range views.ByCustomer {
		byCustomerTotal += r.Amount
	}
	for _, r := range views.ByMonth {
		byMonthTotal += r.Amount
	}

	assert.InDelta(t, corpusTotal, byItemTotal, 0.001)
	assert.InDelta(t, corpusTotal, byCustomerTotal, 0.001)
	assert.InDelta(t, corpusTotal, byMonthTotal, 0.001)
}

func TestJoinDistinct(t *testing.T) {
	got := joinDistinct([]string{"乙", "甲", "", "甲", "乙"})
	assert.Equal(t, "乙, 甲", got)
	assert.Equal(t, "", joinDistinct(nil))
}
