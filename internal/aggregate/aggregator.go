package aggregate

import (
	"sort"

	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/models"
)

// Views holds the five aggregate tables derived from one corpus.
type Views struct {
	SummaryByItem   []models.ItemSummary
	ByCustomer      []models.CustomerSummary
	ByProduct       []models.ProductSummary
	ByMonth         []models.MonthSummary
	ByCustomerMonth []models.CustomerMonthSummary
}

// Aggregator derives summary and pivot views from a flat corpus.
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate derives the year-month field on every item in place, then
// computes all five views. The corpus is not otherwise mutated.
func (a *Aggregator) Aggregate(items []models.LineItem) *Views {
	for i := range items {
		items[i].YearMonth = items[i].Date.YearMonth()
	}

	views := &Views{
		SummaryByItem:   a.summaryByItem(items),
		ByCustomer:      a.byCustomer(items),
		ByProduct:       a.byProduct(items),
		ByMonth:         a.byMonth(items),
		ByCustomerMonth: a.byCustomerMonth(items),
	}

	a.logger.Info("Aggregation complete",
		zap.Int("records", len(items)),
		zap.Int("products", len(views.SummaryByItem)),
		zap.Int("customers", len(views.ByCustomer)),
		zap.Int("months", len(views.ByMonth)))
	return views
}

type itemKey struct {
	Product string
	Spec    string
	Unit    string
}

func (a *Aggregator) summaryByItem(items []models.LineItem) []models.ItemSummary {
	groups := groupBy(items, func(it models.LineItem) itemKey {
		return itemKey{it.Product, it.Spec, it.Unit}
	})

	rows := make([]models.ItemSummary, 0, len(groups))
	for key, group := range groups {
		quantity, amount := sumQuantityAmount(group)
		customers := make([]string, 0, len(group))
		sources := make([]string, 0, len(group))
		for _, it := range group {
			customers = append(customers, it.Customer)
			sources = append(sources, it.Source)
		}
		rows = append(rows, models.ItemSummary{
			Product:      key.Product,
			Spec:         key.Spec,
			Unit:         key.Unit,
			Quantity:     quantity,
			AvgUnitPrice: models.Avg(amount, quantity),
			Amount:       amount,
			Customers:    joinDistinct(customers),
			Sources:      joinDistinct(sources),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
	return rows
}

func (a *Aggregator) byCustomer(items []models.LineItem) []models.CustomerSummary {
	groups := groupBy(items, func(it models.LineItem) string { return it.Customer })

	rows := make([]models.CustomerSummary, 0, len(groups))
	for customer, group := range groups {
		quantity, amount := sumQuantityAmount(group)
		rows = append(rows, models.CustomerSummary{
			Customer:     customer,
			Orders:       len(group),
			Quantity:     quantity,
			Amount:       amount,
			AvgUnitPrice: models.Avg(amount, quantity),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
	return rows
}

func (a *Aggregator) byProduct(items []models.LineItem) []models.ProductSummary {
	groups := groupBy(items, func(it models.LineItem) itemKey {
		return itemKey{it.Product, it.Spec, it.Unit}
	})

	rows := make([]models.ProductSummary, 0, len(groups))
	for key, group := range groups {
		quantity, amount := sumQuantityAmount(group)
		customers := make([]string, 0, len(group))
		for _, it := range group {
			customers = append(customers, it.Customer)
		}
		rows = append(rows, models.ProductSummary{
			Product:      key.Product,
			Spec:         key.Spec,
			Unit:         key.Unit,
			Quantity:     quantity,
			AvgUnitPrice: models.Avg(amount, quantity),
			Amount:       amount,
			Customers:    joinDistinct(customers),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
	return rows
}

func (a *Aggregator) byMonth(items []models.LineItem) []models.MonthSummary {
	groups := groupBy(items, func(it models.LineItem) string { return it.YearMonth })

	rows := make([]models.MonthSummary, 0, len(groups))
	for month, group := range groups {
		quantity, amount := sumQuantityAmount(group)
		customers := make([]string, 0, len(group))
		for _, it := range group {
			customers = append(customers, it.Customer)
		}
		rows = append(rows, models.MonthSummary{
			YearMonth:      month,
			Orders:         len(group),
			Customers:      countDistinct(customers),
			Quantity:       quantity,
			Amount:         amount,
			AvgOrderAmount: models.Avg(amount, float64(len(group))),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].YearMonth < rows[j].YearMonth })
	return rows
}

type customerMonthKey struct {
	Customer  string
	YearMonth string
}

func (a *Aggregator) byCustomerMonth(items []models.LineItem) []models.CustomerMonthSummary {
	groups := groupBy(items, func(it models.LineItem) customerMonthKey {
		return customerMonthKey{it.Customer, it.YearMonth}
	})

	rows := make([]models.CustomerMonthSummary, 0, len(groups))
	for key, group := range groups {
		quantity, amount := sumQuantityAmount(group)
		rows = append(rows, models.CustomerMonthSummary{
			Customer:  key.Customer,
			YearMonth: key.YearMonth,
			Orders:    len(group),
			Quantity:  quantity,
			Amount:    amount,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Customer != rows[j].Customer {
			return rows[i].Customer < rows[j].Customer
		}
		return rows[i].YearMonth < rows[j].YearMonth
	})
	return rows
}
