package models

import "math"

// Average is a guarded division result. Defined is false when the
// divisor was zero, in which case Value carries no meaning.
type Average struct {
	Value   float64
	Defined bool
}

// Avg divides total by count, rounded to two decimal places. A zero
// count yields an undefined average instead of Inf or NaN.
func Avg(total, count float64) Average {
	if count == 0 {
		return Average{}
	}
	return Average{Value: math.Round(total/count*100) / 100, Defined: true}
}

// Cell returns the value to place in a spreadsheet cell: the rounded
// number, or an empty cell for undefined averages.
func (a Average) Cell() interface{} {
	if !a.Defined {
		return ""
	}
	return a.Value
}

// ItemSummary groups the corpus by (product, spec, unit) and carries
// the joined customer and source-file sets.
type ItemSummary struct {
	Product      string
	Spec         string
	Unit         string
	Quantity     float64
	AvgUnitPrice Average
	Amount       float64
	Customers    string
	Sources      string
}

// CustomerSummary groups the corpus by customer.
type CustomerSummary struct {
	Customer     string
	Orders       int
	Quantity     float64
	Amount       float64
	AvgUnitPrice Average
}

// ProductSummary has the shape of ItemSummary without the source-file
// column.
type ProductSummary struct {
	Product      string
	Spec         string
	Unit         string
	Quantity     float64
	AvgUnitPrice Average
	Amount       float64
	Customers    string
}

// MonthSummary groups the corpus by year-month.
type MonthSummary struct {
	YearMonth      string
	Orders         int
	Customers      int
	Quantity       float64
	Amount         float64
	AvgOrderAmount Average
}

// CustomerMonthSummary groups the corpus by (customer, year-month).
type CustomerMonthSummary struct {
	Customer  string
	YearMonth string
	Orders    int
	Quantity  float64
	Amount    float64
}
