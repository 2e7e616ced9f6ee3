package models

import "time"

// UnknownYearMonth is the grouping bucket for records whose delivery
// date could not be parsed. Such records stay in the corpus and in the
// month views instead of being dropped.
const UnknownYearMonth = "unknown"

// DeliveryDate is a tolerant date value. When the source cell could not
// be parsed the raw text is preserved and Valid is false.
type DeliveryDate struct {
	Time  time.Time
	Raw   string
	Valid bool
}

// String renders the date as a plain calendar date, falling back to the
// raw cell text for unparseable values.
func (d DeliveryDate) String() string {
	if d.Valid {
		return d.Time.Format("2006-01-02")
	}
	return d.Raw
}

// YearMonth truncates the date to calendar year and month.
func (d DeliveryDate) YearMonth() string {
	if d.Valid {
		return d.Time.Format("2006-01")
	}
	return UnknownYearMonth
}

// Before reports whether d sorts before other. Unparseable dates sort
// after parseable ones, ordered by their raw text.
func (d DeliveryDate) Before(other DeliveryDate) bool {
	if d.Valid && other.Valid {
		return d.Time.Before(other.Time)
	}
	if d.Valid != other.Valid {
		return d.Valid
	}
	return d.Raw < other.Raw
}

// LineItem is one normalized row extracted from a delivery-order sheet.
// A LineItem exists only if the source row carried both a product name
// and a quantity; every other field degrades to its zero default.
type LineItem struct {
	Product   string
	Spec      string
	Quantity  float64
	Unit      string
	UnitPrice float64
	Amount    float64
	Customer  string
	Date      DeliveryDate
	Source    string

	// YearMonth is derived from Date by the aggregation step.
	YearMonth string
}
