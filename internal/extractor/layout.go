package extractor

// Layout describes the fixed positional structure of a delivery-order
// sheet. All indexes are zero-based. The layout is the single place to
// edit if the source form ever changes.
type Layout struct {
	// HeaderRow carries the customer name and the delivery date.
	HeaderRow   int
	CustomerCol int
	DateCol     int

	// Data rows start here and run until the totals row.
	DataStartRow int

	ProductCol   int
	SpecCol      int
	QuantityCol  int
	UnitCol      int
	UnitPriceCol int
	AmountCol    int

	// TotalsMarker in the product column ends the data region. The
	// marker row itself is excluded.
	TotalsMarker string
}

// DefaultLayout matches the 送货单 form in use since 2023.
func DefaultLayout() Layout {
	return Layout{
		HeaderRow:    6,
		CustomerCol:  2,
		DateCol:      8,
		DataStartRow: 10,
		ProductCol:   1,
		SpecCol:      3,
		QuantityCol:  5,
		UnitCol:      6,
		UnitPriceCol: 7,
		AmountCol:    8,
		TotalsMarker: "合计",
	}
}
