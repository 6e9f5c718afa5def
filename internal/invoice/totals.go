package invoice

// Totals holds the derived monetary values for an invoice. They are
// recomputed from the line items and tax rate on every read.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Subtotal sums the line item prices. A zero-value item contributes 0, so
// blank items added by the form do not disturb the result.
func Subtotal(items []Item) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Price
	}
	return sum
}

// Tax computes the tax amount for the given items at the given percentage
// rate (0-100).
func Tax(items []Item, taxRate float64) float64 {
	return Subtotal(items) * (taxRate / 100)
}

// Total computes subtotal plus tax.
func Total(items []Item, taxRate float64) float64 {
	return Subtotal(items) + Tax(items, taxRate)
}

// Compute derives all totals in one pass. No rounding is applied here;
// currency formatting happens only at render time.
func Compute(items []Item, taxRate float64) Totals {
	subtotal := Subtotal(items)
	tax := subtotal * (taxRate / 100)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
