package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		expected float64
	}{
		{
			name:     "empty list sums to zero",
			items:    nil,
			expected: 0,
		},
		{
			name:     "blank item contributes zero",
			items:    []Item{{}},
			expected: 0,
		},
		{
			name: "sums prices in order",
			items: []Item{
				{Description: "Design", Price: 100},
				{Description: "Hosting", Price: 20},
			},
			expected: 120,
		},
		{
			name: "blank items mixed with priced items",
			items: []Item{
				{Description: "Design", Price: 100},
				{},
				{Description: "Hosting", Price: 20},
			},
			expected: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Subtotal(tt.items))
		})
	}
}

func TestTax(t *testing.T) {
	items := []Item{
		{Description: "Design", Price: 100},
		{Description: "Hosting", Price: 20},
	}

	assert.Equal(t, 0.0, Tax(items, 0), "zero rate yields zero tax")
	assert.InDelta(t, 12.0, Tax(items, 10), 1e-9)
	assert.Equal(t, 0.0, Tax(nil, 25), "empty list yields zero tax at any rate")
}

func TestTotal(t *testing.T) {
	items := []Item{
		{Description: "Design", Price: 100},
		{Description: "Hosting", Price: 20},
	}

	assert.Equal(t, Subtotal(items), Total(items, 0), "zero rate total equals subtotal")
	assert.InDelta(t, 132.0, Total(items, 10), 1e-9)
}

func TestCompute(t *testing.T) {
	totals := Compute([]Item{
		{Description: "Design", Price: 100},
		{Description: "Hosting", Price: 20},
	}, 10)

	assert.InDelta(t, 120.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 12.0, totals.Tax, 1e-9)
	assert.InDelta(t, 132.0, totals.Total, 1e-9)
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter("LKR", "en-US")

	assert.Equal(t, "LKR 132.00", f.Format(132))
	assert.Equal(t, "LKR 0.00", f.Format(0))
	assert.Equal(t, "LKR", f.Code())
}

func TestFormatter_FallsBackToEnglish(t *testing.T) {
	f := NewFormatter("USD", "not-a-locale")
	assert.Equal(t, "USD 10.50", f.Format(10.5))
}
