package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemTotalCoercesInvalidInput(t *testing.T) {
	assert.Equal(t, 900.0, ItemTotal(2, 450))
	assert.Equal(t, 0.0, ItemTotal(-1, 450))
	assert.Equal(t, 0.0, ItemTotal(2, math.NaN()))
	assert.Equal(t, 0.0, ItemTotal(math.Inf(1), 10))
	assert.Equal(t, 0.0, ItemTotal(3, -5))
}

func TestComputeIdentities(t *testing.T) {
	cases := []struct {
		name     string
		lines    []Line
		discount float64
		advance  float64
		want     Totals
	}{
		{
			name:  "empty",
			lines: nil,
			want:  Totals{},
		},
		{
			name:     "typical",
			lines:    []Line{{Quantity: 2, Rate: 450}, {Quantity: 1, Rate: 600}},
			discount: 100,
			advance:  500,
			want:     Totals{Subtotal: 1500, Discount: 100, Total: 1400, Advance: 500, Balance: 900},
		},
		{
			name:     "discount above subtotal",
			lines:    []Line{{Quantity: 1, Rate: 300}},
			discount: 500,
			advance:  0,
			want:     Totals{Subtotal: 300, Discount: 500, Total: -200, Advance: 0, Balance: -200},
		},
		{
			name:     "paid in full",
			lines:    []Line{{Quantity: 1, Rate: 1000}},
			advance:  1000,
			want:     Totals{Subtotal: 1000, Total: 1000, Advance: 1000, Balance: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.lines, tc.discount, tc.advance)
			assert.InDelta(t, tc.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tc.want.Total, got.Total, 1e-9)
			assert.InDelta(t, tc.want.Balance, got.Balance, 1e-9)
			assert.InDelta(t, got.Subtotal-got.Discount, got.Total, 1e-9)
			assert.InDelta(t, got.Total-got.Advance, got.Balance, 1e-9)
		})
	}
}

func TestCatalogLookup(t *testing.T) {
	g, ok := LookupGarment(" Saree_Blouse ")
	require.True(t, ok)
	assert.Equal(t, "Saree Blouse", g.Label)
	assert.Equal(t, []string{"Bust", "Waist", "Length", "Shoulder"}, g.Measurements)

	assert.False(t, ValidItemType("lehenga"))
	assert.Len(t, Catalog(), 7)
	assert.Equal(t, []string{"Chest", "Length", "Shoulder", "Sleeve"}, MeasurementLabels("kurta"))

	labels := MeasurementLabels("shirt")
	labels[0] = "mutated"
	assert.Equal(t, "Chest", MeasurementLabels("shirt")[0])
}

func TestParseMeasurements(t *testing.T) {
	got, err := ParseMeasurements("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParseMeasurements(`{"Chest": 40, "Length": "29.5", "Note": null}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Chest": "40", "Length": "29.5", "Note": ""}, got)

	for _, raw := range []string{`{"Chest": 40`, `[1, 2]`, `null`, `"chest"`} {
		_, err := ParseMeasurements(raw)
		assert.ErrorIs(t, err, ErrInvalidMeasurements, raw)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1400.00", FormatAmount(1400))
	assert.Equal(t, "0.10", FormatAmount(0.1))
	assert.Equal(t, "-200.50", FormatAmount(-200.5))
	assert.Equal(t, "0.00", FormatAmount(math.NaN()))

	assert.Equal(t, "₹20,000", FormatMoneyText(20000))
	assert.Equal(t, "₹1,234.5", FormatMoneyText(1234.5))

	assert.Equal(t, "007", FormatBillNumber(7))
	assert.Equal(t, "1234", FormatBillNumber(1234))
}
