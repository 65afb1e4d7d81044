package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		qty, want string
		from, to  string
	}{
		{"2", "2000", "kg", "gram"},
		{"500", "0.5", "gram", "kg"},
		{"1.5", "1500", "liter", "ml"},
		{"250", "0.25", "ml", "l"},
		{"3", "3", "gram", "gram"},  // identity
		{"4", "4", "pcs", "pcs"},    // identity for dimensionless units
		{"4", "4", "pcs", "gram"},   // unknown unit → pass-through
		{"10", "10", "gram", "ml"},  // dimension mismatch → pass-through
		{"7", "7000", "KG", "Gram"}, // case insensitive
	}
	for _, tc := range cases {
		got := Convert(decimal.RequireFromString(tc.qty), tc.from, tc.to)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"Convert(%s, %s→%s) = %s, want %s", tc.qty, tc.from, tc.to, got, tc.want)
	}
}
