// Package costing holds the pure cost math shared by the inventory sync
// service, the recipe cost (HPP) trigger and the profit report. Both the
// trigger and the report call the same functions here, so the COGS formula
// cannot drift between them.
package costing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// unitDef normalizes a unit to a base unit and a multiplication factor.
type unitDef struct {
	base   string
	factor decimal.Decimal
}

// Fixed conversion table. Units outside this table (pcs, butir, sachet, …)
// have no dimension and pass through unconverted — a known precision gap.
var unitTable = map[string]unitDef{
	"kg":    {"gram", decimal.NewFromInt(1000)},
	"g":     {"gram", decimal.NewFromInt(1)},
	"gram":  {"gram", decimal.NewFromInt(1)},
	"mg":    {"gram", decimal.NewFromFloat(0.001)},
	"liter": {"ml", decimal.NewFromInt(1000)},
	"l":     {"ml", decimal.NewFromInt(1000)},
	"ml":    {"ml", decimal.NewFromInt(1)},
}

// Convert converts qty from one unit to another via the fixed table.
// Convert(x, u, u) = x for any u. Unknown or dimension-mismatched unit pairs
// return the input unchanged (identity fallback).
func Convert(qty decimal.Decimal, from, to string) decimal.Decimal {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if from == to {
		return qty
	}
	f, okFrom := unitTable[from]
	t, okTo := unitTable[to]
	if !okFrom || !okTo || f.base != t.base {
		return qty
	}
	return qty.Mul(f.factor).Div(t.factor)
}
