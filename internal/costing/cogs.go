package costing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientCost is what the COGS formula needs to know about an ingredient:
// its running weighted average cost and the unit that cost is expressed in.
type IngredientCost struct {
	WAC  decimal.Decimal
	Unit string
}

// BatchItem is one recipe line: quantity per batch in the recipe's unit.
type BatchItem struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	Unit         string
}

// WACLookup resolves an ingredient id to its cost. Missing ingredients
// contribute zero cost (they were deleted out from under the recipe).
type WACLookup func(id uuid.UUID) (IngredientCost, bool)

// BatchCost returns the cost of producing one batch:
// Σ convert(qty, recipe unit → ingredient unit) × WAC.
func BatchCost(items []BatchItem, lookup WACLookup) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		ic, ok := lookup(item.IngredientID)
		if !ok {
			continue
		}
		qty := Convert(item.Quantity, item.Unit, ic.Unit)
		total = total.Add(qty.Mul(ic.WAC))
	}
	return total
}

// RecipeCOGS returns the per-unit cost of production:
// BatchCost / yieldPcs. A yield below 1 is treated as 1 to keep the division
// guarded.
func RecipeCOGS(items []BatchItem, yieldPcs int, lookup WACLookup) decimal.Decimal {
	if yieldPcs < 1 {
		yieldPcs = 1
	}
	return BatchCost(items, lookup).Div(decimal.NewFromInt(int64(yieldPcs)))
}

// MarginPct returns (selling − cost) / selling × 100, and zero when selling
// is zero — the explicit zero-guard every margin calculation in the system
// uses.
func MarginPct(cost, selling decimal.Decimal) decimal.Decimal {
	if selling.IsZero() {
		return decimal.Zero
	}
	return selling.Sub(cost).Div(selling).Mul(decimal.NewFromInt(100))
}
