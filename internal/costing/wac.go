package costing

import "github.com/shopspring/decimal"

// ApplyPurchase blends a purchase of qty units at unitPrice into the current
// stock/WAC pair and returns the new values:
//
//	newStock = S + q
//	newWAC   = (S·W + q·p) / (S + q)   when S + q > 0
//
// When the resulting stock is not positive the WAC is left unchanged rather
// than overwritten with the incoming price, so a correction that momentarily
// empties stock does not rewrite cost history.
func ApplyPurchase(stock, wac, qty, unitPrice decimal.Decimal) (newStock, newWAC decimal.Decimal) {
	newStock = stock.Add(qty)
	if newStock.IsPositive() {
		blended := stock.Mul(wac).Add(qty.Mul(unitPrice))
		newWAC = blended.Div(newStock)
	} else {
		newWAC = wac
	}
	return newStock, newWAC
}

// ReversePurchase undoes a purchase of qty units. The stock decrement is
// exact; the WAC is intentionally left as-is. Removing a quantity has no
// closed-form inverse of a weighted average once other purchases have blended
// in, so reversal keeps the approximate running value instead of pretending
// to reconstruct it. Callers must not "fix" this without changing the
// product's precision requirements.
func ReversePurchase(stock, wac, qty, _ decimal.Decimal) (newStock, newWAC decimal.Decimal) {
	return stock.Sub(qty), wac
}
