package service

import (
	"interioai/internal/catalog"
	"interioai/internal/model"
	"interioai/internal/utils"
)

// CostEstimator prices furniture lists against a pricing table.
// It holds no mutable state and is safe for concurrent use.
type CostEstimator struct {
	prices   *catalog.PricingTable
	currency string
}

// NewCostEstimator creates an estimator over prices, labelling breakdowns with currency
func NewCostEstimator(prices *catalog.PricingTable, currency string) *CostEstimator {
	return &CostEstimator{
		prices:   prices,
		currency: currency,
	}
}

// Prices returns the pricing table the estimator reads from
func (e *CostEstimator) Prices() *catalog.PricingTable {
	return e.prices
}

// Currency returns the currency of the underlying table
func (e *CostEstimator) Currency() string {
	return e.currency
}

// Estimate prices every item at tier. Duplicates are priced as separate lines,
// an invalid tier is treated as mid-range and an empty list gives an all-zero breakdown.
func (e *CostEstimator) Estimate(items []string, tier model.BudgetTier) *model.CostBreakdown {
	if !tier.Valid() {
		tier = model.BudgetTierMidRange
	}

	breakdown := &model.CostBreakdown{
		Items:       make([]model.LineItem, 0, len(items)),
		Currency:    e.currency,
		BudgetLevel: tier,
	}

	var subtotal int64
	for _, item := range items {
		cost := e.prices.Lookup(item, tier)
		breakdown.Items = append(breakdown.Items, model.LineItem{
			Name:     utils.TitleCase(item),
			Cost:     float64(cost),
			Quantity: 1,
		})
		subtotal += cost
	}

	breakdown.Subtotal = float64(subtotal)
	breakdown.Installation = breakdown.Subtotal * model.InstallationRate
	breakdown.Total = breakdown.Subtotal + breakdown.Installation
	return breakdown
}

// Compare runs Estimate once per tier
func (e *CostEstimator) Compare(items []string) model.BudgetComparison {
	out := make(model.BudgetComparison, len(model.BudgetTiers))
	for _, tier := range model.BudgetTiers {
		out[tier] = e.Estimate(items, tier)
	}
	return out
}

// ConvertCurrency multiplies every amount in b by rate and relabels it with currency.
// b is left untouched; a nil breakdown converts to nil.
func ConvertCurrency(b *model.CostBreakdown, rate float64, currency string) *model.CostBreakdown {
	if b == nil {
		return nil
	}

	out := &model.CostBreakdown{
		Items:        make([]model.LineItem, len(b.Items)),
		Subtotal:     b.Subtotal * rate,
		Installation: b.Installation * rate,
		Total:        b.Total * rate,
		Currency:     currency,
		BudgetLevel:  b.BudgetLevel,
	}
	for i, item := range b.Items {
		item.Cost *= rate
		out.Items[i] = item
	}
	return out
}

// CurrencyConversion re-expresses breakdowns in a display currency
type CurrencyConversion struct {
	Rate     float64
	Currency string
}

// Identity reports whether applying c would change nothing
func (c CurrencyConversion) Identity(from string) bool {
	return (c.Rate == 0 || c.Rate == 1) && (c.Currency == "" || c.Currency == from)
}

// Apply converts b, returning b itself when the conversion is an identity
func (c CurrencyConversion) Apply(b *model.CostBreakdown) *model.CostBreakdown {
	if b == nil || c.Identity(b.Currency) {
		return b
	}
	rate, currency := c.Rate, c.Currency
	if rate == 0 {
		rate = 1
	}
	if currency == "" {
		currency = b.Currency
	}
	return ConvertCurrency(b, rate, currency)
}
