package service

import (
	"testing"

	"interioai/internal/catalog"
	"interioai/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEstimator() *CostEstimator {
	return NewCostEstimator(catalog.DefaultPricingTable(), catalog.Currency)
}

func TestCostEstimator_Estimate_Bedroom(t *testing.T) {
	e := newTestEstimator()

	b := e.Estimate([]string{"bed", "nightstand", "wardrobe", "dresser", "bedside lamp"}, model.BudgetTierMidRange)

	require.Len(t, b.Items, 5)
	assert.Equal(t, model.LineItem{Name: "Bed", Cost: 30000, Quantity: 1}, b.Items[0])
	assert.Equal(t, "Bedside Lamp", b.Items[4].Name)
	assert.Equal(t, 93000.0, b.Subtotal)
	assert.InDelta(t, 9300.0, b.Installation, 1e-9)
	assert.InDelta(t, 102300.0, b.Total, 1e-9)
	assert.Equal(t, "INR", b.Currency)
	assert.Equal(t, model.BudgetTierMidRange, b.BudgetLevel)
}

func TestCostEstimator_Estimate_TotalInvariant(t *testing.T) {
	e := newTestEstimator()
	lists := [][]string{
		{"sofa"},
		{"sofa", "rug", "mystery object"},
		{"wooden puja mandir", "deity idols", "diya stand", "prayer mat"},
		{"Dining Chairs", "dining chairs", "CHAIR"},
	}

	for _, items := range lists {
		for _, tier := range model.BudgetTiers {
			b := e.Estimate(items, tier)
			assert.InDelta(t, b.Subtotal*1.10, b.Total, 1e-6, "items %v tier %s", items, tier)
			assert.Equal(t, b.Subtotal*model.InstallationRate, b.Installation)
			assert.Equal(t, b.Subtotal+b.Installation, b.Total)

			var sum float64
			for _, li := range b.Items {
				sum += li.Cost
			}
			assert.Equal(t, sum, b.Subtotal)
		}
	}
}

func TestCostEstimator_Estimate_Empty(t *testing.T) {
	e := newTestEstimator()

	for _, tier := range model.BudgetTiers {
		b := e.Estimate(nil, tier)
		assert.NotNil(t, b.Items)
		assert.Empty(t, b.Items)
		assert.Zero(t, b.Subtotal)
		assert.Zero(t, b.Installation)
		assert.Zero(t, b.Total)
	}
}

func TestCostEstimator_Estimate_UnknownItem(t *testing.T) {
	e := newTestEstimator()

	b := e.Estimate([]string{"grand piano"}, model.BudgetTierMidRange)
	require.Len(t, b.Items, 1)
	assert.Equal(t, 12000.0, b.Items[0].Cost)
	assert.Equal(t, "Grand Piano", b.Items[0].Name)
}

func TestCostEstimator_Estimate_BlankItemsPriceAsFirstKey(t *testing.T) {
	e := newTestEstimator()

	// a blank label is a substring of every key, so the first key, sofa, prices it
	b := e.Estimate([]string{"", "   "}, model.BudgetTierMidRange)
	require.Len(t, b.Items, 2)
	assert.Equal(t, 35000.0, b.Items[0].Cost)
	assert.Equal(t, 35000.0, b.Items[1].Cost)
	assert.Equal(t, 70000.0, b.Subtotal)
}

func TestCostEstimator_Estimate_InvalidTierActsAsMidRange(t *testing.T) {
	e := newTestEstimator()
	items := []string{"sofa", "coffee table", "unicorn lamp"}

	assert.Equal(t, e.Estimate(items, model.BudgetTierMidRange), e.Estimate(items, "invalid-tier"))
	assert.Equal(t, e.Estimate(items, model.BudgetTierMidRange), e.Estimate(items, ""))
}

func TestCostEstimator_Estimate_DuplicatesAreSeparateLines(t *testing.T) {
	e := newTestEstimator()

	b := e.Estimate([]string{"chair", "chair"}, model.BudgetTierBudget)
	require.Len(t, b.Items, 2)
	for _, li := range b.Items {
		assert.Equal(t, 1, li.Quantity)
		assert.Equal(t, 3000.0, li.Cost)
	}
	assert.Equal(t, 6000.0, b.Subtotal)
}

func TestCostEstimator_Estimate_Idempotent(t *testing.T) {
	e := newTestEstimator()
	items := []string{"sofa", "rug", "lamp"}

	assert.Equal(t, e.Estimate(items, model.BudgetTierPremium), e.Estimate(items, model.BudgetTierPremium))
}

func TestCostEstimator_Compare(t *testing.T) {
	e := newTestEstimator()
	items := []string{"desk", "office chair"}

	cmp := e.Compare(items)
	require.Len(t, cmp, 3)
	assert.Equal(t, 14000.0, cmp[model.BudgetTierBudget].Subtotal)
	assert.Equal(t, 33000.0, cmp[model.BudgetTierMidRange].Subtotal)
	assert.Equal(t, 85000.0, cmp[model.BudgetTierPremium].Subtotal)
	for tier, b := range cmp {
		assert.Equal(t, tier, b.BudgetLevel)
	}
}

func TestConvertCurrency(t *testing.T) {
	e := NewCostEstimator(catalog.DefaultPricingTable(), "USD")
	orig := e.Estimate([]string{"sofa", "flux capacitor"}, model.BudgetTierMidRange)

	converted := ConvertCurrency(orig, 83.0, "INR")

	require.Len(t, converted.Items, 2)
	assert.InDelta(t, 35000*83.0, converted.Items[0].Cost, 1e-6)
	assert.InDelta(t, 12000*83.0, converted.Items[1].Cost, 1e-6)
	assert.InDelta(t, converted.Subtotal*0.10, converted.Installation, 1e-6)
	assert.InDelta(t, converted.Subtotal+converted.Installation, converted.Total, 1e-6)
	assert.Equal(t, "INR", converted.Currency)
	assert.Equal(t, model.BudgetTierMidRange, converted.BudgetLevel)

	// the source breakdown is untouched
	assert.Equal(t, 35000.0, orig.Items[0].Cost)
	assert.Equal(t, "USD", orig.Currency)

	assert.Nil(t, ConvertCurrency(nil, 83.0, "INR"))
}

func TestCurrencyConversion_Apply(t *testing.T) {
	e := newTestEstimator()
	b := e.Estimate([]string{"sofa"}, model.BudgetTierBudget)

	assert.Same(t, b, CurrencyConversion{Rate: 1, Currency: "INR"}.Apply(b))
	assert.Same(t, b, CurrencyConversion{}.Apply(b))
	assert.Nil(t, CurrencyConversion{Rate: 2}.Apply(nil))

	usd := CurrencyConversion{Rate: 0.012, Currency: "USD"}.Apply(b)
	assert.Equal(t, "USD", usd.Currency)
	assert.InDelta(t, 180.0, usd.Subtotal, 1e-9)
	assert.InDelta(t, usd.Subtotal*1.1, usd.Total, 1e-9)

	scaled := CurrencyConversion{Rate: 83}.Apply(b)
	assert.Equal(t, "INR", scaled.Currency)
	assert.InDelta(t, 15000*83.0, scaled.Subtotal, 1e-6)
}
