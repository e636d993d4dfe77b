package model

import "strings"

// BudgetTier selects a price point in the pricing catalog
type BudgetTier string

const (
	BudgetTierBudget   BudgetTier = "budget"
	BudgetTierMidRange BudgetTier = "mid-range"
	BudgetTierPremium  BudgetTier = "premium"
)

// BudgetTiers lists the tiers in ascending price order
var BudgetTiers = []BudgetTier{BudgetTierBudget, BudgetTierMidRange, BudgetTierPremium}

// Valid reports whether t is one of the three known tiers
func (t BudgetTier) Valid() bool {
	switch t {
	case BudgetTierBudget, BudgetTierMidRange, BudgetTierPremium:
		return true
	}
	return false
}

// ParseBudgetTier matches s case-insensitively against the known tiers.
// Anything unrecognised, including the empty string, becomes mid-range.
func ParseBudgetTier(s string) BudgetTier {
	t := BudgetTier(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t
	}
	return BudgetTierMidRange
}

// LineItem is one priced furniture entry in a cost breakdown
type LineItem struct {
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`
}

// CostBreakdown is the priced result of a list of furniture items.
// Total is always Subtotal + Installation and Installation is Subtotal * InstallationRate.
type CostBreakdown struct {
	Items        []LineItem `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	Installation float64    `json:"installation"`
	Total        float64    `json:"total"`
	Currency     string     `json:"currency"`
	BudgetLevel  BudgetTier `json:"budget_level"`
}

// InstallationRate is the installation and delivery surcharge applied to every subtotal
const InstallationRate = 0.10

// BudgetComparison maps each tier to its breakdown for the same item list
type BudgetComparison map[BudgetTier]*CostBreakdown
