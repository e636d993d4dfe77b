package catalog

import (
	"errors"
	"fmt"

	"interioai/internal/model"
	"interioai/internal/utils"
)

// PriceEntry holds the three tier prices of one catalog item, in the smallest currency unit
type PriceEntry struct {
	Name     string `db:"name"`
	Budget   int64  `db:"budget"`
	MidRange int64  `db:"mid_range"`
	Premium  int64  `db:"premium"`
}

// Price returns the entry's price for tier. Unknown tiers price as mid-range.
func (e PriceEntry) Price(tier model.BudgetTier) int64 {
	switch tier {
	case model.BudgetTierBudget:
		return e.Budget
	case model.BudgetTierPremium:
		return e.Premium
	default:
		return e.MidRange
	}
}

// Currency is the currency of the built-in catalog
const Currency = "INR"

// DefaultPrice is charged for items that match nothing in the catalog
func DefaultPrice(tier model.BudgetTier) int64 {
	switch tier {
	case model.BudgetTierBudget:
		return 5000
	case model.BudgetTierPremium:
		return 30000
	default:
		return 12000
	}
}

// MatchStrategy decides which catalog key wins when several partially match an item
type MatchStrategy string

const (
	// MatchFirst picks the first partially matching key in declaration order
	MatchFirst MatchStrategy = "first"
	// MatchLongest picks the longest partially matching key, ties in declaration order
	MatchLongest MatchStrategy = "longest"
)

// ParseMatchStrategy returns MatchFirst for anything other than "longest"
func ParseMatchStrategy(s string) MatchStrategy {
	if MatchStrategy(utils.NormalizeItem(s)) == MatchLongest {
		return MatchLongest
	}
	return MatchFirst
}

// MatchKind tells how a lookup was resolved
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchPartial
)

// PricingTable is an ordered, read-only price catalog.
// It is safe for concurrent use once constructed.
type PricingTable struct {
	entries  []PriceEntry
	index    map[string]int
	strategy MatchStrategy
}

// PricingOption configures a PricingTable
type PricingOption func(*PricingTable)

// WithMatchStrategy sets the partial-match policy
func WithMatchStrategy(s MatchStrategy) PricingOption {
	return func(p *PricingTable) {
		p.strategy = s
	}
}

// NewPricingTable copies entries into a new table. Names are normalized.
// A repeated name keeps its first position and takes the last prices given.
func NewPricingTable(entries []PriceEntry, opts ...PricingOption) *PricingTable {
	p := &PricingTable{
		entries:  make([]PriceEntry, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
		strategy: MatchFirst,
	}
	for _, e := range entries {
		e.Name = utils.NormalizeItem(e.Name)
		if e.Name == "" {
			continue
		}
		if i, ok := p.index[e.Name]; ok {
			p.entries[i] = e
			continue
		}
		p.index[e.Name] = len(p.entries)
		p.entries = append(p.entries, e)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Strategy returns the partial-match policy in use
func (p *PricingTable) Strategy() MatchStrategy {
	return p.strategy
}

// Entries returns a copy of the catalog in declaration order
func (p *PricingTable) Entries() []PriceEntry {
	out := make([]PriceEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of catalog entries
func (p *PricingTable) Len() int {
	return len(p.entries)
}

// Match finds the catalog entry for item: exact key first, then a partial
// match chosen by the table's strategy.
func (p *PricingTable) Match(item string) (PriceEntry, MatchKind) {
	name := utils.NormalizeItem(item)
	if i, ok := p.index[name]; ok {
		return p.entries[i], MatchExact
	}

	best := -1
	for i, e := range p.entries {
		if !utils.MatchesItem(e.Name, name) {
			continue
		}
		if p.strategy != MatchLongest {
			return e, MatchPartial
		}
		if best < 0 || len(e.Name) > len(p.entries[best].Name) {
			best = i
		}
	}
	if best >= 0 {
		return p.entries[best], MatchPartial
	}
	return PriceEntry{}, MatchNone
}

// Lookup returns the price of item at tier. It never fails: items that match
// nothing get DefaultPrice.
func (p *PricingTable) Lookup(item string, tier model.BudgetTier) int64 {
	entry, kind := p.Match(item)
	if kind == MatchNone {
		return DefaultPrice(tier)
	}
	return entry.Price(tier)
}

// Validate checks budget <= mid-range <= premium and non-negative prices for every entry
func (p *PricingTable) Validate() error {
	var errs []error
	for _, e := range p.entries {
		if e.Budget < 0 || e.MidRange < 0 || e.Premium < 0 {
			errs = append(errs, fmt.Errorf("%q: negative price (%d/%d/%d)", e.Name, e.Budget, e.MidRange, e.Premium))
			continue
		}
		if e.Budget > e.MidRange || e.MidRange > e.Premium {
			errs = append(errs, fmt.Errorf("%q: tiers out of order (%d/%d/%d)", e.Name, e.Budget, e.MidRange, e.Premium))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid pricing catalog: %w", errors.Join(errs...))
	}
	return nil
}

// DefaultPricingTable builds the built-in catalog
func DefaultPricingTable(opts ...PricingOption) *PricingTable {
	return NewPricingTable(DefaultPriceEntries(), opts...)
}

// DefaultPriceEntries returns the built-in catalog in INR, averaged from Indian retail prices.
// Plural entries price a set (four dining chairs, three bar stools, three pendant lights).
func DefaultPriceEntries() []PriceEntry {
	return []PriceEntry{
		// Living room
		{"sofa", 15000, 35000, 75000},
		{"coffee table", 3000, 8000, 20000},
		{"tv stand", 4000, 12000, 30000},
		{"armchair", 8000, 18000, 40000},
		{"side table", 2000, 5000, 12000},
		{"floor lamp", 1500, 4000, 10000},
		{"rug", 2500, 8000, 25000},
		{"bookshelf", 5000, 12000, 30000},
		{"ottoman", 4000, 9000, 20000},
		{"console table", 6000, 15000, 35000},

		// Bedroom
		{"bed", 12000, 30000, 80000},
		{"nightstand", 3000, 7000, 18000},
		{"wardrobe", 15000, 35000, 90000},
		{"dresser", 8000, 18000, 45000},
		{"bedside lamp", 1000, 3000, 8000},
		{"mirror", 2000, 5000, 15000},
		{"vanity", 10000, 25000, 60000},
		{"reading chair", 6000, 15000, 35000},
		{"bench", 4000, 10000, 25000},
		{"reading lamp", 1500, 4000, 10000},

		// Kitchen and dining
		{"dining table", 10000, 25000, 65000},
		{"dining chair", 2000, 5000, 12000},
		{"dining chairs", 8000, 20000, 48000},
		{"bar stool", 2000, 5000, 12000},
		{"bar stools", 6000, 15000, 36000},
		{"pendant light", 2000, 6000, 18000},
		{"pendant lights", 5000, 15000, 45000},
		{"kitchen island", 20000, 45000, 100000},
		{"sideboard", 12000, 30000, 75000},
		{"wine rack", 3000, 8000, 20000},
		{"bar cart", 5000, 12000, 30000},
		{"chairs", 6000, 15000, 36000},

		// Office
		{"desk", 8000, 18000, 45000},
		{"office chair", 6000, 15000, 40000},
		{"filing cabinet", 5000, 12000, 28000},
		{"desk lamp", 1200, 3500, 9000},
		{"credenza", 15000, 35000, 80000},
		{"study desk", 7000, 16000, 40000},
		{"chair", 3000, 8000, 20000},

		// Bathroom
		{"storage cabinet", 6000, 15000, 35000},
		{"towel rack", 800, 2000, 5000},
		{"bath mat", 500, 1500, 4000},
		{"decorative shelf", 2000, 5000, 12000},
		{"plant stand", 1500, 4000, 10000},

		// Pooja room
		{"puja shelf", 5000, 12000, 30000},
		{"wooden puja mandir", 10000, 25000, 65000},
		{"deity idols", 2000, 5000, 15000},
		{"diya stand", 1000, 3000, 8000},
		{"brass diya", 800, 2000, 6000},
		{"prayer mat", 500, 1500, 4000},
		{"incense holder", 400, 1000, 3000},
		{"incense stand", 600, 1500, 4000},
		{"prayer bells", 800, 2500, 7000},
		{"traditional rug", 3000, 10000, 30000},
		{"ethnic wall art", 2000, 6000, 18000},

		// Miscellaneous
		{"wall art", 1500, 5000, 15000},
		{"centerpiece", 1000, 3000, 9000},
		{"wall shelves", 3000, 8000, 20000},
		{"toy storage", 4000, 10000, 25000},
		{"play table", 5000, 12000, 28000},
		{"bean bags", 2000, 5000, 12000},
		{"coat rack", 2000, 5000, 12000},
	}
}
