package export

import (
	"bytes"
	"testing"

	"interioai/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func breakdown(tier model.BudgetTier, items map[string]float64, order ...string) *model.CostBreakdown {
	b := &model.CostBreakdown{Currency: "INR", BudgetLevel: tier}
	for _, name := range order {
		b.Items = append(b.Items, model.LineItem{Name: name, Cost: items[name], Quantity: 1})
		b.Subtotal += items[name]
	}
	b.Installation = b.Subtotal * model.InstallationRate
	b.Total = b.Subtotal + b.Installation
	return b
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestCostWorkbook(t *testing.T) {
	cmp := model.BudgetComparison{
		model.BudgetTierBudget:   breakdown(model.BudgetTierBudget, map[string]float64{"Desk": 8000, "Office Chair": 6000}, "Desk", "Office Chair"),
		model.BudgetTierMidRange: breakdown(model.BudgetTierMidRange, map[string]float64{"Desk": 18000, "Office Chair": 15000}, "Desk", "Office Chair"),
		model.BudgetTierPremium:  breakdown(model.BudgetTierPremium, map[string]float64{"Desk": 45000, "Office Chair": 40000}, "Desk", "Office Chair"),
	}

	data, err := CostWorkbook(cmp, model.BudgetTierPremium)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Summary", "Budget", "Mid-Range", "Premium"}, f.GetSheetList())
	assert.Equal(t, 3, f.GetActiveSheetIndex())

	raw := excelize.Options{RawCellValue: true}

	summary, err := f.GetRows(SummarySheet, raw)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, summaryHeader, summary[0])
	assert.Equal(t, []string{"Budget", "2", "14000", "1400", "15400", "INR"}, summary[1])
	assert.Equal(t, "Mid-Range", summary[2][0])
	assert.Equal(t, "93500", summary[3][4])

	mid, err := f.GetRows("Mid-Range", raw)
	require.NoError(t, err)
	assert.Equal(t, itemHeader, mid[0])
	assert.Equal(t, []string{"Desk", "1", "18000"}, mid[1])
	assert.Equal(t, []string{"Office Chair", "1", "15000"}, mid[2])

	total, err := f.GetCellValue("Mid-Range", "C7", raw)
	require.NoError(t, err)
	assert.Equal(t, "36300", total)
	label, err := f.GetCellValue("Mid-Range", "A7")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)
}

func TestCostWorkbook_PartialComparison(t *testing.T) {
	cmp := model.BudgetComparison{
		model.BudgetTierMidRange: breakdown(model.BudgetTierMidRange, map[string]float64{"Rug": 8000}, "Rug"),
	}

	data, err := CostWorkbook(cmp, model.BudgetTierPremium)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{"Summary", "Mid-Range"}, f.GetSheetList())
	// a missing active tier leaves the summary selected
	assert.Equal(t, 0, f.GetActiveSheetIndex())
}

func TestCostWorkbook_Empty(t *testing.T) {
	data, err := CostWorkbook(model.BudgetComparison{}, model.BudgetTierMidRange)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Budget", SheetName(model.BudgetTierBudget))
	assert.Equal(t, "Mid-Range", SheetName(model.BudgetTierMidRange))
	assert.Equal(t, "Premium", SheetName(model.BudgetTierPremium))
	assert.Equal(t, "Mid-Range", SheetName("luxury"))
}
