package export

import (
	"bytes"
	"fmt"

	"interioai/internal/model"

	"github.com/xuri/excelize/v2"
)

// SummarySheet is the first sheet of every cost workbook
const SummarySheet = "Summary"

var itemHeader = []string{"Item", "Quantity", "Cost"}

var summaryHeader = []string{"Budget Level", "Items", "Subtotal", "Installation", "Total", "Currency"}

// SheetName returns the sheet title used for tier
func SheetName(tier model.BudgetTier) string {
	switch tier {
	case model.BudgetTierBudget:
		return "Budget"
	case model.BudgetTierPremium:
		return "Premium"
	default:
		return "Mid-Range"
	}
}

// CostWorkbook renders a tier comparison as an XLSX workbook: a summary sheet
// followed by one itemised sheet per tier in ascending price order.
// The sheet of active is selected when the file is opened.
func CostWorkbook(cmp model.BudgetComparison, active model.BudgetTier) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	if err := writeRow(f, SummarySheet, 1, toAny(summaryHeader)); err != nil {
		return nil, err
	}
	if err := styleRow(f, SummarySheet, 1, len(summaryHeader), headerStyle); err != nil {
		return nil, err
	}

	activeIndex := 0
	row := 2
	for _, tier := range model.BudgetTiers {
		b, ok := cmp[tier]
		if !ok || b == nil {
			continue
		}

		if err := writeRow(f, SummarySheet, row, []any{
			SheetName(tier), len(b.Items), b.Subtotal, b.Installation, b.Total, b.Currency,
		}); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SummarySheet, cellName(3, row), cellName(5, row), moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to set money style: %w", err)
		}
		row++

		index, err := writeTierSheet(f, tier, b, headerStyle, moneyStyle)
		if err != nil {
			return nil, err
		}
		if tier == active {
			activeIndex = index
		}
	}

	if err := f.SetColWidth(SummarySheet, "A", "F", 16); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	f.SetActiveSheet(activeIndex)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTierSheet(f *excelize.File, tier model.BudgetTier, b *model.CostBreakdown, headerStyle, moneyStyle int) (int, error) {
	sheet := SheetName(tier)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := writeRow(f, sheet, 1, toAny(itemHeader)); err != nil {
		return 0, err
	}
	if err := styleRow(f, sheet, 1, len(itemHeader), headerStyle); err != nil {
		return 0, err
	}

	row := 2
	for _, item := range b.Items {
		if err := writeRow(f, sheet, row, []any{item.Name, item.Quantity, item.Cost}); err != nil {
			return 0, err
		}
		row++
	}

	// blank line, then the totals
	row++
	totals := [][]any{
		{"Subtotal", nil, b.Subtotal},
		{"Installation", nil, b.Installation},
		{"Total", nil, b.Total},
	}
	for _, t := range totals {
		if err := writeRow(f, sheet, row, t); err != nil {
			return 0, err
		}
		row++
	}

	if err := f.SetCellStyle(sheet, cellName(3, 2), cellName(3, row-1), moneyStyle); err != nil {
		return 0, fmt.Errorf("failed to set money style: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return 0, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "C", 14); err != nil {
		return 0, fmt.Errorf("failed to set column width: %w", err)
	}
	return index, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		if v == nil {
			continue
		}
		cell := cellName(col+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	if err := f.SetCellStyle(sheet, cellName(1, row), cellName(cols, row), style); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	return nil
}

// cellName panics only for non-positive coordinates, which callers never pass
func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(err)
	}
	return name
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
