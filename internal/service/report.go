package service

import (
	"fmt"
	"strings"

	"interioai/internal/model"
	"interioai/internal/utils"

	"github.com/dustin/go-humanize"
)

const maxReportedAdditions = 6

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

var currencyNames = map[string]string{
	"INR": "Indian Rupees",
	"USD": "US Dollars",
	"EUR": "Euros",
	"GBP": "Pounds Sterling",
}

// FormatMoney renders amount with thousands separators and two decimals, e.g. "₹102,300.00"
func FormatMoney(amount float64, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	return symbol + humanize.FormatFloat("#,###.##", amount)
}

func currencyLabel(currency string) string {
	code := strings.ToUpper(currency)
	symbol, ok := currencySymbols[code]
	if !ok {
		return code
	}
	if name, ok := currencyNames[code]; ok {
		return fmt.Sprintf("%s (%s)", name, symbol)
	}
	return code
}

// CostReport renders a breakdown as plain text
func CostReport(b *model.CostBreakdown) string {
	if b == nil {
		return "No cost information available"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Budget Level: %s\n", utils.TitleCase(string(b.BudgetLevel)))
	fmt.Fprintf(&sb, "Currency: %s\n", currencyLabel(b.Currency))
	sb.WriteString("\nItem Breakdown:\n")
	for _, item := range b.Items {
		fmt.Fprintf(&sb, "  %s: %s\n", item.Name, FormatMoney(item.Cost, b.Currency))
	}
	fmt.Fprintf(&sb, "\nSubtotal: %s\n", FormatMoney(b.Subtotal, b.Currency))
	fmt.Fprintf(&sb, "Installation & Delivery (%.0f%%): %s\n", model.InstallationRate*100, FormatMoney(b.Installation, b.Currency))
	fmt.Fprintf(&sb, "\nTOTAL COST: %s", FormatMoney(b.Total, b.Currency))
	return sb.String()
}

// ComparisonReport lists the total of each tier, cheapest first
func ComparisonReport(cmp model.BudgetComparison) string {
	if len(cmp) == 0 {
		return "No comparison data available"
	}

	currency := ""
	for _, tier := range model.BudgetTiers {
		if b := cmp[tier]; b != nil {
			currency = b.Currency
			break
		}
	}

	lines := []string{
		fmt.Sprintf("Budget Comparison (in %s):", currencyLabel(currency)),
		strings.Repeat("=", 50),
	}
	for _, tier := range model.BudgetTiers {
		b, ok := cmp[tier]
		if !ok || b == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", utils.TitleCase(string(tier)), FormatMoney(b.Total, b.Currency)))
	}
	return strings.Join(lines, "\n")
}

// AnalysisReport renders an analysis. Empty sections are left out and at most
// six additions are listed.
func AnalysisReport(a *model.AnalysisResult) string {
	if a == nil {
		return "No analysis available"
	}

	lines := []string{
		"Room Type: " + utils.HumanizeKey(string(a.RoomType)),
		"Current Style: " + utils.TitleCase(string(a.CurrentStyle)),
		fmt.Sprintf("Detected Items: %d", a.DetectedCount),
	}

	s := a.Suggestions
	if len(s.MissingEssentials) > 0 {
		lines = append(lines, "\nMissing Essentials:")
		for _, item := range s.MissingEssentials {
			lines = append(lines, "  - "+utils.TitleCase(item))
		}
	}
	if len(s.AddItems) > 0 {
		lines = append(lines, "\nSuggested Additions:")
		for _, item := range s.AddItems[:min(maxReportedAdditions, len(s.AddItems))] {
			lines = append(lines, "  - "+utils.TitleCase(item))
		}
	}
	if len(s.LayoutTips) > 0 {
		lines = append(lines, "\nLayout Tips:")
		for _, tip := range s.LayoutTips {
			lines = append(lines, "  - "+tip)
		}
	}
	return strings.Join(lines, "\n")
}

// DimensionReport renders estimated room dimensions in metric and imperial units
func DimensionReport(d *model.RoomDimensions) string {
	if d == nil {
		return "No dimension data available"
	}

	lines := []string{
		"Room Dimensions",
		strings.Repeat("=", 50),
		"Metric:",
		fmt.Sprintf("  Length: %.2f m", d.LengthM),
		fmt.Sprintf("  Width:  %.2f m", d.WidthM),
		fmt.Sprintf("  Height: %.2f m", d.HeightM),
		"Imperial:",
		fmt.Sprintf("  Length: %.2f ft", d.LengthFt()),
		fmt.Sprintf("  Width:  %.2f ft", d.WidthFt()),
		fmt.Sprintf("  Height: %.2f ft", d.HeightFt()),
		"Area & Volume:",
		fmt.Sprintf("  Floor Area: %.2f m² (%.2f sq ft)", d.FloorAreaSqm(), d.FloorAreaSqft()),
		fmt.Sprintf("  Volume: %.2f m³", d.VolumeCum()),
		"Confidence: " + d.Confidence,
		"Dimensions are estimated from a depth map; measure before buying.",
	}
	return strings.Join(lines, "\n")
}

// DesignReport renders a pipeline result: analysis, dimensions when estimated,
// cost, then any warnings
func DesignReport(r *model.DesignResult) string {
	if r == nil {
		return "No design result available"
	}

	sections := []string{AnalysisReport(r.Analysis)}
	if r.Dimensions != nil {
		sections = append(sections, DimensionReport(r.Dimensions))
	}
	if r.CostBreakdown != nil {
		sections = append(sections, CostReport(r.CostBreakdown))
	}
	if len(r.Warnings) > 0 {
		lines := []string{"Warnings:"}
		for _, w := range r.Warnings {
			lines = append(lines, "  - "+w)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}
