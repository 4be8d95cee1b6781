package receipt

import (
	"math"
	"strings"
)

// Severity classifies how far an anomaly exceeds its threshold.
type Severity string

const (
	// SeverityMedium applies when the amount exceeds the threshold by up to
	// half again.
	SeverityMedium Severity = "Medium"
	// SeverityHigh applies when the amount exceeds 1.5x the threshold.
	SeverityHigh Severity = "High"
)

// Anomaly flags a category whose spending total exceeds its threshold.
type Anomaly struct {
	Category  string   `json:"category"`
	Amount    float64  `json:"amount"`
	Threshold float64  `json:"threshold"`
	Excess    float64  `json:"excess"`
	Severity  Severity `json:"severity"`
}

// CategoryShare is one category's percentage of the grand total.
type CategoryShare struct {
	Path    string  `json:"path"`
	Percent float64 `json:"percent"`
}

// ItemSummary names a single item and its price.
type ItemSummary struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CategorySummary names a single category and its summed amount.
type CategorySummary struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SummaryStats aggregates a receipt's spending. The pointer fields are nil
// for empty inputs.
type SummaryStats struct {
	TotalItems        int              `json:"total_items"`
	TotalSpent        float64          `json:"total_spent"`
	AvgItemPrice      float64          `json:"avg_item_price"`
	MostExpensiveItem *ItemSummary     `json:"most_expensive_item,omitempty"`
	TopCategory       *CategorySummary `json:"top_category,omitempty"`
	CategoryCount     int              `json:"category_count"`
}

// defaultThreshold applies to main categories without an explicit budget.
const defaultThreshold = 50

// Analyzer computes spending statistics and anomaly flags. All methods are
// pure and total over their input domains; empty inputs produce zeroed or
// empty outputs, never failures.
type Analyzer struct {
	thresholds map[string]float64
}

// NewAnalyzer creates an Analyzer with the built-in per-category budget
// thresholds, in the same currency unit as item prices.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithThresholds(map[string]float64{
		"Groceries":      200,
		"Dining":         100,
		"Shopping":       150,
		"Transportation": 100,
		"Healthcare":     100,
		"Other":          defaultThreshold,
	})
}

// NewAnalyzerWithThresholds creates an Analyzer with custom thresholds,
// keyed by main category name.
func NewAnalyzerWithThresholds(thresholds map[string]float64) *Analyzer {
	return &Analyzer{thresholds: thresholds}
}

// Percentages returns each category's share of the grand total, in the input
// totals order. A zero grand total yields an empty result rather than a
// division by zero; that is a defined outcome, not an error.
func (a *Analyzer) Percentages(totals []CategoryTotal, grandTotal float64) []CategoryShare {
	if grandTotal == 0 {
		return []CategoryShare{}
	}

	shares := make([]CategoryShare, 0, len(totals))
	for _, t := range totals {
		shares = append(shares, CategoryShare{Path: t.Path, Percent: t.Amount / grandTotal * 100})
	}
	return shares
}

// Anomalies flags category totals exceeding their main category's threshold,
// preserving the input order. The threshold is looked up by the main
// category, the path segment before the " > " separator.
func (a *Analyzer) Anomalies(totals []CategoryTotal) []Anomaly {
	anomalies := []Anomaly{}
	for _, t := range totals {
		main, _, _ := strings.Cut(t.Path, PathSeparator)
		threshold, ok := a.thresholds[main]
		if !ok {
			threshold = defaultThreshold
		}
		if t.Amount <= threshold {
			continue
		}

		severity := SeverityMedium
		if t.Amount > threshold*1.5 {
			severity = SeverityHigh
		}
		anomalies = append(anomalies, Anomaly{
			Category:  t.Path,
			Amount:    t.Amount,
			Threshold: threshold,
			Excess:    t.Amount - threshold,
			Severity:  severity,
		})
	}
	return anomalies
}

// SummaryStats aggregates item and category statistics. Ties for the most
// expensive item go to the first item in sequence order; ties for the top
// category go to the first group in insertion order.
func (a *Analyzer) SummaryStats(items []*LineItem, groups Groups) SummaryStats {
	stats := SummaryStats{TotalItems: len(items)}

	var total float64
	for _, item := range items {
		total += item.Price
	}
	stats.TotalSpent = round2(total)

	if len(items) > 0 {
		stats.AvgItemPrice = round2(total / float64(len(items)))
		most := items[0]
		for _, item := range items[1:] {
			if item.Price > most.Price {
				most = item
			}
		}
		stats.MostExpensiveItem = &ItemSummary{Name: most.Name, Price: most.Price}
	}

	stats.CategoryCount = len(groups)
	for _, g := range groups {
		var amount float64
		for _, item := range g.Items {
			amount += item.Price
		}
		if stats.TopCategory == nil || amount > stats.TopCategory.Amount {
			stats.TopCategory = &CategorySummary{Name: g.Path, Amount: amount}
		}
	}
	if stats.TopCategory != nil {
		stats.TopCategory.Amount = round2(stats.TopCategory.Amount)
	}

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
