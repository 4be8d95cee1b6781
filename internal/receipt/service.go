package receipt

import (
	"fmt"
	"log/slog"

	"github.com/jpalat/spendscan/internal/advice"
	"github.com/jpalat/spendscan/internal/scanning"
)

// Report is the full analysis for one receipt. The summary, anomalies and
// percentages are the contract consumed by the advice and reporting side;
// everything else is exposed for inspection.
type Report struct {
	Text        string          `json:"text"`
	Items       []*LineItem     `json:"items"`
	Groups      Groups          `json:"groups"`
	Totals      []CategoryTotal `json:"category_totals"`
	GrandTotal  float64         `json:"grand_total"`
	Percentages []CategoryShare `json:"percentages"`
	Anomalies   []Anomaly       `json:"anomalies"`
	Summary     SummaryStats    `json:"summary"`
	Advice      *advice.Advice  `json:"advice,omitempty"`
}

// Service runs the receipt analysis pipeline: scan, parse, categorize,
// analyze, advise.
type Service struct {
	scanner     scanning.Scanner
	advisor     advice.Advisor
	parser      *Parser
	categorizer *Categorizer
	analyzer    *Analyzer
}

// NewService creates a Service with the built-in parser, taxonomy and
// thresholds. The advisor may be nil, in which case reports carry no advice.
func NewService(scanner scanning.Scanner, advisor advice.Advisor) *Service {
	return &Service{
		scanner:     scanner,
		advisor:     advisor,
		parser:      NewParser(),
		categorizer: NewCategorizer(),
		analyzer:    NewAnalyzer(),
	}
}

// AnalyzeImage extracts text from a receipt image and analyzes it. A scanner
// failure is the only error path; whatever text comes back is analyzed on a
// best-effort basis.
func (s *Service) AnalyzeImage(filename string, data []byte, contentType string) (*Report, error) {
	text, err := s.scanner.ExtractText(data, contentType)
	if err != nil {
		slog.Error("Failed to extract receipt text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("extracting receipt text: %w", err)
	}

	return s.AnalyzeText(text), nil
}

// AnalyzeText runs the parsing, categorization and analysis pipeline over
// raw OCR text. Degenerate input (no parseable items) produces a zeroed
// report, not an error.
func (s *Service) AnalyzeText(text string) *Report {
	items := s.parser.Parse(text)
	groups := s.categorizer.Categorize(items)
	totals := s.categorizer.CategoryTotals(groups)
	grandTotal := s.parser.Total(items)

	report := &Report{
		Text:        text,
		Items:       items,
		Groups:      groups,
		Totals:      totals,
		GrandTotal:  grandTotal,
		Percentages: s.analyzer.Percentages(totals, grandTotal),
		Anomalies:   s.analyzer.Anomalies(totals),
		Summary:     s.analyzer.SummaryStats(items, groups),
	}

	if s.advisor != nil {
		report.Advice = s.advise(report)
	}
	return report
}

// advise asks the configured advisor and falls back to rule-based advice on
// failure, so a report always carries advice when an advisor is configured.
func (s *Service) advise(report *Report) *advice.Advice {
	spending := spendingSnapshot(report)
	result, err := s.advisor.Advise(spending)
	if err != nil {
		slog.Warn("Advisor failed, using rule-based advice", "error", err)
		return advice.RuleBased(spending)
	}
	return result
}

// spendingSnapshot flattens analyzer output into the advisor's input
// contract.
func spendingSnapshot(report *Report) advice.Spending {
	spending := advice.Spending{
		TotalItems:   report.Summary.TotalItems,
		TotalSpent:   report.Summary.TotalSpent,
		AvgItemPrice: report.Summary.AvgItemPrice,
	}
	if report.Summary.TopCategory != nil {
		spending.TopCategory = report.Summary.TopCategory.Name
		spending.TopCategoryAmount = report.Summary.TopCategory.Amount
	}
	for _, share := range report.Percentages {
		spending.Shares = append(spending.Shares, advice.Share{
			Category: share.Path,
			Percent:  share.Percent,
		})
	}
	for _, anomaly := range report.Anomalies {
		spending.Overruns = append(spending.Overruns, advice.Overrun{
			Category: anomaly.Category,
			Amount:   anomaly.Amount,
			Excess:   anomaly.Excess,
		})
	}
	return spending
}
