// Package advice turns spending analysis results into budgeting guidance,
// either through a language model or a rule-based fallback.
package advice

// Share is one category's percentage of total spending.
type Share struct {
	Category string
	Percent  float64
}

// Overrun is a category whose spending exceeded its budget threshold.
type Overrun struct {
	Category string
	Amount   float64
	Excess   float64
}

// Spending is the snapshot of a receipt analysis an advisor works from. It
// is the sole contract between the analysis pipeline and advice generation.
type Spending struct {
	TotalItems        int
	TotalSpent        float64
	AvgItemPrice      float64
	TopCategory       string
	TopCategoryAmount float64
	Shares            []Share
	Overruns          []Overrun
}

// Advice is the generated guidance for one receipt.
type Advice struct {
	Summary       string   `json:"summary"`
	Tips          []string `json:"tips,omitempty"`
	PositiveNotes []string `json:"positive_notes,omitempty"`
	Source        string   `json:"source"`
}

// Advisor generates advice from a spending snapshot.
type Advisor interface {
	// Advise produces guidance for the given spending snapshot.
	Advise(spending Spending) (*Advice, error)
	// Close releases advisor resources.
	Close() error
}
