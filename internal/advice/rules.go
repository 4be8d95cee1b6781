package advice

import (
	"fmt"
	"strings"
)

// shareAlertPercent is the share of total spending above which a category
// draws a comment and a category-specific tip.
const shareAlertPercent = 30

var defaultTips = []string{
	"Track your expenses regularly to stay aware of spending patterns",
	"Look for subscription services you might have forgotten about",
	"Consider using cash envelopes for variable expenses",
}

// Rules is an Advisor that needs no external service.
type Rules struct{}

// NewRules creates a rule-based Advisor.
func NewRules() *Rules {
	return &Rules{}
}

// Advise implements Advisor.
func (r *Rules) Advise(spending Spending) (*Advice, error) {
	return RuleBased(spending), nil
}

// Close implements Advisor (no-op).
func (r *Rules) Close() error {
	return nil
}

// RuleBased generates advice from fixed heuristics. It always succeeds,
// which makes it the fallback when a language-model advisor errors.
func RuleBased(spending Spending) *Advice {
	var observations []string
	var tips []string

	if len(spending.Overruns) > 0 {
		observations = append(observations, "Overspending alert")
		for _, o := range spending.Overruns {
			observations = append(observations, fmt.Sprintf(
				"You spent $%.2f on %s, which is $%.2f above typical budget",
				o.Amount, o.Category, o.Excess))
		}
	}

	for _, share := range spending.Shares {
		if share.Percent <= shareAlertPercent {
			continue
		}
		observations = append(observations, fmt.Sprintf(
			"%.1f%% of your spending is on %s. Consider if this aligns with your priorities.",
			share.Percent, share.Category))

		main, _, _ := strings.Cut(share.Category, " > ")
		switch main {
		case "Dining":
			tips = append(tips, "Try meal prepping to reduce dining expenses")
		case "Shopping":
			tips = append(tips, "Implement a 24-hour waiting period for non-essential purchases")
		case "Groceries":
			tips = append(tips, "Plan meals and use shopping lists to avoid impulse buys")
		}
	}

	var notes []string
	if spending.TotalSpent < 100 {
		notes = append(notes, "Great job keeping total spending under $100!")
	}
	for _, share := range spending.Shares {
		main, _, _ := strings.Cut(share.Category, " > ")
		if main == "Healthcare" && share.Percent > 0 {
			notes = append(notes, "Good to see you're investing in health and wellness")
			break
		}
	}
	if len(notes) == 0 {
		notes = []string{"You're being mindful of your spending!"}
	}

	if len(tips) == 0 {
		tips = defaultTips
	}
	if len(tips) > 3 {
		tips = tips[:3]
	}

	summary := "Your spending looks balanced!"
	if len(observations) > 0 {
		summary = strings.Join(observations, "\n")
	}

	return &Advice{
		Summary:       summary,
		Tips:          tips,
		PositiveNotes: notes,
		Source:        "Rule-based System",
	}
}
