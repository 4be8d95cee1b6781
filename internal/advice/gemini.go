package advice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements the Advisor interface using Google Gemini.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Advisor instance.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Advise generates personalized advice from the spending snapshot.
func (g *Gemini) Advise(spending Spending) (*Advice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(advicePrompt(spending)))
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(responseText.String())
	if text == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}

	return &Advice{Summary: text, Source: "Gemini AI"}, nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// advicePrompt assembles the generation context from the spending snapshot.
func advicePrompt(spending Spending) string {
	var b strings.Builder

	b.WriteString("Spending Analysis Summary:\n")
	fmt.Fprintf(&b, "- Total spent: $%.2f\n", spending.TotalSpent)
	fmt.Fprintf(&b, "- Number of items: %d\n", spending.TotalItems)
	fmt.Fprintf(&b, "- Average item price: $%.2f\n", spending.AvgItemPrice)
	if spending.TopCategory != "" {
		fmt.Fprintf(&b, "- Top spending category: %s ($%.2f)\n", spending.TopCategory, spending.TopCategoryAmount)
	}

	b.WriteString("\nSpending by Category:\n")
	for _, share := range spending.Shares {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", share.Category, share.Percent)
	}

	b.WriteString("\nAreas of Concern:\n")
	if len(spending.Overruns) == 0 {
		b.WriteString("No significant anomalies detected\n")
	}
	for _, o := range spending.Overruns {
		fmt.Fprintf(&b, "- %s: $%.2f (exceeds threshold by $%.2f)\n", o.Category, o.Amount, o.Excess)
	}

	b.WriteString(`
Based on this spending data, provide:
1. Three specific money-saving tips tailored to this spending pattern
2. One actionable budgeting recommendation
3. A positive observation about their spending habits`)

	return b.String()
}
