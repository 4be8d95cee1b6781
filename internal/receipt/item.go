package receipt

const (
	// Uncategorized is the category of an item before classification.
	Uncategorized = "Uncategorized"

	// FallbackCategory is assigned when no taxonomy keyword matches.
	FallbackCategory = "Other"

	// PathSeparator joins a main category and its subcategory into a full
	// category path, e.g. "Groceries > Dairy".
	PathSeparator = " > "
)

// LineItem represents one purchased product extracted from a receipt line.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`

	// Category holds the full category path. It is set exactly once by the
	// Categorizer; items must not be shared between concurrent Categorize
	// calls.
	Category string `json:"category"`
}
