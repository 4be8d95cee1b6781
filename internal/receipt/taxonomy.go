package receipt

// Subcategory is a named keyword set within a main category.
type Subcategory struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Category is a main spending category with its top-level keywords and
// ordered subcategories.
//
// Order is load-bearing: the categorizer evaluates categories, and the
// subcategories within them, in the order they are defined here, and the
// first match wins.
type Category struct {
	Name          string        `json:"name"`
	Keywords      []string      `json:"keywords"`
	Subcategories []Subcategory `json:"subcategories"`
}

// DefaultTaxonomy returns the built-in category taxonomy. Callers must treat
// the result as read-only.
func DefaultTaxonomy() []Category {
	return []Category{
		{
			Name:     "Groceries",
			Keywords: []string{"grocery", "supermarket", "food", "mart", "market"},
			Subcategories: []Subcategory{
				{Name: "Dairy", Keywords: []string{"milk", "cheese", "yogurt", "butter", "cream", "eggs"}},
				{Name: "Meat", Keywords: []string{"chicken", "beef", "pork", "fish", "meat", "seafood"}},
				{Name: "Produce", Keywords: []string{"apple", "banana", "orange", "vegetable", "fruit", "lettuce", "tomato"}},
				{Name: "Bakery", Keywords: []string{"bread", "cake", "muffin", "donut", "pastry", "bagel"}},
				{Name: "Beverages", Keywords: []string{"water", "soda", "juice", "coffee", "tea", "drink"}},
				{Name: "Snacks", Keywords: []string{"chip", "candy", "chocolate", "cookie", "snack", "cracker"}},
				{Name: "Frozen", Keywords: []string{"frozen", "ice cream", "pizza"}},
				{Name: "Pantry", Keywords: []string{"rice", "pasta", "cereal", "sauce", "can", "oil"}},
			},
		},
		{
			Name:     "Dining",
			Keywords: []string{"restaurant", "cafe", "starbucks", "mcdonald", "pizza hut", "kfc"},
			Subcategories: []Subcategory{
				{Name: "Fast Food", Keywords: []string{"burger", "fries", "mcdonald", "kfc", "wendy"}},
				{Name: "Restaurant", Keywords: []string{"dinner", "lunch", "breakfast", "restaurant"}},
				{Name: "Coffee Shop", Keywords: []string{"starbucks", "coffee", "cafe"}},
			},
		},
		{
			Name:     "Shopping",
			Keywords: []string{"walmart", "target", "costco", "amazon", "mall", "store"},
			Subcategories: []Subcategory{
				{Name: "Clothing", Keywords: []string{"shirt", "pant", "jean", "dress", "shoe"}},
				{Name: "Electronics", Keywords: []string{"phone", "charger", "cable", "battery"}},
				{Name: "Household", Keywords: []string{"cleaning", "towel", "paper", "soap"}},
			},
		},
		{
			Name:     "Transportation",
			Keywords: []string{"gas", "uber", "lyft", "taxi", "transit", "metro", "bus"},
			Subcategories: []Subcategory{
				{Name: "Fuel", Keywords: []string{"gas", "petrol"}},
				{Name: "Rideshare", Keywords: []string{"uber", "lyft", "taxi"}},
				{Name: "Public Transit", Keywords: []string{"bus", "metro", "train"}},
			},
		},
		{
			Name:     "Healthcare",
			Keywords: []string{"pharmacy", "cvs", "walgreens", "medical", "doctor"},
			Subcategories: []Subcategory{
				{Name: "Pharmacy", Keywords: []string{"medicine", "pill", "vitamin"}},
				{Name: "Medical", Keywords: []string{"doctor", "clinic", "hospital"}},
			},
		},
	}
}
