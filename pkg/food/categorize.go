package food

import "strings"

// Keyword hints for auto-categorizing items added without a category.
// Checked in order, first hit wins, anything unmatched lands in Grocery.
var categoryKeywords = []struct {
	Category string
	Keywords []string
}{
	{"Dairy", []string{"milk", "cheese", "yogurt", "butter", "cream"}},
	{"Meat & Poultry", []string{"chicken", "beef", "pork", "fish", "turkey", "lamb", "ground"}},
	{"Fruits", []string{"apple", "banana", "orange", "grape", "strawberry", "blueberry", "mango"}},
	{"Vegetables", []string{"tomato", "lettuce", "carrot", "potato", "onion", "broccoli", "pepper"}},
	{"Pantry", []string{"rice", "pasta", "cereal", "flour", "sugar", "salt", "oil"}},
	{"Beverages", []string{"juice", "soda", "beer", "wine", "water", "coffee", "tea"}},
	{"Bakery", []string{"bread", "bagel", "muffin", "cake", "cookie", "pie"}},
	{"Frozen", []string{"frozen", "ice cream", "popsicle"}},
	{"Condiments", []string{"sauce", "dressing", "ketchup", "mustard", "mayo"}},
}

// Categorize guesses a category from the food name.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, c := range categoryKeywords {
		for _, keyword := range c.Keywords {
			if strings.Contains(lower, keyword) {
				return c.Category
			}
		}
	}
	return "Grocery"
}
