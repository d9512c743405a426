package inventory

import (
	"regexp"
	"strconv"
	"strings"

	"expirygenie/entities"
)

// Rough per-unit prices for the stats page's inventory-value figure.
// First keyword match wins, anything unmatched is worth the base value.
var priceEstimates = []struct {
	Keyword string
	Price   float64
}{
	{"milk", 3.50},
	{"bread", 2.50},
	{"chicken", 8.00},
	{"beef", 12.00},
	{"fish", 10.00},
	{"eggs", 3.00},
	{"cheese", 5.00},
	{"apple", 1.50},
	{"banana", 1.00},
	{"rice", 2.00},
	{"pasta", 1.50},
	{"yogurt", 4.00},
}

const defaultItemValue = 3.00

var firstNumber = regexp.MustCompile(`\d+`)

// EstimateValue guesses the dollar value of one item from its name and
// free-text quantity. Weight-style quantities ("2 lb", "1 gallon",
// "1 dozen") count as a single unit; otherwise the first number found
// in the quantity multiplies, so "pack of 6" counts as six.
func EstimateValue(name, quantity string) float64 {
	value := defaultItemValue

	lower := strings.ToLower(name)
	for _, p := range priceEstimates {
		if strings.Contains(lower, p.Keyword) {
			value = p.Price
			break
		}
	}

	qty := strings.ToLower(quantity)
	if strings.Contains(qty, "lb") || strings.Contains(qty, "pound") ||
		strings.Contains(qty, "gallon") || strings.Contains(qty, "dozen") {
		return value
	}
	if m := firstNumber.FindString(qty); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n > 0 {
			return value * float64(n)
		}
	}
	return value
}

// TotalValue sums EstimateValue across a collection.
func TotalValue(items []entities.FoodItem) float64 {
	var total float64
	for _, item := range items {
		total += EstimateValue(item.Name, item.Quantity)
	}
	return total
}
