package expiry

import "strings"

// DefaultShelfLifeDays is returned when no keyword matches the item name.
const DefaultShelfLifeDays = 7

type shelfLifeEntry struct {
	Keyword string
	Days    int
}

// shelfLifeTable maps food-name keywords to default shelf life in days.
// Order matters: the first keyword contained in the lower-cased name
// wins, so "ground beef" resolves to "beef" before "ground beef" is
// ever reached. Keep the literal order when editing.
var shelfLifeTable = []shelfLifeEntry{
	// Dairy
	{"milk", 7},
	{"cheese", 14},
	{"yogurt", 10},
	{"butter", 30},
	{"cream", 5},

	// Meat & Poultry
	{"chicken", 3},
	{"beef", 5},
	{"pork", 4},
	{"fish", 2},
	{"ground beef", 2},
	{"ground chicken", 2},

	// Fruits
	{"apple", 14},
	{"banana", 7},
	{"orange", 10},
	{"grapes", 7},
	{"strawberry", 5},
	{"blueberry", 10},

	// Vegetables
	{"lettuce", 7},
	{"tomato", 7},
	{"carrot", 21},
	{"potato", 30},
	{"onion", 30},
	{"broccoli", 7},

	// Pantry
	{"bread", 7},
	{"rice", 365},
	{"pasta", 730},
	{"cereal", 365},
	{"flour", 365},

	// Beverages
	{"juice", 7},
	{"soda", 90},
	{"beer", 120},
	{"wine", 1825},
}

// ShelfLifeDays returns the default shelf life for a food name, scanning
// the table in order and taking the first keyword that is a substring of
// the lower-cased name. Unknown names get DefaultShelfLifeDays.
func ShelfLifeDays(name string) int {
	lower := strings.ToLower(name)
	for _, entry := range shelfLifeTable {
		if strings.Contains(lower, entry.Keyword) {
			return entry.Days
		}
	}
	return DefaultShelfLifeDays
}
