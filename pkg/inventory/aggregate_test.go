package inventory

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"expirygenie/entities"
	"expirygenie/pkg/expiry"
)

var today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func item(name, category string, daysLeft int) entities.FoodItem {
	return entities.FoodItem{
		ID:           uuid.New(),
		Name:         name,
		Category:     category,
		PurchaseDate: today.AddDate(0, 0, -2),
		ExpiryDate:   today.AddDate(0, 0, daysLeft),
		Quantity:     "1 unit",
		AddedMethod:  entities.MethodManual,
	}
}

func TestSummarizeCounts(t *testing.T) {
	items := []entities.FoodItem{
		item("Milk", "Dairy", -2),
		item("Bread", "Bakery", 0),
		item("Cheese", "Dairy", 3),
		item("Rice", "Pantry", 30),
		item("Apple", "Fruits", 10),
	}

	s := Summarize(items, today)
	if s.TotalItems != 5 || s.ExpiredItems != 1 || s.ExpiringSoon != 2 || s.SafeItems != 2 {
		t.Errorf("Summarize = %+v, want total=5 expired=1 soon=2 safe=2", s)
	}
}

func TestSummarizeClusterDays(t *testing.T) {
	// Three items share one date, the other two are alone.
	items := []entities.FoodItem{
		item("Milk", "Dairy", 5),
		item("Yogurt", "Dairy", 5),
		item("Cream", "Dairy", 5),
		item("Bread", "Bakery", 6),
		item("Apple", "Fruits", 7),
	}

	s := Summarize(items, today)
	if s.ClusterDayCount != 1 {
		t.Errorf("ClusterDayCount = %d, want 1", s.ClusterDayCount)
	}

	days := ClusterDays(items)
	if len(days) != 1 || !days[0].Equal(today.AddDate(0, 0, 5)) {
		t.Errorf("ClusterDays = %v, want [%s]", days, today.AddDate(0, 0, 5).Format("2006-01-02"))
	}
}

func TestClusterDaysBelowThreshold(t *testing.T) {
	items := []entities.FoodItem{
		item("Milk", "Dairy", 5),
		item("Yogurt", "Dairy", 5),
	}
	if days := ClusterDays(items); len(days) != 0 {
		t.Errorf("ClusterDays = %v, want none", days)
	}
}

func TestFilterComposes(t *testing.T) {
	items := []entities.FoodItem{
		item("Milk", "Dairy", -1),
		item("Cheese", "Dairy", 10),
		item("Bread", "Bakery", 10),
	}

	dairy := Filter(items, "Dairy", "", today)
	if len(dairy) != 2 {
		t.Fatalf("category filter kept %d items, want 2", len(dairy))
	}

	safeDairy := Filter(items, "Dairy", expiry.StatusSafe, today)
	if len(safeDairy) != 1 || safeDairy[0].Name != "Cheese" {
		t.Errorf("combined filter = %v, want [Cheese]", safeDairy)
	}

	all := Filter(items, "All", "All", today)
	if len(all) != 3 {
		t.Errorf("pass-through filter kept %d items, want 3", len(all))
	}
}

func TestSortStable(t *testing.T) {
	first := item("Milk", "Dairy", 4)
	second := item("milk", "Dairy", 2)
	third := item("Milk", "Grocery", 6)
	items := []entities.FoodItem{first, second, third}

	// All three names compare equal case-insensitively, so the input
	// order must survive.
	sorted := Sort(items, SortByName, true)
	if sorted[0].ID != first.ID || sorted[1].ID != second.ID || sorted[2].ID != third.ID {
		t.Error("name sort reordered equal keys")
	}

	byExpiry := Sort(items, SortByExpiryDate, true)
	if byExpiry[0].ID != second.ID || byExpiry[2].ID != third.ID {
		t.Error("expiry sort order wrong")
	}

	descending := Sort(items, SortByExpiryDate, false)
	if descending[0].ID != third.ID {
		t.Error("descending expiry sort order wrong")
	}

	if items[0].ID != first.ID {
		t.Error("Sort mutated its input")
	}
}

func TestRemoveExpired(t *testing.T) {
	items := []entities.FoodItem{
		item("Milk", "Dairy", -5),
		item("Bread", "Bakery", 0), // expires today, kept
		item("Rice", "Pantry", 10),
	}

	kept, removed := RemoveExpired(items, today)
	if removed != 1 || len(kept) != 2 {
		t.Fatalf("RemoveExpired removed %d kept %d, want 1/2", removed, len(kept))
	}
	for _, k := range kept {
		if expiry.Classify(k.ExpiryDate, today) == expiry.StatusExpired {
			t.Errorf("kept item %q is still expired", k.Name)
		}
	}
	if len(items) != 3 {
		t.Error("RemoveExpired mutated its input")
	}
}

func TestExportCSV(t *testing.T) {
	it := item("Milk", "Dairy", 2)
	out, err := ExportCSV([]entities.FoodItem{it}, today)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "id,name,category,purchase_date,expiry_date,quantity,opened,added_method,days_left,status" {
		t.Errorf("header = %q", lines[0])
	}
	want := it.ID.String() + ",Milk,Dairy,2026-03-08,2026-03-12,1 unit,false,manual,2,Expiring Soon"
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestEstimateValue(t *testing.T) {
	if v := EstimateValue("Whole Milk", "1 unit"); v != 3.50 {
		t.Errorf("milk value = %v, want 3.50", v)
	}
	if v := EstimateValue("Ground Beef", "2 lb"); v != 12.00 {
		t.Errorf("weighted quantity value = %v, want 12.00", v)
	}
	if v := EstimateValue("Eggs", "pack of 6"); v != 18.00 {
		t.Errorf("eggs pack of 6 = %.2f, want 18.00", v)
	}
	if v := EstimateValue("Banana", "3"); v != 3.00 {
		t.Errorf("multiplied value = %v, want 3.00", v)
	}
	if v := EstimateValue("Dragonfruit", "1 unit"); v != 3.00 {
		t.Errorf("default value = %v, want 3.00", v)
	}
}
