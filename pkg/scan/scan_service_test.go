package scan

import "testing"

func TestParseExtractedItems(t *testing.T) {
	raw := "```json\n[{\"name\": \"Milk\", \"quantity\": \"1 gallon\"}, {\"name\": \"  \"}, {\"name\": \"Bread\"}]\n```"

	items, err := parseExtractedItems(raw)
	if err != nil {
		t.Fatalf("parseExtractedItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2 (blank name dropped)", len(items))
	}
	if items[0].Name != "Milk" || items[0].Quantity != "1 gallon" {
		t.Errorf("first = %+v", items[0])
	}
	if items[1].Name != "Bread" {
		t.Errorf("second = %+v", items[1])
	}
}

func TestParseExtractedItemsProseWrapped(t *testing.T) {
	raw := `Here are the items I found:
[{"name": "Eggs", "category": "Dairy"}]
Let me know if you need anything else.`

	items, err := parseExtractedItems(raw)
	if err != nil {
		t.Fatalf("parseExtractedItems: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Eggs" {
		t.Errorf("items = %+v", items)
	}
}

func TestParseExtractedItemsRejectsGarbage(t *testing.T) {
	if _, err := parseExtractedItems("sorry, I could not read the receipt"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}
