// Package inventory aggregates classified food items into the views
// the dashboard, calendar and stats pages are built from: status
// tallies, cluster-day detection, filtering, sorting, expired-item
// cleanup and CSV export. Like pkg/expiry it is pure and clock-injected.
package inventory

import (
	"sort"
	"strings"
	"time"

	"expirygenie/entities"
	"expirygenie/pkg/expiry"
)

// clusterThreshold is the number of items sharing an expiry date that
// makes the date a cluster day.
const clusterThreshold = 3

type Summary struct {
	TotalItems      int `json:"total_items"`
	SafeItems       int `json:"safe_items"`
	ExpiringSoon    int `json:"expiring_soon_items"`
	ExpiredItems    int `json:"expired_items"`
	ClusterDayCount int `json:"cluster_day_count"`
}

// Summarize classifies every item against today and tallies the result.
// ClusterDayCount counts dates, not items: a date with three or more
// items expiring together is one cluster day.
func Summarize(items []entities.FoodItem, today time.Time) Summary {
	s := Summary{TotalItems: len(items)}

	for _, item := range items {
		switch expiry.Classify(item.ExpiryDate, today) {
		case expiry.StatusExpired:
			s.ExpiredItems++
		case expiry.StatusExpiringSoon:
			s.ExpiringSoon++
		default:
			s.SafeItems++
		}
	}

	s.ClusterDayCount = len(ClusterDays(items))
	return s
}

// ClusterDays returns the expiry dates shared by clusterThreshold or
// more items, in ascending order.
func ClusterDays(items []entities.FoodItem) []time.Time {
	perDay := make(map[time.Time]int)
	for _, item := range items {
		perDay[expiry.Date(item.ExpiryDate)]++
	}

	var days []time.Time
	for day, n := range perDay {
		if n >= clusterThreshold {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Filter narrows items by category and/or status. Either predicate may
// be empty or "All", which passes everything through; both together
// compose as AND. The input slice is never modified.
func Filter(items []entities.FoodItem, category string, status expiry.Status, today time.Time) []entities.FoodItem {
	filtered := make([]entities.FoodItem, 0, len(items))
	for _, item := range items {
		if category != "" && category != "All" && item.Category != category {
			continue
		}
		if status != "" && status != "All" && expiry.Classify(item.ExpiryDate, today) != status {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// Sort keys. Name comparison is case-insensitive.
const (
	SortByExpiryDate   = "expiry_date"
	SortByPurchaseDate = "purchase_date"
	SortByName         = "name"
	SortByCategory     = "category"
)

// Sort returns a sorted copy of items. The sort is stable so items
// sharing an expiry date keep their relative order. Unknown keys sort
// by expiry date.
func Sort(items []entities.FoodItem, key string, ascending bool) []entities.FoodItem {
	sorted := make([]entities.FoodItem, len(items))
	copy(sorted, items)

	var less func(a, b entities.FoodItem) bool
	switch key {
	case SortByPurchaseDate:
		less = func(a, b entities.FoodItem) bool { return a.PurchaseDate.Before(b.PurchaseDate) }
	case SortByName:
		less = func(a, b entities.FoodItem) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortByCategory:
		less = func(a, b entities.FoodItem) bool { return a.Category < b.Category }
	default:
		less = func(a, b entities.FoodItem) bool { return a.ExpiryDate.Before(b.ExpiryDate) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// RemoveExpired returns a new slice without the items classified
// Expired as of today, plus the number removed. Items expiring today
// are Expiring Soon, not Expired, and are kept. The input is untouched;
// persisting the result is the caller's call.
func RemoveExpired(items []entities.FoodItem, today time.Time) ([]entities.FoodItem, int) {
	kept := make([]entities.FoodItem, 0, len(items))
	for _, item := range items {
		if expiry.Classify(item.ExpiryDate, today) == expiry.StatusExpired {
			continue
		}
		kept = append(kept, item)
	}
	return kept, len(items) - len(kept)
}
