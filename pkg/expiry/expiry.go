// Package expiry implements the expiry estimation and status engine:
// a keyword shelf-life table, an opened-item reduction rule, a
// history-based predictor and the Safe / Expiring Soon / Expired
// classifier. Everything here is pure; "today" is always a parameter
// so callers stay deterministic and testable.
package expiry

import (
	"strings"
	"time"

	"expirygenie/entities"
)

type Status string

const (
	StatusSafe         Status = "Safe"
	StatusExpiringSoon Status = "Expiring Soon"
	StatusExpired      Status = "Expired"
)

// expiringSoonDays is the inclusive upper bound of the warning window.
const expiringSoonDays = 3

// Date truncates t to its calendar day. All expiry arithmetic is
// whole-day; the wire format is "2006-01-02" with no time component.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole days from one calendar date to another,
// negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)) / (24 * time.Hour))
}

// Estimate computes an expiry date for a food name bought on
// purchaseDate. Opened or cooked items get a reduced shelf life: long
// shelf lives (over a week) drop to a third, short ones to half, never
// below one day. The two branches are distinct on purpose and must not
// be merged into one formula.
func Estimate(name string, purchaseDate time.Time, opened bool) time.Time {
	days := ShelfLifeDays(name)

	if opened {
		if days > DefaultShelfLifeDays {
			days = max(1, days/3)
		} else {
			days = max(1, days/2)
		}
	}

	return Date(purchaseDate).AddDate(0, 0, days)
}

// Predict derives an expiry date from the user's history: items whose
// name contains the given name (or vice versa, case-insensitively)
// contribute their observed shelf life, and the floored average is
// added to purchaseDate. Rows with a non-positive shelf life are
// ignored. With no usable history it falls back to Estimate with
// opened=false.
func Predict(history []entities.FoodItem, name string, purchaseDate time.Time) time.Time {
	lower := strings.ToLower(name)

	total, count := 0, 0
	for _, item := range history {
		itemName := strings.ToLower(item.Name)
		if !strings.Contains(itemName, lower) && !strings.Contains(lower, itemName) {
			continue
		}
		shelfLife := DaysBetween(item.PurchaseDate, item.ExpiryDate)
		if shelfLife <= 0 {
			continue
		}
		total += shelfLife
		count++
	}

	if count == 0 {
		return Estimate(name, purchaseDate, false)
	}

	return Date(purchaseDate).AddDate(0, 0, total/count)
}

// Classify buckets an expiry date relative to today. Both ends of the
// warning window are inclusive: expiring today and expiring in exactly
// three days are both Expiring Soon.
func Classify(expiryDate, today time.Time) Status {
	daysLeft := DaysBetween(today, expiryDate)

	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft <= expiringSoonDays:
		return StatusExpiringSoon
	default:
		return StatusSafe
	}
}
