package inventory

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"expirygenie/entities"
	"expirygenie/pkg/expiry"
)

var csvHeader = []string{
	"id", "name", "category", "purchase_date", "expiry_date",
	"quantity", "opened", "added_method", "days_left", "status",
}

// ExportCSV renders items as CSV with derived days_left and status
// columns, dates in the YYYY-MM-DD wire format.
func ExportCSV(items []entities.FoodItem, today time.Time) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, item := range items {
		daysLeft := expiry.DaysBetween(today, item.ExpiryDate)
		record := []string{
			item.ID.String(),
			item.Name,
			item.Category,
			item.PurchaseDate.Format("2006-01-02"),
			item.ExpiryDate.Format("2006-01-02"),
			item.Quantity,
			strconv.FormatBool(item.Opened),
			item.AddedMethod,
			strconv.Itoa(daysLeft),
			string(expiry.Classify(item.ExpiryDate, today)),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
