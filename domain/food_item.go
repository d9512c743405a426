package domain

import (
	"errors"
	"time"

	"expirygenie/pkg/expiry"
	"expirygenie/pkg/inventory"
)

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessUpdateFoodItem    = "food item updated successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessMarkAsOpened      = "food item marked as opened"
	MessageSuccessMarkAsConsumed    = "food item marked as consumed"
	MessageSuccessDeleteExpired     = "expired items deleted successfully"
	MessageSuccessExportInventory   = "inventory exported successfully"
	MessageSuccessGetCalendar       = "expiry calendar retrieved successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedUpdateFoodItem    = "failed to update food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedMarkAsOpened      = "failed to mark food item as opened"
	MessageFailedMarkAsConsumed    = "failed to mark food item as consumed"
	MessageFailedDeleteExpired     = "failed to delete expired items"
	MessageFailedExportInventory   = "failed to export inventory"
	MessageFailedGetCalendar       = "failed to retrieve expiry calendar"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrFoodItemNotFound     = errors.New("food item not found")
	ErrInvalidPurchaseDate  = errors.New("invalid purchase date")
	ErrInvalidExpiryDate    = errors.New("invalid expiry date")
	ErrExpiryBeforePurchase = errors.New("expiry date is before purchase date")
	ErrInvalidCategory      = errors.New("invalid food category")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to food item")
)

type (
	AddFoodItemRequest struct {
		Name         string `json:"name" validate:"required"`
		Category     string `json:"category" validate:"omitempty"`
		PurchaseDate string `json:"purchase_date" validate:"required"`
		// ExpiryDate is optional; when omitted the expiry engine
		// predicts it from the user's history.
		ExpiryDate  string `json:"expiry_date" validate:"omitempty"`
		Quantity    string `json:"quantity" validate:"omitempty"`
		Opened      bool   `json:"opened"`
		AddedMethod string `json:"added_method" validate:"omitempty,oneof=manual voice receipt barcode food_photo"`
		// ReceiptScanID is set server-side when items come from a
		// receipt scan, never from the request body.
		ReceiptScanID string `json:"-"`
	}

	UpdateFoodItemRequest struct {
		Name         string `json:"name" validate:"omitempty"`
		Category     string `json:"category" validate:"omitempty"`
		PurchaseDate string `json:"purchase_date" validate:"omitempty"`
		ExpiryDate   string `json:"expiry_date" validate:"omitempty"`
		Quantity     string `json:"quantity" validate:"omitempty"`
		Opened       *bool  `json:"opened" validate:"omitempty"`
	}

	FoodItemResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Category     string    `json:"category"`
		PurchaseDate string    `json:"purchase_date"`
		ExpiryDate   string    `json:"expiry_date"`
		Quantity     string    `json:"quantity"`
		Opened       bool      `json:"opened"`
		AddedMethod  string    `json:"added_method"`
		Status       string    `json:"status"`
		DaysLeft     int       `json:"days_left"`
		ImageURL     string    `json:"image_url,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}

	ListFoodItemsQuery struct {
		Category  string
		Status    expiry.Status
		SortBy    string
		Ascending bool
		Page      int
		Limit     int
	}

	MarkAsConsumedRequest struct {
		FoodItemID string `json:"food_item_id" validate:"required,uuid"`
	}

	DeleteExpiredResponse struct {
		RemovedCount int `json:"removed_count"`
	}

	CalendarDay struct {
		Date       string             `json:"date"`
		ClusterDay bool               `json:"cluster_day"`
		Items      []FoodItemResponse `json:"items"`
	}

	CalendarResponse struct {
		From string        `json:"from"`
		To   string        `json:"to"`
		Days []CalendarDay `json:"days"`
	}

	DashboardStatsResponse struct {
		Summary        inventory.Summary `json:"summary"`
		ClusterDays    []string          `json:"cluster_days"`
		MoneySaved     float64           `json:"money_saved"`
		InventoryValue float64           `json:"inventory_value"`
	}
)
