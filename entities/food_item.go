package entities

import (
	"time"

	"github.com/google/uuid"
)

// Food categories shown in the app. Category is informational only,
// the expiry estimator works off the item name.
var FoodCategories = []string{
	"Grocery",
	"Cooked Food",
	"Pantry",
	"Frozen",
	"Dairy",
	"Meat & Poultry",
	"Fruits",
	"Vegetables",
	"Beverages",
	"Snacks",
	"Condiments",
	"Bakery",
}

// Provenance tags for AddedMethod.
const (
	MethodManual    = "manual"
	MethodVoice     = "voice"
	MethodReceipt   = "receipt"
	MethodBarcode   = "barcode"
	MethodFoodPhoto = "food_photo"
)

type FoodItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	PurchaseDate  time.Time `gorm:"type:date" json:"purchase_date"`
	ExpiryDate    time.Time `gorm:"type:date" json:"expiry_date"`
	Quantity      string    `json:"quantity"`
	Opened        bool      `json:"opened"`
	AddedMethod   string    `json:"added_method"`
	ImageURL      string    `json:"image_url,omitempty"`
	ReceiptScanID *string   `json:"receipt_scan_id,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
