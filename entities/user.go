package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string    `json:"name"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	Verified   bool      `json:"verified"`
	AvatarURL  string    `json:"avatar_url"`
	MoneySaved float64   `json:"money_saved"`

	Timestamp
}
