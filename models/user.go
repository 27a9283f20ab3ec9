package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the login principal. A business owner has exactly one User and one
// Business; the Business carries everything customer-facing.
type User struct {
	ID        uuid.UUID `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:20;not null;unique" json:"phone"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	UserType  string    `gorm:"size:20;not null;default:business" json:"user_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
