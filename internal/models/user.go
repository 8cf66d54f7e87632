package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a public profile row. Its ID always equals the Account ID it belongs
// to. Creation is best-effort relative to signup: a missing profile row never
// invalidates the account.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Username  string         `gorm:"unique;not null" json:"username"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Memories  []Memory       `gorm:"foreignKey:UserID" json:"memories,omitempty"`
}
