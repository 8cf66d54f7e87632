package models

import (
	"time"

	"gorm.io/gorm"
)

// Memory is a geotagged record pinned to a map coordinate. ImageURL is nil
// when no photo was attached or its upload did not complete. UserID is always
// resolved from the active session, never from client input.
type Memory struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Latitude    float64        `gorm:"not null" json:"latitude"`
	Longitude   float64        `gorm:"not null" json:"longitude"`
	ImageURL    *string        `json:"image_url"`
	Tags        TagList        `gorm:"type:jsonb;serializer:json" json:"tags"`
	Date        string         `gorm:"not null" json:"date"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// DateLayout is the calendar date format used by Memory.Date.
const DateLayout = "2006-01-02"
