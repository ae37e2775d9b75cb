package model

import "time"

// RoomType is a category of physical rooms at a hotel sharing a price,
// capacity and a fixed total count.
type RoomType struct {
	ID          int64  `gorm:"primaryKey"`
	HotelID     int64  `gorm:"index;not null"`
	Name        string `gorm:"size:256;not null"`
	Description string `gorm:"size:1024"`
	// TotalCount is the number of physical rooms of this type. Admin
	// edits (single or bulk) must never take it negative.
	TotalCount int     `gorm:"not null"`
	Capacity   int     `gorm:"not null;default:2"` // max occupants per room, informational
	Price      float64 `gorm:"not null"`           // per-night rate
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Associations
	Hotel Hotel `gorm:"constraint:OnDelete:CASCADE"`
}
