package model

import "time"

// BookingRoom holds one room of a booking; a multi-room booking has
// one row per room held.
type BookingRoom struct {
	ID         int64 `gorm:"primaryKey"`
	BookingID  int64 `gorm:"index;not null"`
	RoomTypeID int64 `gorm:"index;not null"`
	CreatedAt  time.Time

	// Associations
	Booking  Booking  `gorm:"constraint:OnDelete:CASCADE"`
	RoomType RoomType `gorm:"constraint:OnDelete:CASCADE"`
}
