package model

import "time"

// Hotel represents one property of the group.
type Hotel struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"size:256;not null"`
	Slug         string    `gorm:"uniqueIndex;size:128;not null"`
	Timezone     string    `gorm:"size:64;not null;default:UTC"`
	CheckoutHour int       `gorm:"not null;default:12"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	// Associations
	RoomTypes []RoomType `gorm:"foreignKey:HotelID"`
}
