package model

import "time"

// PushSubscription holds a browser push subscription for availability
// alerts on specific room types.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	RoomTypes []*RoomType `gorm:"many2many:subscription_room_type_mapping;"`
}
