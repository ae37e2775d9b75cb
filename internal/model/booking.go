package model

import (
	"time"

	"gorm.io/datatypes"
)

// Stored booking statuses. Only PENDING and CONFIRMED hold inventory;
// CANCELLED never does, and there is no un-cancel path.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Booking is one reservation, possibly holding several rooms.
type Booking struct {
	ID            int64          `gorm:"primaryKey"`
	ReferenceCode string         `gorm:"uniqueIndex;size:64;not null"`
	GuestName     string         `gorm:"size:256;not null"`
	GuestDetails  datatypes.JSON `gorm:"column:guest_details"`
	Status        string         `gorm:"size:16;not null;index"`
	CheckIn       time.Time      `gorm:"not null;index"`
	CheckOut      time.Time      `gorm:"not null;index"`
	// Front-desk marks. The lifecycle classifier derives its
	// stillOccupying input from these; it never stores a status itself.
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	Rooms []BookingRoom `gorm:"foreignKey:BookingID"`
}

// StillOccupying reports whether the guest was checked in and has not
// been checked out. Past its checkout instant such a booking reads as
// a late checkout rather than checked out.
func (b Booking) StillOccupying() bool {
	return b.CheckedInAt != nil && b.CheckedOutAt == nil
}
