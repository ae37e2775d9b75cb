package store

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// Sentinel errors surfaced to handlers.
var (
	// ErrNoCapacity means a requested stay would exceed a room type's
	// total count on at least one night.
	ErrNoCapacity = errors.New("no capacity for requested stay")
	// ErrRoomTypeInUse blocks deleting a room type that active
	// bookings still reference.
	ErrRoomTypeInUse = errors.New("room type has active bookings")
	// ErrNegativeCount rejects inventory edits below zero.
	ErrNegativeCount = errors.New("total count must not be negative")
	// ErrBookingCancelled blocks front-desk actions on a cancelled
	// booking.
	ErrBookingCancelled = errors.New("booking is cancelled")
	// ErrInvalidBooking rejects a malformed booking request (no rooms
	// or an unknown status).
	ErrInvalidBooking = errors.New("invalid booking request")
)

// CreateBookingRequest carries everything needed to create a booking.
// RoomTypeIDs holds one entry per room; repeating an ID books several
// rooms of that type.
type CreateBookingRequest struct {
	GuestName    string
	GuestDetails datatypes.JSON
	Status       string // PENDING or CONFIRMED; defaults to PENDING
	CheckIn      time.Time
	CheckOut     time.Time
	RoomTypeIDs  []int64
}
