package occupancy

import (
	"errors"
	"fmt"
	"time"
)

// BookingStatus is the stored lifecycle state of a booking. Only
// pending and confirmed bookings hold inventory; a cancelled booking
// never does and there is no un-cancel path.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ErrInvalidInterval marks a stay whose check-out does not fall
// strictly after its check-in.
var ErrInvalidInterval = errors.New("check-out must be after check-in")

// Interval is the slice of a booking relevant to occupancy math: which
// room type it holds and for which nights. A multi-room booking
// produces one Interval per room held.
type Interval struct {
	BookingID  int64
	RoomTypeID int64
	CheckIn    time.Time
	CheckOut   time.Time
	Status     BookingStatus
}

// Validate rejects malformed stays. Such rows are a data-integrity
// problem to surface, never something to silently compute over.
func (iv Interval) Validate() error {
	if !iv.CheckOut.After(iv.CheckIn) {
		return fmt.Errorf("booking %d: %w", iv.BookingID, ErrInvalidInterval)
	}
	return nil
}

// Day truncates t to midnight in its own location. All occupancy math
// runs on calendar days.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsOccupied reports whether the interval holds its room on the given
// date. Stays are half-open, [checkIn, checkOut): a guest checking out
// on day D frees the room for arrivals on D itself, so same-day
// turnover is never a conflict.
func IsOccupied(iv Interval, date time.Time) bool {
	if iv.Status == StatusCancelled {
		return false
	}
	d := Day(date)
	return !d.Before(Day(iv.CheckIn)) && d.Before(Day(iv.CheckOut))
}

// OccupiedCount counts the intervals holding the given room type on
// the given date.
func OccupiedCount(roomTypeID int64, date time.Time, intervals []Interval) int {
	count := 0
	for _, iv := range intervals {
		if iv.RoomTypeID == roomTypeID && IsOccupied(iv, date) {
			count++
		}
	}
	return count
}
