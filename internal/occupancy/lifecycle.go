package occupancy

import (
	"fmt"
	"time"
)

// Derived status codes. The sequence is forward-only as a function of
// time: Upcoming, then CheckedIn, then CheckedOut.
const (
	CodeUpcoming   = 0
	CodeCheckedIn  = 1
	CodeCheckedOut = 2
)

// DefaultCheckoutHour is the checkout instant's hour of day when a
// hotel carries no policy of its own.
const DefaultCheckoutHour = 12

// Policy fixes the daily checkout instant that splits CheckedIn from
// CheckedOut.
type Policy struct {
	CheckoutHour int
	Location     *time.Location
}

func (p Policy) normalized() Policy {
	if p.CheckoutHour <= 0 || p.CheckoutHour > 23 {
		p.CheckoutHour = DefaultCheckoutHour
	}
	if p.Location == nil {
		p.Location = time.UTC
	}
	return p
}

// Derived is the computed display state of a booking. It is never
// persisted; recomputing it from an injected reference instant keeps
// it consistent with the clock by construction.
type Derived struct {
	Code           int    `json:"statusCode"`
	Label          string `json:"statusLabel"`
	IsLateCheckout bool   `json:"isLateCheckout"`
	Message        string `json:"message"`
}

// CheckoutInstant is the policy hour on the check-out date, in the
// policy location.
func CheckoutInstant(checkOut time.Time, p Policy) time.Time {
	p = p.normalized()
	y, m, d := checkOut.In(p.Location).Date()
	return time.Date(y, m, d, p.CheckoutHour, 0, 0, 0, p.Location)
}

// Classify derives the lifecycle state of a stay at the reference
// instant now. The clock is always injected, never read here.
//
// stillOccupying is the persisted front-desk signal that the guest was
// checked in and has not been checked out. Past the checkout instant a
// still-occupying booking stays CheckedIn with IsLateCheckout set;
// late checkout is a sub-state of CheckedIn, not a fourth code. Any
// other booking flips to CheckedOut. The flag is therefore only ever
// true while Code is CodeCheckedIn, and for fixed inputs Code never
// decreases as now advances.
func Classify(checkIn, checkOut time.Time, stillOccupying bool, now time.Time, p Policy) (Derived, error) {
	if !checkOut.After(checkIn) {
		return Derived{}, fmt.Errorf("stay [%s, %s): %w",
			checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"), ErrInvalidInterval)
	}

	instant := CheckoutInstant(checkOut, p)

	switch {
	case now.Before(checkIn):
		return Derived{
			Code:    CodeUpcoming,
			Label:   "Upcoming",
			Message: fmt.Sprintf("Arriving in %d day(s)", ceilDiv(checkIn.Sub(now), 24*time.Hour)),
		}, nil
	case now.Before(instant):
		return Derived{
			Code:    CodeCheckedIn,
			Label:   "Checked In",
			Message: fmt.Sprintf("Checkout in %d hour(s)", ceilDiv(instant.Sub(now), time.Hour)),
		}, nil
	case stillOccupying:
		return Derived{
			Code:           CodeCheckedIn,
			Label:          "Checked In",
			IsLateCheckout: true,
			Message:        fmt.Sprintf("Late checkout (%dh past due)", int(now.Sub(instant)/time.Hour)),
		}, nil
	default:
		return Derived{
			Code:    CodeCheckedOut,
			Label:   "Checked Out",
			Message: "Checked out on " + checkOut.Format("Jan 2, 2006"),
		}, nil
	}
}

func ceilDiv(d, unit time.Duration) int {
	n := int(d / unit)
	if d%unit != 0 {
		n++
	}
	return n
}
