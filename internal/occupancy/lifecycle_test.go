package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	policy := Policy{CheckoutHour: 12, Location: time.UTC}
	checkIn := date(2025, 3, 10)
	checkOut := date(2025, 3, 12)
	checkoutNoon := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		stillOccupying bool
		now            time.Time
		wantCode       int
		wantLate       bool
		wantMessage    string
	}{
		{
			name:        "well before arrival",
			now:         time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC),
			wantCode:    CodeUpcoming,
			wantMessage: "Arriving in 3 day(s)",
		},
		{
			name:        "fractional days until arrival round up",
			now:         time.Date(2025, 3, 7, 14, 24, 0, 0, time.UTC), // 2.4 days out
			wantCode:    CodeUpcoming,
			wantMessage: "Arriving in 3 day(s)",
		},
		{
			name:        "exactly at check-in",
			now:         checkIn,
			wantCode:    CodeCheckedIn,
			wantMessage: "Checkout in 60 hour(s)",
		},
		{
			name:        "mid-stay",
			now:         time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC),
			wantCode:    CodeCheckedIn,
			wantMessage: "Checkout in 27 hour(s)",
		},
		{
			name:        "checkout morning before noon",
			now:         time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
			wantCode:    CodeCheckedIn,
			wantMessage: "Checkout in 2 hour(s)",
		},
		{
			name:        "at the checkout instant, not occupying",
			now:         checkoutNoon,
			wantCode:    CodeCheckedOut,
			wantMessage: "Checked out on Mar 12, 2025",
		},
		{
			name:           "at the checkout instant, still occupying",
			stillOccupying: true,
			now:            checkoutNoon,
			wantCode:       CodeCheckedIn,
			wantLate:       true,
			wantMessage:    "Late checkout (0h past due)",
		},
		{
			name:           "two and a half hours overdue floors to 2",
			stillOccupying: true,
			now:            time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC),
			wantCode:       CodeCheckedIn,
			wantLate:       true,
			wantMessage:    "Late checkout (2h past due)",
		},
		{
			name:        "days past the stay",
			now:         time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			wantCode:    CodeCheckedOut,
			wantMessage: "Checked out on Mar 12, 2025",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(checkIn, checkOut, tc.stillOccupying, tc.now, policy)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCode, got.Code)
			assert.Equal(t, tc.wantLate, got.IsLateCheckout)
			assert.Equal(t, tc.wantMessage, got.Message)
			if got.IsLateCheckout {
				assert.Equal(t, CodeCheckedIn, got.Code, "late checkout is a sub-state of CheckedIn")
			}
		})
	}
}

func TestClassifyRejectsMalformedStay(t *testing.T) {
	policy := Policy{}
	now := date(2025, 3, 11)

	_, err := Classify(date(2025, 3, 12), date(2025, 3, 10), false, now, policy)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Classify(date(2025, 3, 10), date(2025, 3, 10), false, now, policy)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestClassifyMonotonic(t *testing.T) {
	// Sweep the clock across the stay in 30 minute steps: the code must
	// never decrease, with or without the occupying signal.
	policy := Policy{CheckoutHour: 12, Location: time.UTC}
	checkIn := date(2025, 3, 10)
	checkOut := date(2025, 3, 12)

	for _, stillOccupying := range []bool{false, true} {
		prev := -1
		for now := date(2025, 3, 8); now.Before(date(2025, 3, 16)); now = now.Add(30 * time.Minute) {
			got, err := Classify(checkIn, checkOut, stillOccupying, now, policy)
			require.NoError(t, err)
			require.GreaterOrEqualf(t, got.Code, prev,
				"status went backwards at %s (stillOccupying=%v)", now, stillOccupying)
			prev = got.Code
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	policy := Policy{CheckoutHour: 11, Location: time.UTC}
	now := time.Date(2025, 3, 11, 8, 15, 0, 0, time.UTC)

	first, err := Classify(date(2025, 3, 10), date(2025, 3, 12), true, now, policy)
	require.NoError(t, err)
	second, err := Classify(date(2025, 3, 10), date(2025, 3, 12), true, now, policy)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCheckoutInstant(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	got := CheckoutInstant(date(2025, 3, 12), Policy{CheckoutHour: 14, Location: loc})
	assert.Equal(t, time.Date(2025, 3, 12, 14, 0, 0, 0, loc), got)

	// Zero-value policy falls back to noon UTC.
	got = CheckoutInstant(date(2025, 3, 12), Policy{})
	assert.Equal(t, time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC), got)
}

func TestClassifyCustomCheckoutHour(t *testing.T) {
	policy := Policy{CheckoutHour: 10, Location: time.UTC}
	checkIn := date(2025, 3, 10)
	checkOut := date(2025, 3, 12)

	got, err := Classify(checkIn, checkOut, false, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), policy)
	require.NoError(t, err)
	assert.Equal(t, CodeCheckedIn, got.Code)
	assert.Equal(t, "Checkout in 1 hour(s)", got.Message)

	got, err = Classify(checkIn, checkOut, false, time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), policy)
	require.NoError(t, err)
	assert.Equal(t, CodeCheckedOut, got.Code)
}
