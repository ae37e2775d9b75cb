package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDate(t *testing.T) {
	room := RoomInventory{ID: 10, Name: "Deluxe King", TotalCount: 5}
	intervals := []Interval{
		{BookingID: 1, RoomTypeID: 10, CheckIn: date(2025, 3, 10), CheckOut: date(2025, 3, 12), Status: StatusConfirmed},
	}

	got := ForDate(room, date(2025, 3, 10), intervals)
	assert.Equal(t, DayAvailability{Date: date(2025, 3, 10), Total: 5, Available: 4}, got)

	got = ForDate(room, date(2025, 3, 12), intervals)
	assert.Equal(t, 5, got.Available, "check-out day frees the room")
}

func TestForDateCancelledStay(t *testing.T) {
	room := RoomInventory{ID: 10, TotalCount: 5}
	intervals := []Interval{
		{BookingID: 1, RoomTypeID: 10, CheckIn: date(2025, 3, 10), CheckOut: date(2025, 3, 12), Status: StatusCancelled},
	}
	for d := date(2025, 3, 9); !d.After(date(2025, 3, 13)); d = d.AddDate(0, 0, 1) {
		assert.Equal(t, 5, ForDate(room, d, intervals).Available)
	}
}

func TestForDateClampsOverbooking(t *testing.T) {
	// Two stays against a single room: the stored data is overbooked,
	// but the reported availability must not go negative.
	room := RoomInventory{ID: 10, TotalCount: 1}
	intervals := []Interval{
		{BookingID: 1, RoomTypeID: 10, CheckIn: date(2025, 3, 10), CheckOut: date(2025, 3, 12), Status: StatusConfirmed},
		{BookingID: 2, RoomTypeID: 10, CheckIn: date(2025, 3, 10), CheckOut: date(2025, 3, 12), Status: StatusConfirmed},
	}
	got := ForDate(room, date(2025, 3, 10), intervals)
	assert.Equal(t, 0, got.Available)
	assert.Equal(t, 1, got.Total)
}

func TestForDateZeroTotal(t *testing.T) {
	room := RoomInventory{ID: 10, TotalCount: 0}
	got := ForDate(room, date(2025, 3, 10), nil)
	assert.Equal(t, DayAvailability{Date: date(2025, 3, 10), Total: 0, Available: 0}, got)
}

func TestForRange(t *testing.T) {
	room := RoomInventory{ID: 10, TotalCount: 2}
	intervals := []Interval{
		{BookingID: 1, RoomTypeID: 10, CheckIn: date(2025, 3, 11), CheckOut: date(2025, 3, 13), Status: StatusConfirmed},
	}

	days := ForRange(room, date(2025, 3, 10), date(2025, 3, 14), intervals)
	require.Len(t, days, 5, "one entry per calendar day, both ends inclusive")

	for i, day := range days {
		assert.Equal(t, date(2025, 3, 10+i), day.Date, "days in ascending order")
	}

	wantAvailable := []int{2, 1, 1, 2, 2}
	for i, day := range days {
		assert.Equalf(t, wantAvailable[i], day.Available, "day %s", day.Date.Format("2006-01-02"))
	}
}

func TestForRangeSingleDay(t *testing.T) {
	room := RoomInventory{ID: 10, TotalCount: 3}
	days := ForRange(room, date(2025, 3, 10), date(2025, 3, 10), nil)
	require.Len(t, days, 1)
	assert.Equal(t, 3, days[0].Available)
}

func TestForRangeIdempotent(t *testing.T) {
	room := RoomInventory{ID: 10, TotalCount: 4}
	intervals := []Interval{
		{BookingID: 1, RoomTypeID: 10, CheckIn: date(2025, 3, 10), CheckOut: date(2025, 3, 20), Status: StatusPending},
	}
	first := ForRange(room, date(2025, 3, 8), date(2025, 3, 22), intervals)
	second := ForRange(room, date(2025, 3, 8), date(2025, 3, 22), intervals)
	assert.Equal(t, first, second)
}

func TestBadge(t *testing.T) {
	testCases := []struct {
		name      string
		available int
		total     int
		want      string
	}{
		{"none left", 0, 5, BadgeFullyBooked},
		{"some left", 2, 5, BadgePartiallyAvailable},
		{"all left", 5, 5, BadgeFullyAvailable},
		{"one of one left", 1, 1, BadgeFullyAvailable},
		{"zero of one left", 0, 1, BadgeFullyBooked},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Badge(tc.available, tc.total))
		})
	}
}

func TestOccupancyRateAndSeverity(t *testing.T) {
	testCases := []struct {
		name      string
		available int
		total     int
		wantRate  float64
		wantTier  Severity
	}{
		{"empty house", 10, 10, 0, SeverityLow},
		{"under half", 6, 10, 40, SeverityLow},
		{"exactly half", 5, 10, 50, SeverityMedium},
		{"busy", 3, 10, 70, SeverityMedium},
		{"exactly eighty", 2, 10, 80, SeverityHigh},
		{"full house", 0, 10, 100, SeverityHigh},
		{"zero total reads as empty", 0, 0, 0, SeverityLow},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate := OccupancyRate(tc.available, tc.total)
			assert.InDelta(t, tc.wantRate, rate, 0.001)
			assert.Equal(t, tc.wantTier, SeverityFor(rate))
		})
	}
}
