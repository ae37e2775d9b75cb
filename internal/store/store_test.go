package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-inventory-backend/internal/model"
)

// newTestStore opens a fresh in-memory SQLite database per test.
func newTestStore(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Hotel{},
		&model.RoomType{},
		&model.Booking{},
		&model.BookingRoom{},
		&model.PushSubscription{},
	))
	return NewGormStore(db)
}

func seedRoomType(t *testing.T, s Store, totalCount int) model.RoomType {
	t.Helper()
	hotel := model.Hotel{Name: "Harbor View", Slug: "harbor-view-" + strings.ReplaceAll(t.Name(), "/", "-"), Timezone: "UTC", CheckoutHour: 12}
	require.NoError(t, s.DB().Create(&hotel).Error)

	rt := model.RoomType{HotelID: hotel.ID, Name: "Deluxe King", TotalCount: totalCount, Capacity: 2, Price: 180}
	require.NoError(t, s.CreateRoomType(context.Background(), &rt))
	return rt
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestCreateBookingCapacity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 1)

	first, err := s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Ada",
		Status:      model.BookingStatusConfirmed,
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ReferenceCode, "BK-"))
	assert.Len(t, first.Rooms, 1)

	// Same-day turnover: arriving on the previous guest's check-out day
	// is not a conflict.
	_, err = s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Grace",
		Status:      model.BookingStatusConfirmed,
		CheckIn:     day(2025, 3, 12),
		CheckOut:    day(2025, 3, 14),
		RoomTypeIDs: []int64{rt.ID},
	})
	require.NoError(t, err)

	// Overlapping the occupied nights exceeds the single room.
	_, err = s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Eve",
		CheckIn:     day(2025, 3, 11),
		CheckOut:    day(2025, 3, 13),
		RoomTypeIDs: []int64{rt.ID},
	})
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestCreateBookingMultiRoom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 2)

	// Two rooms of the same type in one booking fill the type.
	booking, err := s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Ada",
		Status:      model.BookingStatusConfirmed,
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID, rt.ID},
	})
	require.NoError(t, err)
	assert.Len(t, booking.Rooms, 2)

	_, err = s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Eve",
		CheckIn:     day(2025, 3, 11),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestCreateBookingValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 1)

	_, err := s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Ada",
		CheckIn:     day(2025, 3, 12),
		CheckOut:    day(2025, 3, 10),
		RoomTypeIDs: []int64{rt.ID},
	})
	assert.Error(t, err, "reversed stay must be rejected")

	_, err = s.CreateBooking(ctx, CreateBookingRequest{
		GuestName: "Ada",
		CheckIn:   day(2025, 3, 10),
		CheckOut:  day(2025, 3, 12),
	})
	assert.Error(t, err, "booking without rooms must be rejected")

	_, err = s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Ada",
		Status:      model.BookingStatusCancelled,
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	assert.Error(t, err, "bookings cannot be created cancelled")
}

func TestCancelBookingFreesCapacity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 1)

	booking, err := s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Ada",
		Status:      model.BookingStatusConfirmed,
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	require.NoError(t, err)

	freed, err := s.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{rt.ID}, freed)

	// Cancelling again is a no-op and frees nothing.
	freed, err = s.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Empty(t, freed)

	// The room is bookable again.
	_, err = s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Eve",
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	assert.NoError(t, err)
}

func TestSetTotalCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 5)

	err := s.SetTotalCounts(ctx, rt.HotelID, map[int64]int{rt.ID: -1})
	assert.ErrorIs(t, err, ErrNegativeCount)

	err = s.SetTotalCounts(ctx, rt.HotelID, map[int64]int{rt.ID + 999: 3})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, s.SetTotalCounts(ctx, rt.HotelID, map[int64]int{rt.ID: 8}))
	types, err := s.RoomTypesForHotel(ctx, rt.HotelID)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, 8, types[0].TotalCount)
}

func TestDeleteRoomTypeGuard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 1)

	booking, err := s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Ada",
		Status:      model.BookingStatusConfirmed,
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	require.NoError(t, err)

	err = s.DeleteRoomType(ctx, rt.ID)
	assert.ErrorIs(t, err, ErrRoomTypeInUse)

	_, err = s.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)

	assert.NoError(t, s.DeleteRoomType(ctx, rt.ID))
}

func TestIntervalsForRoomTypes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 3)

	inRange, err := s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Ada",
		Status:      model.BookingStatusConfirmed,
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	require.NoError(t, err)

	cancelled, err := s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Eve",
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	require.NoError(t, err)
	_, err = s.CancelBooking(ctx, cancelled.ID)
	require.NoError(t, err)

	_, err = s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Grace",
		Status:      model.BookingStatusConfirmed,
		CheckIn:     day(2025, 4, 1),
		CheckOut:    day(2025, 4, 3),
		RoomTypeIDs: []int64{rt.ID},
	})
	require.NoError(t, err)

	intervals, err := s.IntervalsForRoomTypes(ctx, []int64{rt.ID}, day(2025, 3, 9), day(2025, 3, 15))
	require.NoError(t, err)
	require.Len(t, intervals, 1, "cancelled and out-of-window stays excluded")
	assert.Equal(t, inRange.ID, intervals[0].BookingID)
}

func TestMarkCheckedInAndOut(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 1)

	booking, err := s.CreateBooking(ctx, CreateBookingRequest{
		GuestName:   "Ada",
		Status:      model.BookingStatusConfirmed,
		CheckIn:     day(2025, 3, 10),
		CheckOut:    day(2025, 3, 12),
		RoomTypeIDs: []int64{rt.ID},
	})
	require.NoError(t, err)

	checkInAt := time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC)
	require.NoError(t, s.MarkCheckedIn(ctx, booking.ID, checkInAt))

	got, err := s.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CheckedInAt)
	assert.True(t, got.StillOccupying())

	freed, err := s.MarkCheckedOut(ctx, booking.ID, time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []int64{rt.ID}, freed)

	got, err = s.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.False(t, got.StillOccupying())
}

func TestGetHotelBySlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rt := seedRoomType(t, s, 3)

	seeded, err := s.GetHotel(ctx, rt.HotelID)
	require.NoError(t, err)

	got, err := s.GetHotelBySlug(ctx, seeded.Slug)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, seeded.Name, got.Name)

	_, err = s.GetHotelBySlug(ctx, "no-such-hotel")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
