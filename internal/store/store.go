package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hotel-inventory-backend/internal/model"
	"hotel-inventory-backend/internal/occupancy"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	GetHotel(ctx context.Context, id int64) (model.Hotel, error)
	GetHotelBySlug(ctx context.Context, slug string) (model.Hotel, error)

	RoomTypesForHotel(ctx context.Context, hotelID int64) ([]model.RoomType, error)
	CreateRoomType(ctx context.Context, rt *model.RoomType) error
	UpdateRoomType(ctx context.Context, rt *model.RoomType) error
	SetTotalCounts(ctx context.Context, hotelID int64, counts map[int64]int) error
	DeleteRoomType(ctx context.Context, id int64) error

	IntervalsForRoomTypes(ctx context.Context, roomTypeIDs []int64, from, to time.Time) ([]occupancy.Interval, error)

	CreateBooking(ctx context.Context, req CreateBookingRequest) (model.Booking, error)
	CancelBooking(ctx context.Context, id int64) ([]int64, error)
	MarkCheckedIn(ctx context.Context, id int64, at time.Time) error
	MarkCheckedOut(ctx context.Context, id int64, at time.Time) ([]int64, error)
	ListBookings(ctx context.Context, hotelID int64) ([]model.Booking, error)
	GetBooking(ctx context.Context, id int64) (model.Booking, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for read-only handlers.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetHotel(ctx context.Context, id int64) (model.Hotel, error) {
	var hotel model.Hotel
	err := s.db.WithContext(ctx).First(&hotel, id).Error
	return hotel, err
}

func (s *gormStore) GetHotelBySlug(ctx context.Context, slug string) (model.Hotel, error) {
	var hotel model.Hotel
	err := s.db.WithContext(ctx).First(&hotel, "slug = ?", slug).Error
	return hotel, err
}

func (s *gormStore) RoomTypesForHotel(ctx context.Context, hotelID int64) ([]model.RoomType, error) {
	var types []model.RoomType
	err := s.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("id").Find(&types).Error
	return types, err
}

func (s *gormStore) CreateRoomType(ctx context.Context, rt *model.RoomType) error {
	if rt.TotalCount < 0 {
		return fmt.Errorf("room type %q: %w", rt.Name, ErrNegativeCount)
	}
	return s.db.WithContext(ctx).Create(rt).Error
}

func (s *gormStore) UpdateRoomType(ctx context.Context, rt *model.RoomType) error {
	if rt.TotalCount < 0 {
		return fmt.Errorf("room type %d: %w", rt.ID, ErrNegativeCount)
	}
	res := s.db.WithContext(ctx).Model(&model.RoomType{}).Where("id = ?", rt.ID).
		Updates(map[string]any{
			"name":        rt.Name,
			"description": rt.Description,
			"total_count": rt.TotalCount,
			"capacity":    rt.Capacity,
			"price":       rt.Price,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetTotalCounts applies a bulk inventory edit. All counts are
// validated up front; the edit is all-or-nothing.
func (s *gormStore) SetTotalCounts(ctx context.Context, hotelID int64, counts map[int64]int) error {
	for id, count := range counts {
		if count < 0 {
			return fmt.Errorf("room type %d: %w", id, ErrNegativeCount)
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, count := range counts {
			res := tx.Model(&model.RoomType{}).
				Where("id = ? AND hotel_id = ?", id, hotelID).
				Update("total_count", count)
			if res.Error != nil {
				return fmt.Errorf("failed to update room type %d: %w", id, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("room type %d not in hotel %d: %w", id, hotelID, gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}

// DeleteRoomType removes a room type unless active bookings still
// reference it.
func (s *gormStore) DeleteRoomType(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&model.BookingRoom{}).
			Joins("JOIN bookings ON bookings.id = booking_rooms.booking_id").
			Where("booking_rooms.room_type_id = ?", id).
			Where("bookings.status <> ?", model.BookingStatusCancelled).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to count active bookings for room type %d: %w", id, err)
		}
		if active > 0 {
			return fmt.Errorf("room type %d: %w", id, ErrRoomTypeInUse)
		}

		res := tx.Delete(&model.RoomType{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IntervalsForRoomTypes fetches every non-cancelled stay touching the
// given room types in the day window [from, to]. Malformed rows are
// excluded from occupancy and logged.
func (s *gormStore) IntervalsForRoomTypes(ctx context.Context, roomTypeIDs []int64, from, to time.Time) ([]occupancy.Interval, error) {
	return intervalsForRoomTypes(s.db.WithContext(ctx), roomTypeIDs, from, to)
}

type intervalRow struct {
	BookingID  int64
	RoomTypeID int64
	CheckIn    time.Time
	CheckOut   time.Time
	Status     string
}

func intervalsForRoomTypes(tx *gorm.DB, roomTypeIDs []int64, from, to time.Time) ([]occupancy.Interval, error) {
	if len(roomTypeIDs) == 0 {
		return nil, nil
	}

	var rows []intervalRow
	err := tx.Model(&model.BookingRoom{}).
		Select("booking_rooms.booking_id, booking_rooms.room_type_id, bookings.check_in, bookings.check_out, bookings.status").
		Joins("JOIN bookings ON bookings.id = booking_rooms.booking_id").
		Where("booking_rooms.room_type_id IN ?", roomTypeIDs).
		Where("bookings.status <> ?", model.BookingStatusCancelled).
		Where("bookings.check_in <= ? AND bookings.check_out > ?", occupancy.Day(to), occupancy.Day(from)).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking intervals: %w", err)
	}

	intervals := make([]occupancy.Interval, 0, len(rows))
	for _, row := range rows {
		iv := occupancy.Interval{
			BookingID:  row.BookingID,
			RoomTypeID: row.RoomTypeID,
			CheckIn:    row.CheckIn,
			CheckOut:   row.CheckOut,
			Status:     occupancy.BookingStatus(row.Status),
		}
		if err := iv.Validate(); err != nil {
			log.Printf("Warning: excluding malformed stay from occupancy: %v", err)
			continue
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// CreateBooking creates a booking and its room rows transactionally,
// re-checking capacity for every requested night inside the
// transaction. This is the write-path guard against over-subscribing a
// room type between an availability read and the write.
func (s *gormStore) CreateBooking(ctx context.Context, req CreateBookingRequest) (model.Booking, error) {
	var booking model.Booking

	stay := occupancy.Interval{CheckIn: req.CheckIn, CheckOut: req.CheckOut}
	if err := stay.Validate(); err != nil {
		return booking, err
	}
	if len(req.RoomTypeIDs) == 0 {
		return booking, fmt.Errorf("booking must hold at least one room: %w", ErrInvalidBooking)
	}

	status := req.Status
	if status == "" {
		status = model.BookingStatusPending
	}
	if status != model.BookingStatusPending && status != model.BookingStatusConfirmed {
		return booking, fmt.Errorf("booking status %q: %w", status, ErrInvalidBooking)
	}

	requested := make(map[int64]int)
	for _, id := range req.RoomTypeIDs {
		requested[id]++
	}
	ids := make([]int64, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomTypes []model.RoomType
		if err := tx.Find(&roomTypes, ids).Error; err != nil {
			return fmt.Errorf("failed to fetch room types: %w", err)
		}
		if len(roomTypes) != len(ids) {
			return fmt.Errorf("unknown room type in request: %w", gorm.ErrRecordNotFound)
		}

		intervals, err := intervalsForRoomTypes(tx, ids, req.CheckIn, req.CheckOut.AddDate(0, 0, -1))
		if err != nil {
			return err
		}

		for _, rt := range roomTypes {
			for d := occupancy.Day(req.CheckIn); d.Before(occupancy.Day(req.CheckOut)); d = d.AddDate(0, 0, 1) {
				occupied := occupancy.OccupiedCount(rt.ID, d, intervals)
				if occupied+requested[rt.ID] > rt.TotalCount {
					return fmt.Errorf("room type %d on %s: %w", rt.ID, d.Format("2006-01-02"), ErrNoCapacity)
				}
			}
		}

		booking = model.Booking{
			ReferenceCode: newReferenceCode(),
			GuestName:     req.GuestName,
			GuestDetails:  req.GuestDetails,
			Status:        status,
			CheckIn:       occupancy.Day(req.CheckIn),
			CheckOut:      occupancy.Day(req.CheckOut),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		rooms := make([]model.BookingRoom, 0, len(req.RoomTypeIDs))
		for _, id := range req.RoomTypeIDs {
			rooms = append(rooms, model.BookingRoom{BookingID: booking.ID, RoomTypeID: id})
		}
		if err := tx.Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to create booking rooms: %w", err)
		}
		booking.Rooms = rooms
		return nil
	})
	return booking, err
}

// CancelBooking marks a booking cancelled and returns the room type
// IDs its rooms held, so callers can dispatch availability alerts.
// Cancelling twice is a no-op that frees nothing.
func (s *gormStore) CancelBooking(ctx context.Context, id int64) ([]int64, error) {
	var freed []int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.Preload("Rooms").First(&booking, id).Error; err != nil {
			return err
		}
		if booking.Status == model.BookingStatusCancelled {
			return nil
		}

		if err := tx.Model(&model.Booking{}).Where("id = ?", id).
			Update("status", model.BookingStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel booking %d: %w", id, err)
		}

		seen := make(map[int64]bool)
		for _, room := range booking.Rooms {
			if !seen[room.RoomTypeID] {
				seen[room.RoomTypeID] = true
				freed = append(freed, room.RoomTypeID)
			}
		}
		return nil
	})
	return freed, err
}

// MarkCheckedIn records the front-desk check-in.
func (s *gormStore) MarkCheckedIn(ctx context.Context, id int64, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			return err
		}
		if booking.Status == model.BookingStatusCancelled {
			return fmt.Errorf("booking %d: %w", id, ErrBookingCancelled)
		}
		return tx.Model(&model.Booking{}).Where("id = ?", id).
			Update("checked_in_at", at).Error
	})
}

// MarkCheckedOut records the front-desk check-out and returns the room
// type IDs freed, so callers can dispatch availability alerts.
func (s *gormStore) MarkCheckedOut(ctx context.Context, id int64, at time.Time) ([]int64, error) {
	var freed []int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.Preload("Rooms").First(&booking, id).Error; err != nil {
			return err
		}
		if booking.Status == model.BookingStatusCancelled {
			return fmt.Errorf("booking %d: %w", id, ErrBookingCancelled)
		}

		if err := tx.Model(&model.Booking{}).Where("id = ?", id).
			Update("checked_out_at", at).Error; err != nil {
			return fmt.Errorf("failed to mark booking %d checked out: %w", id, err)
		}

		seen := make(map[int64]bool)
		for _, room := range booking.Rooms {
			if !seen[room.RoomTypeID] {
				seen[room.RoomTypeID] = true
				freed = append(freed, room.RoomTypeID)
			}
		}
		return nil
	})
	return freed, err
}

// ListBookings returns the status-dashboard feed. A zero hotelID
// returns every booking.
func (s *gormStore) ListBookings(ctx context.Context, hotelID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	q := s.db.WithContext(ctx).Preload("Rooms").Order("check_in, id")
	if hotelID != 0 {
		q = q.Where(
			"id IN (?)",
			s.db.Model(&model.BookingRoom{}).
				Select("booking_rooms.booking_id").
				Joins("JOIN room_types ON room_types.id = booking_rooms.room_type_id").
				Where("room_types.hotel_id = ?", hotelID),
		)
	}
	err := q.Find(&bookings).Error
	return bookings, err
}

func (s *gormStore) GetBooking(ctx context.Context, id int64) (model.Booking, error) {
	var booking model.Booking
	err := s.db.WithContext(ctx).Preload("Rooms").First(&booking, id).Error
	return booking, err
}

// newReferenceCode builds a short human-quotable booking reference.
func newReferenceCode() string {
	return "BK-" + strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}
