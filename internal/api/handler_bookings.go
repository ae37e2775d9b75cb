package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-inventory-backend/internal/metrics"
	"hotel-inventory-backend/internal/model"
	"hotel-inventory-backend/internal/occupancy"
	"hotel-inventory-backend/internal/store"
)

type createBookingRequest struct {
	GuestName    string          `json:"guest_name" binding:"required"`
	GuestDetails datatypes.JSON  `json:"guest_details"`
	Status       string          `json:"status"`
	CheckIn      string          `json:"check_in" binding:"required"`
	CheckOut     string          `json:"check_out" binding:"required"`
	RoomTypeIDs  []int64         `json:"room_type_ids" binding:"required"`
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, err := time.Parse(dayLayout, req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'check_in' format. Use YYYY-MM-DD."})
		return
	}
	checkOut, err := time.Parse(dayLayout, req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'check_out' format. Use YYYY-MM-DD."})
		return
	}

	booking, err := h.store.CreateBooking(c.Request.Context(), store.CreateBookingRequest{
		GuestName:    req.GuestName,
		GuestDetails: req.GuestDetails,
		Status:       req.Status,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		RoomTypeIDs:  req.RoomTypeIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoCapacity):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, occupancy.ErrInvalidInterval), errors.Is(err, store.ErrInvalidBooking):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	metrics.IncBookingCreated(booking.Status)
	c.JSON(http.StatusCreated, booking)
}

// bookingStatusRow is one row of the status dashboard.
type bookingStatusRow struct {
	ID            int64              `json:"id"`
	ReferenceCode string             `json:"referenceCode"`
	GuestName     string             `json:"guestName"`
	Status        string             `json:"status"`
	CheckIn       string             `json:"checkIn"`
	CheckOut      string             `json:"checkOut"`
	RoomTypeIDs   []int64            `json:"roomTypeIds"`
	Derived       *occupancy.Derived `json:"derived,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// ListBookings handles GET /api/bookings, the status dashboard. The
// optional 'at' parameter (RFC3339) overrides the reference instant so
// reads are reproducible; it defaults to the wall clock.
func (h *Handler) ListBookings(c *gin.Context) {
	now := time.Now()
	if atParam := c.Query("at"); atParam != "" {
		at, err := time.Parse(time.RFC3339, atParam)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' timestamp format. Use RFC3339."})
			return
		}
		now = at
	}

	policy := h.policy
	var hotelID int64
	if hotelParam := c.Query("hotel_id"); hotelParam != "" {
		id, err := strconv.ParseInt(hotelParam, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid hotel ID"})
			return
		}
		hotel, err := h.store.GetHotel(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
			return
		}
		hotelID = id
		policy = h.policyForHotel(hotel)
	}

	bookings, err := h.store.ListBookings(c.Request.Context(), hotelID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return
	}

	rows := make([]bookingStatusRow, 0, len(bookings))
	for _, b := range bookings {
		row := bookingStatusRow{
			ID:            b.ID,
			ReferenceCode: b.ReferenceCode,
			GuestName:     b.GuestName,
			Status:        b.Status,
			CheckIn:       b.CheckIn.Format(dayLayout),
			CheckOut:      b.CheckOut.Format(dayLayout),
		}
		for _, room := range b.Rooms {
			row.RoomTypeIDs = append(row.RoomTypeIDs, room.RoomTypeID)
		}

		derived, err := occupancy.Classify(b.CheckIn, b.CheckOut, b.StillOccupying(), now, policy)
		if err != nil {
			row.Error = err.Error()
		} else {
			if derived.IsLateCheckout {
				metrics.IncLateCheckout()
			}
			row.Derived = &derived
		}
		rows = append(rows, row)
	}
	c.JSON(http.StatusOK, rows)
}

// CancelBooking handles POST /api/bookings/{id}/cancel.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	freed, err := h.store.CancelBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	metrics.IncBookingCancelled()
	h.dispatchFreed(freed)
	c.JSON(http.StatusOK, gin.H{"status": model.BookingStatusCancelled})
}

// CheckInBooking handles POST /api/bookings/{id}/checkin, the
// front-desk check-in mark.
func (h *Handler) CheckInBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.store.MarkCheckedIn(c.Request.Context(), id, time.Now()); err != nil {
		bookingActionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckOutBooking handles POST /api/bookings/{id}/checkout.
func (h *Handler) CheckOutBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	freed, err := h.store.MarkCheckedOut(c.Request.Context(), id, time.Now())
	if err != nil {
		bookingActionError(c, err)
		return
	}
	h.dispatchFreed(freed)
	c.Status(http.StatusNoContent)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return 0, false
	}
	return id, true
}

func bookingActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, store.ErrBookingCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
