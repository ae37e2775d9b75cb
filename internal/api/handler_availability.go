package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-inventory-backend/internal/metrics"
	"hotel-inventory-backend/internal/model"
	"hotel-inventory-backend/internal/occupancy"
)

const dayLayout = "2006-01-02"

// Calendar views are bounded so one request cannot ask for years of
// per-day rows.
const maxRangeDays = 366

// roomTypeSnapshot is one room type's availability on a single date.
type roomTypeSnapshot struct {
	RoomTypeID    int64              `json:"roomTypeId"`
	Name          string             `json:"name"`
	Capacity      int                `json:"capacity"`
	Price         float64            `json:"price"`
	Date          string             `json:"date"`
	Total         int                `json:"total"`
	Available     int                `json:"available"`
	Badge         string             `json:"badge"`
	OccupancyRate float64            `json:"occupancyRate"`
	Severity      occupancy.Severity `json:"severity"`
}

// calendarDay is one cell of the calendar grid.
type calendarDay struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Badge     string `json:"badge"`
}

// roomTypeCalendar is one room type's row of the calendar grid.
type roomTypeCalendar struct {
	RoomTypeID int64         `json:"roomTypeId"`
	Name       string        `json:"name"`
	Days       []calendarDay `json:"days"`
}

// GetAvailability handles GET /api/hotels/{hotel_id}/availability.
// With ?date= it returns a single-date snapshot; with ?from=&to= it
// returns a calendar grid, both ends inclusive.
func (h *Handler) GetAvailability(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("hotel_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid hotel ID"})
		return
	}

	if _, err := h.store.GetHotel(c.Request.Context(), hotelID); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
		return
	}

	types, err := h.store.RoomTypesForHotel(c.Request.Context(), hotelID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve room types"})
		return
	}

	if dateParam := c.Query("date"); dateParam != "" {
		date, err := time.Parse(dayLayout, dateParam)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'date' format. Use YYYY-MM-DD."})
			return
		}
		h.snapshotAvailability(c, types, date)
		return
	}

	from, err := time.Parse(dayLayout, c.Query("from"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Provide 'date' or both 'from' and 'to' as YYYY-MM-DD."})
		return
	}
	to, err := time.Parse(dayLayout, c.Query("to"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Provide 'date' or both 'from' and 'to' as YYYY-MM-DD."})
		return
	}
	if to.Before(from) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "'to' must not precede 'from'"})
		return
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date range too large"})
		return
	}
	h.calendarAvailability(c, types, from, to)
}

func (h *Handler) snapshotAvailability(c *gin.Context, types []model.RoomType, date time.Time) {
	intervals, err := h.intervalsFor(c, types, date, date)
	if err != nil {
		return
	}

	response := make([]roomTypeSnapshot, 0, len(types))
	for _, rt := range types {
		day := occupancy.ForDate(inventoryOf(rt), date, intervals)
		rate := occupancy.OccupancyRate(day.Available, day.Total)
		response = append(response, roomTypeSnapshot{
			RoomTypeID:    rt.ID,
			Name:          rt.Name,
			Capacity:      rt.Capacity,
			Price:         rt.Price,
			Date:          day.Date.Format(dayLayout),
			Total:         day.Total,
			Available:     day.Available,
			Badge:         occupancy.Badge(day.Available, day.Total),
			OccupancyRate: rate,
			Severity:      occupancy.SeverityFor(rate),
		})
	}

	metrics.IncAvailabilityRequest("snapshot")
	c.JSON(http.StatusOK, response)
}

func (h *Handler) calendarAvailability(c *gin.Context, types []model.RoomType, from, to time.Time) {
	intervals, err := h.intervalsFor(c, types, from, to)
	if err != nil {
		return
	}

	response := make([]roomTypeCalendar, 0, len(types))
	for _, rt := range types {
		days := occupancy.ForRange(inventoryOf(rt), from, to, intervals)
		row := roomTypeCalendar{RoomTypeID: rt.ID, Name: rt.Name, Days: make([]calendarDay, 0, len(days))}
		for _, day := range days {
			row.Days = append(row.Days, calendarDay{
				Date:      day.Date.Format(dayLayout),
				Total:     day.Total,
				Available: day.Available,
				Badge:     occupancy.Badge(day.Available, day.Total),
			})
		}
		response = append(response, row)
	}

	metrics.IncAvailabilityRequest("calendar")
	c.JSON(http.StatusOK, response)
}

// intervalsFor fetches the stays touching the given room types in the
// window, answering 500 on failure.
func (h *Handler) intervalsFor(c *gin.Context, types []model.RoomType, from, to time.Time) ([]occupancy.Interval, error) {
	ids := make([]int64, len(types))
	for i, rt := range types {
		ids[i] = rt.ID
	}
	intervals, err := h.store.IntervalsForRoomTypes(c.Request.Context(), ids, from, to)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bookings"})
		return nil, err
	}
	return intervals, nil
}

func inventoryOf(rt model.RoomType) occupancy.RoomInventory {
	return occupancy.RoomInventory{
		ID:         rt.ID,
		Name:       rt.Name,
		TotalCount: rt.TotalCount,
		Capacity:   rt.Capacity,
		Price:      rt.Price,
	}
}
