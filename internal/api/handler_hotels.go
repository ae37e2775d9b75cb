package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotel-inventory-backend/internal/model"
)

// HotelResponse represents the API response for a single hotel.
type HotelResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Timezone      string `json:"timezone"`
	CheckoutHour  int    `json:"checkoutHour"`
	RoomTypeCount int64  `json:"roomTypeCount"`
	TotalRooms    int    `json:"totalRooms"`
}

// GetHotels handles the GET /api/hotels request.
func GetHotels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var hotels []model.Hotel
		if err := db.Find(&hotels).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hotels"})
			return
		}

		type aggRow struct {
			HotelID       int64
			RoomTypeCount int64
			TotalRooms    int
		}
		var aggs []aggRow
		if err := db.
			Model(&model.RoomType{}).
			Select("hotel_id as hotel_id, COUNT(*) as room_type_count, COALESCE(SUM(total_count), 0) as total_rooms").
			Group("hotel_id").
			Scan(&aggs).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate room types"})
			return
		}

		aggMap := make(map[int64]aggRow, len(aggs))
		for _, a := range aggs {
			aggMap[a.HotelID] = a
		}

		responses := make([]HotelResponse, 0, len(hotels))
		for _, h := range hotels {
			a := aggMap[h.ID]
			responses = append(responses, HotelResponse{
				ID: h.ID, Name: h.Name, Slug: h.Slug,
				Timezone: h.Timezone, CheckoutHour: h.CheckoutHour,
				RoomTypeCount: a.RoomTypeCount, TotalRooms: a.TotalRooms,
			})
		}
		c.JSON(http.StatusOK, responses)
	}
}

// GetHotelBySlug handles GET /api/hotels/slug/{slug}, the stable
// public lookup for one property.
func (h *Handler) GetHotelBySlug(c *gin.Context) {
	hotel, err := h.store.GetHotelBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hotel"})
		}
		return
	}

	var agg struct {
		RoomTypeCount int64
		TotalRooms    int
	}
	if err := h.store.DB().
		Model(&model.RoomType{}).
		Select("COUNT(*) as room_type_count, COALESCE(SUM(total_count), 0) as total_rooms").
		Where("hotel_id = ?", hotel.ID).
		Scan(&agg).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate room types"})
		return
	}

	c.JSON(http.StatusOK, HotelResponse{
		ID: hotel.ID, Name: hotel.Name, Slug: hotel.Slug,
		Timezone: hotel.Timezone, CheckoutHour: hotel.CheckoutHour,
		RoomTypeCount: agg.RoomTypeCount, TotalRooms: agg.TotalRooms,
	})
}
