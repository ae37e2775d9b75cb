package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotel-inventory-backend/internal/model"
	"hotel-inventory-backend/internal/store"
)

// ListRoomTypes handles GET /api/hotels/{hotel_id}/room-types.
func (h *Handler) ListRoomTypes(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("hotel_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid hotel ID"})
		return
	}

	types, err := h.store.RoomTypesForHotel(c.Request.Context(), hotelID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve room types"})
		return
	}
	c.JSON(http.StatusOK, types)
}

type roomTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	TotalCount  *int    `json:"total_count" binding:"required"`
	Capacity    int     `json:"capacity"`
	Price       float64 `json:"price"`
}

// CreateRoomType handles POST /api/hotels/{hotel_id}/room-types.
func (h *Handler) CreateRoomType(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("hotel_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid hotel ID"})
		return
	}

	var req roomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rt := model.RoomType{
		HotelID:     hotelID,
		Name:        req.Name,
		Description: req.Description,
		TotalCount:  *req.TotalCount,
		Capacity:    req.Capacity,
		Price:       req.Price,
	}
	if err := h.store.CreateRoomType(c.Request.Context(), &rt); err != nil {
		if errors.Is(err, store.ErrNegativeCount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rt)
}

// UpdateRoomType handles PUT /api/room-types/{id}.
func (h *Handler) UpdateRoomType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room type ID"})
		return
	}

	var req roomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rt := model.RoomType{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		TotalCount:  *req.TotalCount,
		Capacity:    req.Capacity,
		Price:       req.Price,
	}
	if err := h.store.UpdateRoomType(c.Request.Context(), &rt); err != nil {
		switch {
		case errors.Is(err, store.ErrNegativeCount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room type not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, rt)
}

type totalCountEdit struct {
	RoomTypeID int64 `json:"room_type_id" binding:"required"`
	TotalCount *int  `json:"total_count" binding:"required"`
}

// SetTotalCounts handles PATCH /api/hotels/{hotel_id}/room-types/counts,
// the bulk inventory edit.
func (h *Handler) SetTotalCounts(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("hotel_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid hotel ID"})
		return
	}

	var edits []totalCountEdit
	if err := c.ShouldBindJSON(&edits); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(edits) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no edits given"})
		return
	}

	counts := make(map[int64]int, len(edits))
	for _, edit := range edits {
		counts[edit.RoomTypeID] = *edit.TotalCount
	}

	if err := h.store.SetTotalCounts(c.Request.Context(), hotelID, counts); err != nil {
		switch {
		case errors.Is(err, store.ErrNegativeCount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRoomType handles DELETE /api/room-types/{id}.
func (h *Handler) DeleteRoomType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room type ID"})
		return
	}

	if err := h.store.DeleteRoomType(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrRoomTypeInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room type not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
