package api

import (
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"hotel-inventory-backend/internal/model"
	"hotel-inventory-backend/internal/notification"
	"hotel-inventory-backend/internal/occupancy"
	"hotel-inventory-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	webpush *webpush.Options
	policy  occupancy.Policy
	alerts  *notification.WorkerPool
}

// NewHandler creates a new API handler. alerts may be nil when push is
// disabled.
func NewHandler(s store.Store, webpushOptions *webpush.Options, policy occupancy.Policy, alerts *notification.WorkerPool) *Handler {
	return &Handler{
		store:   s,
		webpush: webpushOptions,
		policy:  policy,
		alerts:  alerts,
	}
}

// policyForHotel builds the checkout policy for one property, falling
// back to the configured default when the hotel's timezone is bad.
func (h *Handler) policyForHotel(hotel model.Hotel) occupancy.Policy {
	policy := h.policy
	if hotel.CheckoutHour > 0 {
		policy.CheckoutHour = hotel.CheckoutHour
	}
	if hotel.Timezone != "" {
		loc, err := time.LoadLocation(hotel.Timezone)
		if err != nil {
			log.Printf("Warning: hotel %d has invalid timezone %q: %v", hotel.ID, hotel.Timezone, err)
		} else {
			policy.Location = loc
		}
	}
	return policy
}

// dispatchFreed hands freed room types to the alert pool, if any.
func (h *Handler) dispatchFreed(roomTypeIDs []int64) {
	if h.alerts == nil {
		return
	}
	for _, id := range roomTypeIDs {
		h.alerts.Dispatch(id)
	}
}
