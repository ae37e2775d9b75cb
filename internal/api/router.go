package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"hotel-inventory-backend/config"
	"hotel-inventory-backend/internal/mw"
	"hotel-inventory-backend/internal/notification"
	"hotel-inventory-backend/internal/occupancy"
	"hotel-inventory-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, webpushOptions *webpush.Options, cfg *config.Config, alerts *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	db := s.DB()
	policy := occupancy.Policy{CheckoutHour: cfg.Booking.CheckoutHour}
	if loc, err := time.LoadLocation(cfg.Booking.Timezone); err == nil {
		policy.Location = loc
	}
	handler := NewHandler(s, webpushOptions, policy, alerts)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/hotels", caching, GetHotels(db))
		api.GET("/hotels/slug/:slug", caching, handler.GetHotelBySlug)

		api.GET("/hotels/:hotel_id/room-types", handler.ListRoomTypes)
		api.POST("/hotels/:hotel_id/room-types", handler.CreateRoomType)
		api.PATCH("/hotels/:hotel_id/room-types/counts", handler.SetTotalCounts)
		api.PUT("/room-types/:id", handler.UpdateRoomType)
		api.DELETE("/room-types/:id", handler.DeleteRoomType)

		api.GET("/hotels/:hotel_id/availability", caching, handler.GetAvailability)

		api.POST("/bookings", handler.CreateBooking)
		api.GET("/bookings", handler.ListBookings)
		api.POST("/bookings/:id/cancel", handler.CancelBooking)
		api.POST("/bookings/:id/checkin", handler.CheckInBooking)
		api.POST("/bookings/:id/checkout", handler.CheckOutBooking)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
