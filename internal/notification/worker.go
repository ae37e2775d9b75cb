package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"hotel-inventory-backend/internal/metrics"
	"hotel-inventory-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool sends availability alerts when rooms of a type free up
// (cancellation or check-out of a fully booked type).
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case roomTypeID := <-wp.jobs:
			log.Printf("Worker %d processing room type %d", id, roomTypeID)
			wp.sendAlertsForRoomType(ctx, roomTypeID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a freed room type to the worker pool.
func (wp *WorkerPool) Dispatch(roomTypeID int64) {
	wp.jobs <- roomTypeID
}

// sendAlertsForRoomType fetches subscriptions and alerts them that the
// given room type has availability again.
func (wp *WorkerPool) sendAlertsForRoomType(ctx context.Context, roomTypeID int64) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_room_type_mapping srm ON srm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("srm.room_type_id = ?", roomTypeID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for room type %d: %v", roomTypeID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d alerts for room type %d", len(subscriptions), roomTypeID)

	var roomType model.RoomType
	label := fmt.Sprintf("%d", roomTypeID)
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&roomType, roomTypeID).Error; err != nil {
		log.Printf("Error fetching room type %d: %v", roomTypeID, err)
	} else if roomType.Name != "" {
		label = roomType.Name
	}

	message := fmt.Sprintf("Room type %s has availability again!", label)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending alert to %s: %v", sub.Endpoint, err)
		metrics.IncPushSent("error")
		return
	}
	defer resp.Body.Close()

	// Expired subscriptions are removed so they are not retried.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
		metrics.IncPushSent("expired")
		return
	}

	metrics.IncPushSent("ok")
}
