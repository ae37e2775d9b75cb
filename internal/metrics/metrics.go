package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_inventory",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel_inventory",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	availabilityRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_inventory",
			Name:      "availability_requests_total",
			Help:      "Count of availability reads by view.",
		},
		[]string{"view"},
	)

	lateCheckouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel_inventory",
			Name:      "late_checkouts_observed_total",
			Help:      "Count of late-checkout stays observed on dashboard reads.",
		},
	)

	pushSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_inventory",
			Name:      "push_sent_total",
			Help:      "Count of availability alerts sent by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingCancelled, availabilityRequests, lateCheckouts, pushSent)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncAvailabilityRequest(view string) {
	availabilityRequests.WithLabelValues(view).Inc()
}

func IncLateCheckout() {
	lateCheckouts.Inc()
}

func IncPushSent(result string) {
	pushSent.WithLabelValues(result).Inc()
}
