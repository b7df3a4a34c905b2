package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studio_booking",
			Name:      "booking_created_total",
			Help:      "Count of booking requests created.",
		},
	)

	bookingDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio_booking",
			Name:      "booking_decision_total",
			Help:      "Count of admin decisions over bookings.",
		},
		[]string{"decision"},
	)

	bookingRejectedInput = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studio_booking",
			Name:      "booking_invalid_input_total",
			Help:      "Count of booking submissions rejected by validation.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingDecision, bookingRejectedInput)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingDecision(decision string) {
	bookingDecision.WithLabelValues(decision).Inc()
}

func IncInvalidInput() {
	bookingRejectedInput.Inc()
}
