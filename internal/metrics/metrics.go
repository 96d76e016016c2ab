package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aerogo"

var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "The total number of reservations created",
	})

	ReservationsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_cancelled_total",
		Help:      "The total number of reservations cancelled",
	})

	TicketsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_issued_total",
		Help:      "The total number of tickets issued",
	})

	TicketsAnnulled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_annulled_total",
		Help:      "The total number of tickets annulled",
	})

	FlightsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flights_cancelled_total",
		Help:      "The total number of flights cancelled by staff",
	})
)
