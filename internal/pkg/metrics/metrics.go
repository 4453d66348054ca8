// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CheckoutGroupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_groups_total",
			Help: "Merchant groups processed by checkout, by outcome",
		},
		[]string{"status"},
	)

	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Requested order transitions by outcome",
		},
		[]string{"transition", "result"},
	)

	LocationSamplesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_samples_total",
			Help: "Courier location samples by outcome",
		},
		[]string{"result"},
	)

	WalletTopUpsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_topups_total",
			Help: "Total number of successful wallet top-ups",
		},
	)

	OrdersSettledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_settled_total",
			Help: "Delivered orders completed by the settlement job",
		},
	)

	OutboxPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_messages_published_total",
			Help: "Outbox messages delivered to the event topic",
		},
	)

	JobFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_failures_total",
			Help: "Failed scheduled job runs",
		},
		[]string{"job"},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			CheckoutGroupsTotal,
			OrderTransitionsTotal,
			LocationSamplesTotal,
			WalletTopUpsTotal,
			OrdersSettledTotal,
			OutboxPublishedTotal,
			JobFailuresTotal,
		)
	})
}
