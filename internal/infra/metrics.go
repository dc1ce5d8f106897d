package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters exposed at /metrics alongside the HTTP middleware metrics.
var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pentagon_orders_created_total",
		Help: "Orders accepted after the stock gate.",
	})

	OrdersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pentagon_orders_rejected_total",
		Help: "Orders rejected at creation time, by reason.",
	}, []string{"reason"})

	InventoryRecordsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pentagon_inventory_records_written_total",
		Help: "Daily inventory snapshots created or updated.",
	})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pentagon_login_attempts_total",
		Help: "Login attempts, by outcome.",
	}, []string{"outcome"})
)
