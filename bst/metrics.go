package bst

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var buildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bst_builds_total",
	Help: "Total number of completed tree builds",
}, []string{"schedule"})

var buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "bst_build_duration_seconds",
	Help:    "Wall-clock duration of tree builds",
	Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
}, []string{"schedule"})

var nodesInserted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bst_nodes_inserted_total",
	Help: "Total number of tree nodes created by builds",
})

var slotLockAcquisitions = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bst_slot_lock_acquisitions_total",
	Help: "Total number of node slot locks taken while inserting",
})

var slotRacesLost = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bst_slot_races_lost_total",
	Help: "Total number of slot locks taken only to find the slot already filled",
})

var verifyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "bst_verify_duration_seconds",
	Help:    "Wall-clock duration of verify-and-release passes",
	Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
})

var verifyFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bst_verify_failures_total",
	Help: "Total number of verification passes that found an ordering violation",
})
