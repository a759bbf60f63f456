package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// relatedResolutions counts completed related product resolutions by the
	// relaxation tier that produced the final result set.
	relatedResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_related_resolutions_total",
			Help: "Total number of related product resolutions by final tier",
		},
		[]string{"tier"},
	)

	// relatedCacheLookups counts related cache lookups by outcome (hit or miss).
	relatedCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_related_cache_lookups_total",
			Help: "Total number of related cache lookups by outcome",
		},
		[]string{"result"},
	)

	// staleResolutions counts resolutions discarded because a newer resolution
	// for the same anchor started while they were in flight.
	staleResolutions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_related_stale_resolutions_total",
			Help: "Total number of related resolutions discarded as stale",
		},
	)
)
