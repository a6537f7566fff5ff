package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rss_digest_feed_fetches_total",
		Help: "Feed fetches by outcome (updated, unchanged, error)",
	}, []string{"status"})

	FeedFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rss_digest_feed_fetch_duration_seconds",
		Help:    "Duration of a single feed update including retries",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	NewEntries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rss_digest_new_entries_total",
		Help: "Entries stored as new or changed",
	})

	DigestStages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rss_digest_stage_transitions_total",
		Help: "Digest pipeline stage transitions",
	}, []string{"stage"})

	DigestsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rss_digest_digests_sent_total",
		Help: "Digests delivered by output method",
	}, []string{"method"})

	DigestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rss_digest_run_duration_seconds",
		Help:    "Duration of a full digest run",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
