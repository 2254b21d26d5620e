package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of products created",
	})

	ProductsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "Total number of products updated",
	})

	ProductsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "Total number of products deleted",
	})

	ProductWritesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_writes_failed_total",
		Help: "Total number of failed product writes",
	}, []string{"reason"})

	ProductListQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_list_queries_total",
		Help: "Total number of product list queries served",
	})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_hits_total",
		Help: "Query cache hits by key family",
	}, []string{"family"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_misses_total",
		Help: "Query cache misses by key family",
	}, []string{"family"})

	ImageUploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "image_uploads_total",
		Help: "Total number of images written to object storage",
	})

	ImageUploadsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "image_uploads_failed_total",
		Help: "Total number of failed image uploads",
	})

	ImageUploadLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "image_upload_latency_seconds",
		Help:    "Latency of one image upload batch",
		Buckets: prometheus.DefBuckets,
	})

	OrderStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Total number of order status transitions",
	}, []string{"status"})

	BoardMovesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "board_moves_total",
		Help: "Total number of kanban card moves persisted",
	})

	CustomerAggregatesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customer_aggregates_applied_total",
		Help: "Total number of delivered orders folded into customer aggregates",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
