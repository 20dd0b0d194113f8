// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package web

import "github.com/prometheus/client_golang/prometheus"

var (
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ppalli_http_errors_total",
			Help: "Error responses written, by code and status",
		},
		[]string{"code", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ppalli_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RegisterMetrics registers web metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(errorsTotal, requestDuration)
}
