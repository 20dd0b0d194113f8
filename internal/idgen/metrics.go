// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package idgen

import "github.com/prometheus/client_golang/prometheus"

var idsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "ppalli_ids_generated_total",
	Help: "Total number of identifiers issued",
})

// RegisterMetrics registers idgen metrics with the given Prometheus registry.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(idsGenerated)
}
