// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package credential

import "github.com/prometheus/client_golang/prometheus"

// Verification result labels.
const (
	resultMatch        = "match"
	resultMismatch     = "mismatch"
	resultMalformed    = "malformed"
	resultUnrecognized = "unrecognized"
)

var encodeDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ppalli_credential_encode_seconds",
		Help:    "Credential encoding duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"version"},
)

var verifyDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ppalli_credential_verify_seconds",
		Help:    "Credential verification duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"version"},
)

var verifyTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ppalli_credential_verifications_total",
		Help: "Total number of credential verifications by version and result",
	},
	[]string{"version", "result"},
)

// RegisterMetrics registers credential metrics with the given Prometheus registry.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(encodeDuration)
	reg.MustRegister(verifyDuration)
	reg.MustRegister(verifyTotal)
}
