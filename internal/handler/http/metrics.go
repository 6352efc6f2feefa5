// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "mess"

// httpRequestsTotal counts completed HTTP requests.
// Labels:
//   - method: HTTP method
//   - status: numeric response status
var httpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "Total number of handled HTTP requests.",
	},
	[]string{"method", "status"},
)

// httpRequestDuration measures end-to-end request handling time.
var httpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// authFailuresTotal counts rejected authentications.
// Label:
//   - reason: missing_header, malformed_header, expired, principal_gone, invalid
var authFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)

// authzDeniedTotal counts role-gate denials.
// Label:
//   - role: the principal's role at denial time
var authzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "authz_denied_total",
		Help:      "Total number of requests denied by the role gate.",
	},
	[]string{"role"},
)

// suggestionTransitionsTotal counts suggestion workflow outcomes.
// Label:
//   - outcome: accepted, rejected, conflict, expired, failed
var suggestionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "suggestion_transitions_total",
		Help:      "Total number of suggestion accept/reject attempts by outcome.",
	},
	[]string{"outcome"},
)
