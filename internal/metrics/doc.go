// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package metrics provides the Prometheus instrumentation for Galleria.

All collectors are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:5173/metrics

# Available Metrics

API (inbound, recorded by middleware.PrometheusMetrics):
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Backend (outbound, recorded by the client transport):
  - backend_requests_total{operation,outcome}
  - backend_request_duration_seconds{operation}
  - backend_retries_total{operation}

Circuit breaker:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Views:
  - view_shell_served_total{view}

Endpoint labels are chi route patterns (e.g. /api/v1/video/{uuid}/info), never
raw paths, so label cardinality stays bounded.
*/
package metrics
