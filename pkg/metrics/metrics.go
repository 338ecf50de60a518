// Package metrics provides the Prometheus registry reference for the ATQ
// module. All metrics are defined in their respective packages (subgraph,
// tags) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the module.
// All metrics are automatically registered via promauto in their respective
// packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/subgraph):
//   - subgraph_requests_total{endpoint, status} (Counter): Page requests by endpoint host and HTTP status
//   - subgraph_request_duration_seconds{endpoint} (Histogram): Page request duration
//   - subgraph_errors_total{class} (Counter): Errors by class (http, graphql, missing_data, decode, network)
//
// Transform Metrics (pkg/tags):
//   - tags_dropped_records_total{chain_id} (Counter): Records dropped during transformation
//
// Example Prometheus Queries:
//
//   # Page Error Rate
//   rate(subgraph_errors_total[5m])
//
//   # P95 Page Latency
//   histogram_quantile(0.95, rate(subgraph_request_duration_seconds_bucket[5m]))
//
//   # Dropped Records per Chain
//   sum by (chain_id) (rate(tags_dropped_records_total[5m]))
