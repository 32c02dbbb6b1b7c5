// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes application metrics:
//   - HTTP request metrics (duration, count, size)
//   - Story metrics (operations by result, stored image sizes, collection size)
//   - Store operation latency
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
package metrics
