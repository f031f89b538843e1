// Package metric provides Prometheus metrics for MicroSpring.
//
//   - prometheus.go: Registry of request and cache metrics, HTTP handler
//   - collector.go: Scrape-time collector for build and route information
//
// Registry implements both the web server's request observer and the static
// resolver's cache observer, so it can be passed straight to both.
//
// Metrics are exposed at /metrics on the side listener.
package metric
