// Package httpserver provides the operations side listener for MicroSpring.
//
// The side listener runs on net/http, separate from the raw-socket web
// server, so that scraping metrics never queues behind application traffic:
//
//   - GET /health: liveness with build version
//   - GET /metrics: Prometheus exposition
//   - GET /routes: the registered route table as JSON
//
// Every endpoint passes through the RequestID, Recover and AccessLog
// middlewares.
package httpserver
