package httpserver

import (
	"net/http"

	"github.com/yndnr/microspring-go/internal/core/route"
	"github.com/yndnr/microspring-go/internal/telemetry/logger"
)

// RouterConfig holds configuration for the side listener router.
type RouterConfig struct {
	// Metrics serves GET /metrics. Nil disables the endpoint.
	Metrics http.Handler

	// Routes is listed by GET /routes. Nil disables the endpoint.
	Routes *route.Table

	// RateLimit caps requests per second per client host. Zero disables it.
	RateLimit int

	// Logger for access logging. Nil selects the default logger.
	Logger logger.Logger
}

// NewRouter creates the side listener handler.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	h := &handler{routes: cfg.Routes, logger: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	if cfg.Routes != nil {
		mux.HandleFunc("GET /routes", h.handleRoutes)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	// Order: RequestID -> Recover -> AccessLog -> RateLimit -> mux
	return Chain(mux, RequestID(), Recover(log), AccessLog(log), RateLimit(cfg.RateLimit))
}
