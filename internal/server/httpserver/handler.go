package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yndnr/microspring-go/internal/core/route"
	"github.com/yndnr/microspring-go/internal/infra/buildinfo"
	"github.com/yndnr/microspring-go/internal/telemetry/logger"
)

type handler struct {
	routes *route.Table
	logger logger.Logger
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// routeEntry is the JSON shape of one route in GET /routes.
type routeEntry struct {
	Method string            `json:"method"`
	Path   string            `json:"path"`
	Params []route.ParamSpec `json:"params,omitempty"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:  "healthy",
		Version: buildinfo.Get().Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := h.routes.Routes()
	out := make([]routeEntry, 0, len(routes))
	for _, rt := range routes {
		out = append(out, routeEntry{Method: string(rt.Method), Path: rt.Path, Params: rt.Params})
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response", "path", r.URL.Path, "error", err)
	}
}
