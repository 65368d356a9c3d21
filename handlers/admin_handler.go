package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mammutor/NINA/routing"
)

// AdminHandler serves the operator endpoints on the admin listener.
type AdminHandler struct {
	stats routing.GraphStats
}

// NewAdminHandler snapshots the stats of the loaded graph, which is never
// mutated after loading.
func NewAdminHandler(graph *routing.Graph) *AdminHandler {
	return &AdminHandler{stats: graph.Stats()}
}

func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/healthz", h.Healthz).Methods("GET")
	router.HandleFunc("/graph/stats", h.GraphStats).Methods("GET")
}

func (h *AdminHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"nodes":  h.stats.Nodes,
	})
}

func (h *AdminHandler) GraphStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client gone
}
