package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/priceboard/priceboard/internal/dashboard"
	"github.com/priceboard/priceboard/internal/observability"
	"github.com/priceboard/priceboard/pkg/types"
)

// DashboardRequest represents a dashboard render request. FilterSpec follows
// the JSON distinction between an absent selection (unconstrained) and an
// explicit empty array (matches no rows).
type DashboardRequest struct {
	Filter types.FilterSpec      `json:"filter"`
	Sort   dashboard.SortRequest `json:"sort"`
}

// DashboardResponse represents the dashboard render response.
type DashboardResponse struct {
	Data      *dashboard.RenderData `json:"data"`
	Warning   string                `json:"warning,omitempty"`
	RequestID string                `json:"request_id"`
}

// DashboardHandler handles POST /v1/dashboard requests.
type DashboardHandler struct {
	service *dashboard.Service
	stats   *observability.FilterStats
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *dashboard.Service, stats *observability.FilterStats) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		stats:   stats,
	}
}

// ServeHTTP handles the dashboard render request.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "method not allowed", RequestID: requestID,
		})
		return
	}

	var req DashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("invalid request body: %v", err), RequestID: requestID,
		})
		return
	}

	h.recordDimensions(req.Filter)

	data, err := h.service.Render(req.Filter, req.Sort)
	if err != nil {
		writeStructuredError(w, r, err)
		return
	}
	h.stats.RecordRequest(data.Empty)

	resp := DashboardResponse{
		Data:      data,
		RequestID: requestID,
	}
	if data.Empty {
		resp.Warning = "no listings match the selected filters"
	}

	writeJSON(w, http.StatusOK, resp)
}

// recordDimensions counts which filter dimensions the request constrained.
func (h *DashboardHandler) recordDimensions(spec types.FilterSpec) {
	if !spec.AllCities() {
		h.stats.RecordDimension("city")
	}
	if spec.Brands != nil {
		h.stats.RecordDimension("brand")
	}
	if spec.PriceRange != nil {
		h.stats.RecordDimension("price_range")
	}
	if spec.Marketplaces != nil {
		h.stats.RecordDimension("marketplace")
	}
	if spec.RAMSizes != nil {
		h.stats.RecordDimension("ram_size")
	}
	if spec.StorageCapacities != nil {
		h.stats.RecordDimension("storage_capacity")
	}
}

// OptionsHandler handles GET /v1/dashboard/options requests.
type OptionsHandler struct {
	service *dashboard.Service
}

// NewOptionsHandler creates a new filter options handler.
func NewOptionsHandler(service *dashboard.Service) *OptionsHandler {
	return &OptionsHandler{service: service}
}

// ServeHTTP returns the distinct filter widget values of the base table.
func (h *OptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "method not allowed", RequestID: requestID,
		})
		return
	}

	writeJSON(w, http.StatusOK, h.service.FilterOptions())
}

// StatsResponse represents the stats endpoint response.
type StatsResponse struct {
	Requests        int64                          `json:"requests"`
	EmptyResults    int64                          `json:"empty_results"`
	TopDimensions   []observability.DimensionStats `json:"top_dimensions"`
	CachedSnapshots int                            `json:"cached_snapshots"`
}

// StatsHandler handles GET /v1/stats requests.
type StatsHandler struct {
	service *dashboard.Service
	stats   *observability.FilterStats
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(service *dashboard.Service, stats *observability.FilterStats) *StatsHandler {
	return &StatsHandler{service: service, stats: stats}
}

// ServeHTTP returns filter usage statistics.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "method not allowed", RequestID: requestID,
		})
		return
	}

	total, empty := h.stats.Requests()
	writeJSON(w, http.StatusOK, StatsResponse{
		Requests:        total,
		EmptyResults:    empty,
		TopDimensions:   h.stats.TopDimensions(10),
		CachedSnapshots: h.service.CachedSnapshots(),
	})
}

// HealthResponse represents the health endpoint response.
type HealthResponse struct {
	Status   string `json:"status"`
	Listings int    `json:"listings"`
	Time     string `json:"time"`
}

// HealthHandler handles GET /health requests.
type HealthHandler struct {
	listings int
}

// NewHealthHandler creates a new health handler reporting the loaded row count.
func NewHealthHandler(listings int) *HealthHandler {
	return &HealthHandler{listings: listings}
}

// ServeHTTP returns service health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Listings: h.listings,
		Time:     time.Now().UTC().Format(time.RFC3339),
	})
}
