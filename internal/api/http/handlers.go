package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"restaurant-catalog/internal/domain"
	"restaurant-catalog/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Sessions service.SessionServiceInterface
	// Stats is optional; without it /api/stats/filters answers 503.
	Stats service.FilterStatsReader
}

func NewHandler(sessions service.SessionServiceInterface, stats service.FilterStatsReader) *Handler {
	return &Handler{Sessions: sessions, Stats: stats}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/sessions", h.openSession).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}", h.getSession).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}", h.closeSession).Methods("DELETE")
	r.HandleFunc("/api/sessions/{sessionId}/restaurants", h.getDisplayed).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/restaurants/canonical", h.getCanonical).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/restaurants/{restaurantId}/qrcode", h.getRestaurantQRCode).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/query", h.setQuery).Methods("PUT")
	r.HandleFunc("/api/sessions/{sessionId}/filters/rating", h.applyRatingFilter).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/filters/name", h.applyNameFilter).Methods("POST")

	r.HandleFunc("/api/loads", h.getRecentLoads).Methods("GET")
	r.HandleFunc("/api/stats/filters", h.getFilterStats).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "restaurant-catalog",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	id := h.Sessions.Open(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{
		"session_id": id,
		"status":     string(domain.StatusLoading),
	})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.Sessions.State(mux.Vars(r)["sessionId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Close(mux.Vars(r)["sessionId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getDisplayed(w http.ResponseWriter, r *http.Request) {
	state, err := h.Sessions.State(mux.Vars(r)["sessionId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state.Displayed)
}

func (h *Handler) getCanonical(w http.ResponseWriter, r *http.Request) {
	state, err := h.Sessions.State(mux.Vars(r)["sessionId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state.Canonical)
}

func (h *Handler) setQuery(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	state, err := h.Sessions.SetQuery(mux.Vars(r)["sessionId"], payload.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) applyRatingFilter(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Threshold *float64 `json:"threshold"`
	}
	if err := decodeOptional(r, &payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if payload.Threshold != nil && *payload.Threshold < 0 {
		http.Error(w, "threshold must not be negative", http.StatusBadRequest)
		return
	}

	state, err := h.Sessions.ApplyRatingFilter(r.Context(), mux.Vars(r)["sessionId"], payload.Threshold)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) applyNameFilter(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query *string `json:"query"`
	}
	if err := decodeOptional(r, &payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	state, err := h.Sessions.ApplyNameFilter(r.Context(), mux.Vars(r)["sessionId"], payload.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) getRestaurantQRCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	png, err := h.Sessions.RestaurantQRCode(vars["sessionId"], vars["restaurantId"])
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) getRecentLoads(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.Sessions.RecentLoads(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) getFilterStats(w http.ResponseWriter, r *http.Request) {
	if h.Stats == nil {
		http.Error(w, "filter statistics are disabled", http.StatusServiceUnavailable)
		return
	}
	top, _ := strconv.Atoi(r.URL.Query().Get("top"))

	stats, err := h.Stats.FilterStats(r.Context(), top)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// decodeOptional accepts an empty body as "no fields set".
func decodeOptional(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrRestaurantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrNotLoaded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
