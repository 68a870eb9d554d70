package handlers

import (
	"net/http"
	"strconv"
	"time"

	"voidxp/gateway/pkg/auth"
	"voidxp/gateway/pkg/store"
)

// AnalyticsHandler serves GET /v1/analytics for authenticated users.
type AnalyticsHandler struct {
	store *store.Store
	auth  *auth.Service
}

// NewAnalyticsHandler creates the analytics endpoint. store may be nil
// when the event store is disabled.
func NewAnalyticsHandler(s *store.Store, authService *auth.Service) *AnalyticsHandler {
	return &AnalyticsHandler{store: s, auth: authService}
}

func (h *AnalyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics disabled")
		return
	}

	claims, err := h.auth.VerifyToken(bearerToken(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	since := time.Time{}
	if raw := r.URL.Query().Get("hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			writeError(w, http.StatusBadRequest, "hours must be a positive integer")
			return
		}
		since = time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	}

	summary, err := h.store.Usage(r.Context(), claims.UserID, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
