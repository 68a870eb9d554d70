package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"voidxp/gateway/pkg/auth"
	"voidxp/gateway/pkg/files"
	"voidxp/gateway/pkg/limits/guest"
	"voidxp/gateway/pkg/routing"
	"voidxp/gateway/pkg/search"
	"voidxp/gateway/pkg/server/middleware"
	"voidxp/gateway/pkg/store"
)

// FingerprintHeader carries the browser fingerprint used for guest
// quota tracking.
const FingerprintHeader = "X-Fingerprint"

// EventRecorder persists completed requests. May be nil.
type EventRecorder interface {
	RecordEvent(ctx context.Context, e *store.Event) error
}

// RequestMetrics receives per-request observations. May be nil.
type RequestMetrics interface {
	RecordRequest(operation, provider, status string, duration time.Duration)
	RecordGuestQuota(reason string)
}

// InvokeHandler serves POST /v1/invoke: it authenticates the caller,
// enforces the guest quota, resolves the provider route, and attaches
// search and file context. The upstream call itself is not performed;
// the response reports the resolved target and attached context.
type InvokeHandler struct {
	routes  *routing.Live
	guests  *guest.Limiter
	auth    *auth.Service
	search  *search.Service
	files   *files.Processor
	events  EventRecorder
	metrics RequestMetrics
	logger  *slog.Logger
}

// NewInvokeHandler wires the invoke endpoint. search, files, events,
// and metrics may each be nil to disable that concern.
func NewInvokeHandler(
	routes *routing.Live,
	guests *guest.Limiter,
	authService *auth.Service,
	searchService *search.Service,
	fileProcessor *files.Processor,
	events EventRecorder,
	metrics RequestMetrics,
	logger *slog.Logger,
) *InvokeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvokeHandler{
		routes:  routes,
		guests:  guests,
		auth:    authService,
		search:  searchService,
		files:   fileProcessor,
		events:  events,
		metrics: metrics,
		logger:  logger.With("component", "invoke"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type invokeRequest struct {
	Op          string             `json:"op"`
	Tier        string             `json:"tier"`
	Messages    []chatMessage      `json:"messages,omitempty"`
	Attachments []files.Attachment `json:"attachments,omitempty"`
}

type invokeResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`

	Provider string `json:"provider"`
	Model    string `json:"model"`

	Multimodal bool `json:"multimodal"`

	Quota *quotaInfo `json:"quota,omitempty"`

	SearchProvider string          `json:"search_provider,omitempty"`
	SearchResults  []search.Result `json:"search_results,omitempty"`

	ContextPrompt string `json:"context_prompt,omitempty"`
}

type quotaInfo struct {
	Remaining int   `json:"remaining"`
	ResetAt   int64 `json:"reset_at"`
}

func (h *InvokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()

	var req invokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Op == "" || req.Tier == "" {
		writeError(w, http.StatusBadRequest, "op and tier are required")
		return
	}

	userID, anonUserID := h.identify(r)

	var quota *quotaInfo
	if userID == "" {
		decision := h.guests.Check(r.Header.Get(FingerprintHeader), clientIP(r), anonUserID)
		if h.metrics != nil {
			h.metrics.RecordGuestQuota(decision.Reason)
		}
		if !decision.Allowed {
			h.observe(req, "", "rate_limited", start)
			writeError(w, http.StatusTooManyRequests, "daily guest quota exceeded")
			return
		}
		quota = &quotaInfo{Remaining: decision.Remaining, ResetAt: decision.ResetAt}
	}

	target, ok := h.routes.Resolve(req.Op, req.Tier)
	if !ok {
		h.observe(req, "", "no_route", start)
		writeError(w, http.StatusNotFound, "no route configured for "+req.Op+"."+req.Tier)
		return
	}

	resp := invokeResponse{
		RequestID:  middleware.GetRequestID(r.Context()),
		Status:     "accepted",
		Provider:   string(target.Provider),
		Model:      target.Model,
		Multimodal: files.SupportsMultimodal(string(target.Provider), target.Model),
		Quota:      quota,
	}

	if h.search != nil {
		if query := lastUserMessage(req.Messages); query != "" && h.search.NeedsSearch(query) {
			result := h.search.Search(r.Context(), query)
			resp.SearchProvider = result.Provider
			resp.SearchResults = result.Results
		}
	}

	if h.files != nil && len(req.Attachments) > 0 {
		processed := h.files.Process(r.Context(), req.Attachments)
		resp.ContextPrompt = processed.ContextPrompt
	}

	h.recordEvent(r.Context(), req, target, userID, anonUserID)
	h.observe(req, string(target.Provider), "accepted", start)

	writeJSON(w, http.StatusOK, resp)
}

// identify classifies the caller. Registered users come back as
// (userID, ""); anonymous sessions as ("", anonID); unidentified guests
// as ("", "").
func (h *InvokeHandler) identify(r *http.Request) (userID, anonUserID string) {
	token := bearerToken(r)
	if token == "" {
		return "", ""
	}
	claims, err := h.auth.VerifyToken(token)
	if err != nil {
		return "", ""
	}
	if strings.HasPrefix(claims.UserID, "anon-") {
		return "", claims.UserID
	}
	return claims.UserID, ""
}

func (h *InvokeHandler) recordEvent(ctx context.Context, req invokeRequest, target routing.Target, userID, anonUserID string) {
	if h.events == nil {
		return
	}
	owner := userID
	if owner == "" {
		owner = anonUserID
	}
	if owner == "" {
		owner = "guest"
	}
	event := &store.Event{
		UserID:    owner,
		Operation: req.Op,
		Tier:      req.Tier,
		Provider:  string(target.Provider),
		Model:     target.Model,
		Status:    "accepted",
		CreatedAt: time.Now().UTC(),
	}
	if err := h.events.RecordEvent(ctx, event); err != nil {
		h.logger.Error("failed to record event", "error", err)
	}
}

func (h *InvokeHandler) observe(req invokeRequest, provider, status string, start time.Time) {
	if h.metrics != nil {
		h.metrics.RecordRequest(req.Op, provider, status, time.Since(start))
	}
}

func lastUserMessage(messages []chatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}
