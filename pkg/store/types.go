package store

import "time"

// Event is one recorded gateway request.
type Event struct {
	ID        int64
	UserID    string
	Operation string
	Tier      string
	Provider  string
	Model     string
	Status    string
	CreatedAt time.Time
}

// UsageSummary aggregates events for the analytics endpoint.
type UsageSummary struct {
	TotalRequests int64            `json:"total_requests"`
	ByOperation   map[string]int64 `json:"by_operation"`
	ByProvider    map[string]int64 `json:"by_provider"`
	ByStatus      map[string]int64 `json:"by_status"`
}
