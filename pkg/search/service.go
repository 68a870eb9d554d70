package search

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"voidxp/gateway/pkg/config"
)

// maxResults caps how many results one lookup returns.
const maxResults = 5

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Response is the outcome of one lookup.
type Response struct {
	Query      string   `json:"query"`
	Results    []Result `json:"results"`
	Provider   string   `json:"provider"`
	TookMillis int64    `json:"took_ms"`
}

// Recorder receives per-lookup outcomes for metrics. May be nil.
type Recorder interface {
	RecordSearch(provider, outcome string)
}

type cacheEntry struct {
	response *Response
	storedAt time.Time
}

// Service runs web searches through a provider chain with a TTL cache.
type Service struct {
	cfg     config.SearchConfig
	client  *http.Client
	logger  *slog.Logger
	metrics Recorder

	mu    sync.Mutex
	cache map[string]cacheEntry

	now func() time.Time
}

// NewService builds a search service. metrics may be nil.
func NewService(cfg config.SearchConfig, metrics Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3500 * time.Millisecond
	}
	return &Service{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "search"),
		metrics: metrics,
		cache:   make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Search walks the provider chain and returns the first non-empty
// result set. Provider failures fall through to the next provider; if
// every provider fails or returns nothing, the response carries
// provider "none" and no results rather than an error.
func (s *Service) Search(ctx context.Context, query string) *Response {
	if cached := s.cached(query); cached != nil {
		s.record("cache", "hit")
		return cached
	}

	start := s.now()
	resp := &Response{Query: query, Provider: "none"}

	type provider struct {
		name    string
		enabled bool
		search  func(context.Context, string) ([]Result, error)
	}
	chain := []provider{
		{"tavily", s.cfg.Tavily.APIKey != "", s.searchTavily},
		{"brave", s.cfg.Brave.APIKey != "", s.searchBrave},
		{"searxng", s.cfg.SearXNG.Enabled, s.searchSearXNG},
	}

	for _, p := range chain {
		if !p.enabled {
			continue
		}
		results, err := p.search(ctx, query)
		if err != nil {
			s.logger.Warn("search provider failed", "provider", p.name, "error", err)
			s.record(p.name, "error")
			continue
		}
		if len(results) == 0 {
			s.record(p.name, "empty")
			continue
		}
		resp.Results = results
		resp.Provider = p.name
		s.record(p.name, "hit")
		break
	}

	resp.TookMillis = s.now().Sub(start).Milliseconds()
	s.store(query, resp)
	return resp
}

func (s *Service) cached(query string) *Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[query]
	if !ok || s.now().Sub(entry.storedAt) >= s.cacheTTL() {
		return nil
	}
	return entry.response
}

func (s *Service) store(query string, resp *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[query] = cacheEntry{response: resp, storedAt: s.now()}
}

// CleanupCache evicts expired entries and returns how many remain.
func (s *Service) CleanupCache() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ttl := s.cacheTTL()
	now := s.now()
	for query, entry := range s.cache {
		if now.Sub(entry.storedAt) >= ttl {
			delete(s.cache, query)
		}
	}
	return len(s.cache)
}

func (s *Service) cacheTTL() time.Duration {
	if s.cfg.CacheTTL > 0 {
		return s.cfg.CacheTTL
	}
	return 5 * time.Minute
}

func (s *Service) record(provider, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSearch(provider, outcome)
	}
}
