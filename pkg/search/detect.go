package search

import (
	"regexp"
	"strings"
)

// freshnessPatterns match queries that likely need current information.
var freshnessPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(current|today|now|latest|recent|live|real[\s-]?time)\b`),
	regexp.MustCompile(`\b(price|cost|worth|value|rate|stock|market)\b`),
	regexp.MustCompile(`\b(weather|temperature|forecast|climate)\b`),
	regexp.MustCompile(`\b(news|happening|event|update|announcement)\b`),
	regexp.MustCompile(`\b(score|game|match|tournament|competition)\b`),
	regexp.MustCompile(`\b20(2[4-9]|[3-9]\d)\b`),
	regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s*20(2[4-9]|[3-9]\d)\b`),
	regexp.MustCompile(`\bwhat\s+(is|are|was|were)\s+the\b`),
	regexp.MustCompile(`\bhow\s+(much|many|long|far|old)\s+(is|are|does|do)\b`),
	regexp.MustCompile(`\b(who|what|when|where|which)\s+.*\s+(win|won|winning|winner|elected|announced|released|launched)\b`),
}

// NeedsSearch reports whether the query looks like it needs live web
// results. Always false when search is disabled.
func (s *Service) NeedsSearch(query string) bool {
	if !s.cfg.Enabled {
		return false
	}
	lower := strings.ToLower(query)
	for _, p := range freshnessPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}
