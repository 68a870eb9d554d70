// Package search enriches prompts with live web results.
//
// A Service decides whether a query needs fresh information, then walks
// a provider chain (Tavily, Brave, SearXNG) until one returns results.
// Responses are cached per query with a TTL; CleanupCache evicts
// expired entries and is meant to run on a schedule.
package search
