// Package routing maps logical request classes to upstream AI providers.
//
// # Overview
//
// A routing table is built once from a declarative configuration string of
// comma-separated entries:
//
//	chat.fast=openai:gpt-4o-mini,chat.smart=anthropic:claude-3-5-sonnet
//
// Each entry maps an (operation, tier) pair to a (provider, model) target.
// Malformed entries are dropped rather than failing the build, so a single
// typo in a large routing configuration never takes the gateway down.
//
// # Usage
//
//	table := routing.Build(cfg.Routes)
//	target, ok := table.Resolve("chat", "fast")
//	if !ok {
//	    // caller applies its own fallback policy
//	}
//
// # Thread Safety
//
// A Table is immutable after Build and safe for unlimited concurrent
// readers without locking. For configurations that change at runtime, the
// Live type holds the current table behind an atomic pointer and swaps in
// freshly built tables; every table it ever exposes stays immutable.
package routing
