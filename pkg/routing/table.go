package routing

import (
	"log/slog"
	"strings"
)

// Target is the upstream destination for one (operation, tier) class.
// Targets are immutable values created during Build.
type Target struct {
	// Provider is the upstream vendor handling the request.
	Provider Provider

	// Model is the vendor-specific model name (e.g., "gpt-4o-mini").
	Model string
}

// Table maps "operation.tier" keys to upstream targets.
//
// A Table is built once and never mutated afterwards, so Resolve needs no
// locking regardless of how many goroutines share the table.
type Table struct {
	targets map[string]Target
}

// Build parses a routing configuration string into a Table.
//
// The input is a comma-separated list of entries of the form
//
//	<operation>.<tier>=<provider>:<model>
//
// with arbitrary whitespace tolerated around every token. Entries that do
// not match the shape are skipped with a warning; the build itself always
// succeeds, even when every entry is malformed and the table ends up empty.
// When the same operation.tier key appears more than once, the last entry
// wins.
func Build(raw string) *Table {
	targets := make(map[string]Target)

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		lhs, rhs, found := strings.Cut(entry, "=")
		if !found {
			slog.Warn("dropping malformed route entry", "entry", entry, "reason", "missing '='")
			continue
		}
		lhs = strings.TrimSpace(lhs)
		rhs = strings.TrimSpace(rhs)

		// LHS must be exactly operation.tier, both non-empty.
		lhsParts := strings.Split(lhs, ".")
		if len(lhsParts) != 2 {
			slog.Warn("dropping malformed route entry", "entry", entry, "reason", "key is not operation.tier")
			continue
		}
		op := strings.TrimSpace(lhsParts[0])
		tier := strings.TrimSpace(lhsParts[1])
		if op == "" || tier == "" {
			slog.Warn("dropping malformed route entry", "entry", entry, "reason", "empty operation or tier")
			continue
		}

		// RHS must be exactly provider:model. An entry without a colon is
		// skipped, never default-assigned.
		rhsParts := strings.Split(rhs, ":")
		if len(rhsParts) != 2 {
			slog.Warn("dropping malformed route entry", "entry", entry, "reason", "target is not provider:model")
			continue
		}
		provider := ParseProvider(strings.TrimSpace(rhsParts[0]))
		model := strings.TrimSpace(rhsParts[1])

		targets[op+"."+tier] = Target{Provider: provider, Model: model}
	}

	return &Table{targets: targets}
}

// Resolve returns the target for the given operation and tier.
// The second return value is false when no route is configured for the
// pair; callers decide their own fallback behavior.
func (t *Table) Resolve(op, tier string) (Target, bool) {
	target, ok := t.targets[op+"."+tier]
	return target, ok
}

// Len returns the number of configured routes.
func (t *Table) Len() int {
	return len(t.targets)
}
