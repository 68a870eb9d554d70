package routing

import (
	"testing"
)

func TestBuild_Basic(t *testing.T) {
	table := Build("chat.fast=openai:gpt-4o-mini,chat.smart=anthropic:claude-3-5-sonnet-20241022")

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	fast, ok := table.Resolve("chat", "fast")
	if !ok {
		t.Fatal("chat.fast not resolved")
	}
	if fast.Provider != ProviderOpenAI {
		t.Errorf("chat.fast provider = %q, want %q", fast.Provider, ProviderOpenAI)
	}
	if fast.Model != "gpt-4o-mini" {
		t.Errorf("chat.fast model = %q, want %q", fast.Model, "gpt-4o-mini")
	}

	smart, ok := table.Resolve("chat", "smart")
	if !ok {
		t.Fatal("chat.smart not resolved")
	}
	if smart.Provider != ProviderAnthropic {
		t.Errorf("chat.smart provider = %q, want %q", smart.Provider, ProviderAnthropic)
	}
	if smart.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("chat.smart model = %q, want %q", smart.Model, "claude-3-5-sonnet-20241022")
	}
}

func TestBuild_EmptyAndDegenerateInput(t *testing.T) {
	for _, raw := range []string{"", "   ", ",,,", " , , "} {
		if got := Build(raw).Len(); got != 0 {
			t.Errorf("Build(%q).Len() = %d, want 0", raw, got)
		}
	}
}

func TestBuild_MalformedEntriesSkipped(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"missing colon in target", "chat.fast=openai-gpt-4o-mini", 0},
		{"missing equals", "chat.fast-openai:gpt-4o-mini", 0},
		{"empty parts", "=openai:gpt-4o-mini,chat.fast=,=", 0},
		{"too many dots", "chat.fast.extra=openai:gpt-4o-mini", 0},
		{"too many colons", "chat.fast=openai:gpt:4o", 0},
		{"valid survives a bad neighbor", "chat.fast=bad-format,chat.smart=openai:gpt-4o", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Build(tt.raw)
			if table.Len() != tt.want {
				t.Errorf("Build(%q).Len() = %d, want %d", tt.raw, table.Len(), tt.want)
			}
		})
	}

	// The surviving entry in the mixed case must be the well-formed one.
	table := Build("chat.fast=bad-format,chat.smart=openai:gpt-4o")
	if _, ok := table.Resolve("chat", "fast"); ok {
		t.Error("malformed chat.fast should not resolve")
	}
	if _, ok := table.Resolve("chat", "smart"); !ok {
		t.Error("chat.smart should resolve")
	}
}

func TestBuild_WhitespaceTolerance(t *testing.T) {
	spaced := Build(" chat.fast = openai : gpt-4o-mini , chat.smart = anthropic : claude-3-5-sonnet ")
	plain := Build("chat.fast=openai:gpt-4o-mini,chat.smart=anthropic:claude-3-5-sonnet")

	if spaced.Len() != plain.Len() {
		t.Fatalf("spaced Len() = %d, plain Len() = %d", spaced.Len(), plain.Len())
	}
	for _, key := range [][2]string{{"chat", "fast"}, {"chat", "smart"}} {
		a, okA := spaced.Resolve(key[0], key[1])
		b, okB := plain.Resolve(key[0], key[1])
		if okA != okB || a != b {
			t.Errorf("Resolve(%s, %s): spaced = (%+v, %v), plain = (%+v, %v)", key[0], key[1], a, okA, b, okB)
		}
	}
}

func TestBuild_DuplicateKeysLastWins(t *testing.T) {
	table := Build("chat.fast=openai:a,chat.fast=anthropic:b")

	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	target, ok := table.Resolve("chat", "fast")
	if !ok {
		t.Fatal("chat.fast not resolved")
	}
	if target.Provider != ProviderAnthropic || target.Model != "b" {
		t.Errorf("target = %+v, want {anthropic b}", target)
	}
}

func TestBuild_TrailingAndDuplicateCommas(t *testing.T) {
	if got := Build("chat.fast=openai:gpt-4o-mini,").Len(); got != 1 {
		t.Errorf("trailing comma: Len() = %d, want 1", got)
	}
	if got := Build("chat.fast=openai:gpt-4o-mini,,chat.smart=anthropic:claude-3-5-sonnet").Len(); got != 2 {
		t.Errorf("double comma: Len() = %d, want 2", got)
	}
}

func TestResolve_PureLookup(t *testing.T) {
	table := Build("chat.fast=openai:gpt-4o-mini,fim.fast=mistral:codestral")

	// Repeated resolves yield identical results.
	first, ok1 := table.Resolve("chat", "fast")
	second, ok2 := table.Resolve("chat", "fast")
	if !ok1 || !ok2 || first != second {
		t.Errorf("repeated Resolve differs: (%+v, %v) vs (%+v, %v)", first, ok1, second, ok2)
	}

	// Absent keys report absence, not errors.
	for _, key := range [][2]string{
		{"chat", "nonexistent"},
		{"nonexistent", "fast"},
		{"fim", "smart"},
		{"", "fast"},
		{"chat", ""},
	} {
		if _, ok := table.Resolve(key[0], key[1]); ok {
			t.Errorf("Resolve(%q, %q) = ok, want not found", key[0], key[1])
		}
	}
}

func TestLive_ReplaceSwapsSnapshot(t *testing.T) {
	live := NewLive("chat.fast=openai:a")

	before := live.Load()
	live.Replace("chat.fast=anthropic:b,fim.fast=mistral:codestral")

	// The old snapshot is untouched.
	target, ok := before.Resolve("chat", "fast")
	if !ok || target.Provider != ProviderOpenAI || target.Model != "a" {
		t.Errorf("old snapshot = (%+v, %v), want {openai a}", target, ok)
	}

	// The live view sees the new table.
	target, ok = live.Resolve("chat", "fast")
	if !ok || target.Provider != ProviderAnthropic || target.Model != "b" {
		t.Errorf("live view = (%+v, %v), want {anthropic b}", target, ok)
	}
	if live.Load().Len() != 2 {
		t.Errorf("live Len() = %d, want 2", live.Load().Len())
	}
}
