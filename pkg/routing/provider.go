package routing

import "strings"

// Provider identifies an upstream AI-model vendor.
//
// The set of providers is closed: configuration strings are normalized into
// one of the constants below, and anything unrecognized falls back to
// ProviderOpenAI rather than producing an error.
type Provider string

// Known providers.
const (
	ProviderCloudflare Provider = "cloudflare"
	ProviderMistral    Provider = "mistral"
	ProviderOpenAI     Provider = "openai"
	ProviderXai        Provider = "xai"
	ProviderGroq       Provider = "groq"
	ProviderOpenRouter Provider = "openrouter"
	ProviderMeta       Provider = "meta"
	ProviderAnthropic  Provider = "anthropic"
)

// DefaultProvider is used when a configuration string names a provider
// the gateway does not know about.
const DefaultProvider = ProviderOpenAI

// ParseProvider normalizes a provider name from configuration.
//
// Matching is case-insensitive. "cf" is accepted as an alias for
// Cloudflare. Unrecognized names normalize to DefaultProvider.
func ParseProvider(s string) Provider {
	switch strings.ToLower(s) {
	case "cf", "cloudflare":
		return ProviderCloudflare
	case "mistral":
		return ProviderMistral
	case "openai":
		return ProviderOpenAI
	case "xai":
		return ProviderXai
	case "groq":
		return ProviderGroq
	case "openrouter":
		return ProviderOpenRouter
	case "meta":
		return ProviderMeta
	case "anthropic":
		return ProviderAnthropic
	default:
		return DefaultProvider
	}
}

// String returns the canonical lower-case name of the provider.
func (p Provider) String() string {
	return string(p)
}
