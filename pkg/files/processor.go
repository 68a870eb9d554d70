package files

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// maxFetchBytes caps fetched attachment size.
const maxFetchBytes = 10 * 1024 * 1024

// maxPreviewChars caps how much of a file lands in the context prompt.
const maxPreviewChars = 2000

// Attachment is a file reference supplied with a request.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// Processed is one attachment prepared for model consumption. For
// images Content holds the original URL; for text files it holds the
// decoded body.
type Processed struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	IsImage     bool   `json:"is_image"`
}

// Result bundles processed attachments with the assembled prompt.
type Result struct {
	Attachments   []Processed `json:"processed_attachments"`
	ContextPrompt string      `json:"context_prompt"`
}

// Processor fetches and decodes attachments.
type Processor struct {
	client *http.Client
	logger *slog.Logger
}

// NewProcessor builds a processor with a bounded-timeout HTTP client.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.With("component", "files"),
	}
}

// Process prepares all attachments. Failures on individual attachments
// are noted in the context prompt instead of failing the batch.
func (p *Processor) Process(ctx context.Context, attachments []Attachment) *Result {
	result := &Result{}
	var parts []string

	for _, a := range attachments {
		processed, err := p.processOne(ctx, a)
		if err != nil {
			p.logger.Error("attachment processing failed", "name", a.Name, "error", err)
			parts = append(parts, fmt.Sprintf("[File: %s - Processing failed]", a.Name))
			continue
		}

		if processed.IsImage {
			parts = append(parts, fmt.Sprintf("[Image: %s]", processed.Name))
		} else {
			preview := processed.Content
			if len(preview) > maxPreviewChars {
				preview = preview[:maxPreviewChars] + "... (truncated)"
			}
			if preview != "" {
				parts = append(parts, fmt.Sprintf("[File: %s (%s)]\n%s", processed.Name, processed.ContentType, preview))
			} else {
				parts = append(parts, fmt.Sprintf("[File: %s (%s)]", processed.Name, processed.ContentType))
			}
		}
		result.Attachments = append(result.Attachments, processed)
	}

	if len(parts) > 0 {
		result.ContextPrompt = fmt.Sprintf(
			"\n\n--- Attached Files ---\n%s\n--- End of Files ---\n\nPlease analyze the attached files and respond to the user's query.",
			strings.Join(parts, "\n\n"))
	}
	return result
}

func (p *Processor) processOne(ctx context.Context, a Attachment) (Processed, error) {
	if strings.HasPrefix(a.ContentType, "image/") {
		// Image URLs pass through untouched for multimodal models.
		return Processed{Name: a.Name, ContentType: a.ContentType, Content: a.URL, IsImage: true}, nil
	}

	var content string
	var err error
	switch {
	case strings.HasPrefix(a.URL, "data:"):
		content, err = decodeDataURL(a.URL)
	case strings.HasPrefix(a.URL, "http"):
		content, err = p.fetch(ctx, a.URL)
	default:
		err = fmt.Errorf("unsupported URL scheme: %s", a.URL)
	}
	if err != nil {
		return Processed{}, err
	}
	return Processed{Name: a.Name, ContentType: a.ContentType, Content: content}, nil
}

// decodeDataURL handles data:[mime][;base64],payload URLs.
func decodeDataURL(dataURL string) (string, error) {
	meta, payload, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found {
		return "", fmt.Errorf("invalid data URL format")
	}

	if strings.Contains(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", fmt.Errorf("failed to decode base64: %w", err)
		}
		if !utf8.Valid(decoded) {
			return "", fmt.Errorf("decoded payload is not valid UTF-8")
		}
		return string(decoded), nil
	}

	decoded, err := url.QueryUnescape(payload)
	if err != nil {
		return "", fmt.Errorf("failed to URL decode: %w", err)
	}
	return decoded, nil
}

func (p *Processor) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP error %s: %s", resp.Status, rawURL)
	}
	if ct := resp.Header.Get("Content-Type"); !isTextContentType(ct) {
		return "", fmt.Errorf("non-text content type: %s", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxFetchBytes {
		return "", fmt.Errorf("file too large: over %d bytes", maxFetchBytes)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("response body is not valid UTF-8")
	}
	return string(body), nil
}

func isTextContentType(contentType string) bool {
	lower := strings.ToLower(contentType)
	return strings.HasPrefix(lower, "text/") ||
		strings.Contains(lower, "application/json") ||
		strings.Contains(lower, "application/javascript") ||
		strings.Contains(lower, "application/xml") ||
		strings.Contains(lower, "application/yaml") ||
		strings.Contains(lower, "application/x-yaml")
}

// SupportsMultimodal reports whether a provider/model pair accepts
// image input.
func SupportsMultimodal(provider, model string) bool {
	m := strings.ToLower(model)
	switch strings.ToLower(provider) {
	case "openai":
		return strings.Contains(m, "gpt-4o") || strings.Contains(m, "gpt-4-vision")
	case "anthropic":
		return strings.Contains(m, "claude-3") || strings.Contains(m, "claude-3.5")
	case "openrouter":
		return strings.Contains(m, "gpt-4") || strings.Contains(m, "claude-3") ||
			strings.Contains(m, "llava") || strings.Contains(m, "vision")
	default:
		return false
	}
}
