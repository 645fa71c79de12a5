package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant is a text generation backend.
type Assistant interface {
	Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error)
}

var (
	ErrNotConfigured = errors.New("assistant is not configured")
	ErrEmptyResponse = errors.New("empty assistant response")
	ErrTimeout       = errors.New("assistant request timed out")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (r RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", r.RetryAfter)
	}
	return "rate limited"
}

var (
	cacheMu    sync.Mutex
	cacheStore = map[string]cacheEntry{}
	cacheTTL   = 60 * time.Second
)

type cacheEntry struct {
	value string
	exp   time.Time
}

func cacheKey(scope, prompt string, history []ChatMessage) string {
	var b strings.Builder
	b.WriteString(scope)
	for _, h := range history {
		b.WriteString("\x00")
		b.WriteString(h.Role)
		b.WriteString("\x00")
		b.WriteString(h.Content)
	}
	b.WriteString("\x00")
	b.WriteString(prompt)
	return b.String()
}

func cacheGet(key string) (string, bool) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if e, ok := cacheStore[key]; ok {
		if time.Now().Before(e.exp) {
			return e.value, true
		}
		delete(cacheStore, key)
	}
	return "", false
}

// cacheSet also drops every expired entry, so keys that are never read
// again do not accumulate.
func cacheSet(key, value string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	now := time.Now()
	for k, e := range cacheStore {
		if !now.Before(e.exp) {
			delete(cacheStore, k)
		}
	}
	cacheStore[key] = cacheEntry{
		value: value,
		exp:   now.Add(cacheTTL),
	}
}

// httpClient caps the request timeout at whatever is left of ctx.
func httpClient(ctx context.Context, timeout time.Duration) *http.Client {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	return &http.Client{Timeout: timeout}
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("assistant request failed: %w", err)
}

// rateLimit builds the error for a 429, preferring the RetryInfo detail of a
// Google style error body over the Retry-After header.
func rateLimit(resp *http.Response, errBody map[string]any) RateLimitError {
	if d := extractRetryAfter(errBody); d > 0 {
		return RateLimitError{RetryAfter: d}
	}
	if s := resp.Header.Get("Retry-After"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return RateLimitError{RetryAfter: time.Duration(n) * time.Second}
		}
	}
	return RateLimitError{}
}

func extractRetryAfter(errBody map[string]any) time.Duration {
	errObj, ok := errBody["error"].(map[string]any)
	if !ok {
		return 0
	}
	details, ok := errObj["details"].([]any)
	if !ok {
		return 0
	}
	for _, d := range details {
		m, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := m["@type"].(string); ok && strings.Contains(t, "RetryInfo") {
			if s, ok := m["retryDelay"].(string); ok {
				if dur, err := time.ParseDuration(s); err == nil {
					return dur
				}
			}
		}
	}
	return 0
}
