package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/SrikarVamsi/Gem/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a response body is read before extraction.
// Extraction itself truncates to MaxChars; this only bounds memory.
const maxBodyBytes = 4 << 20

// FetchError reports a failed page fetch. Callers in the search and fetch
// loops treat it as skippable rather than fatal.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher performs bounded-timeout page fetches and extracts readable
// text. Fetches against the same host are paced by a per-host limiter
// so the trusted domains are not hammered.
type Fetcher struct {
	client   *http.Client
	maxChars int
	logger   *zap.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewFetcher creates a fetcher with the given per-request timeout and
// extracted-text cap. The client follows redirects, matching the
// behavior trusted sources rely on for press-release permalinks.
func NewFetcher(timeout time.Duration, maxChars int, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxChars: maxChars,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// hostLimiter returns the rate limiter for a host, creating it on first use
func (f *Fetcher) hostLimiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(250*time.Millisecond), 4)
		f.limiters[host] = limiter
	}
	return limiter
}

// Fetch performs one GET against rawURL and returns the extracted
// SourceRecord. Non-2xx statuses, transport errors, and unreadable
// bodies all surface as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (models.SourceRecord, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return models.SourceRecord{}, &FetchError{URL: rawURL, Err: err}
	}

	if err := f.hostLimiter(parsed.Host).Wait(ctx); err != nil {
		return models.SourceRecord{}, &FetchError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return models.SourceRecord{}, &FetchError{URL: rawURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return models.SourceRecord{}, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.SourceRecord{}, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.SourceRecord{}, &FetchError{URL: rawURL, Err: err}
	}

	page := ExtractText(string(body), rawURL, f.maxChars)
	f.logger.Debug("fetched source",
		zap.String("url", rawURL),
		zap.Int("text_chars", len(page.Text)))

	return models.SourceRecord{URL: rawURL, Title: page.Title, Text: page.Text}, nil
}
