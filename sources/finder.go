package sources

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/SrikarVamsi/Gem/models"
	"go.uber.org/zap"
)

// minAnchorTextLen filters navigation noise: anchors whose visible text
// is shorter than this are never considered hits
const minAnchorTextLen = 8

// Finder walks a fixed list of trusted domains and collects links whose
// visible text contains the query. This is a heuristic relevance filter,
// not ranked retrieval: results come back in discovery order across the
// domain list, which is iterated in its configured order every time.
type Finder struct {
	domains []string
	client  *http.Client
	logger  *zap.Logger
}

// NewFinder creates a finder over the given trusted-domain list with a
// bounded per-domain timeout
func NewFinder(domains []string, timeout time.Duration, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{
		domains: domains,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Search returns up to limit hits whose anchor text contains query,
// case-insensitively. A domain that cannot be fetched is skipped; the
// walk only fails outright when the context is cancelled.
func (f *Finder) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	if limit <= 0 {
		return []models.SearchHit{}, nil
	}

	needle := strings.ToLower(query)
	hits := make([]models.SearchHit, 0, limit)

	for _, base := range f.domains {
		if len(hits) >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := f.fetchDocument(ctx, base)
		if err != nil {
			f.logger.Debug("skipping trusted domain", zap.String("domain", base), zap.Error(err))
			continue
		}

		doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			title := cleanText(sel.Text())
			if title == "" || utf8.RuneCountInString(title) < minAnchorTextLen {
				return true
			}
			if !strings.Contains(strings.ToLower(title), needle) {
				return true
			}

			href, _ := sel.Attr("href")
			if href == "" {
				return true
			}
			if strings.HasPrefix(href, "/") {
				// Best-effort join against the domain base
				href = strings.TrimRight(base, "/") + href
			}

			hits = append(hits, models.SearchHit{URL: href, Title: title})
			return len(hits) < limit
		})
	}

	return hits, nil
}

// fetchDocument GETs one trusted domain's page and parses it. Failures
// come back as *FetchError so the caller's skip is explicit.
func (f *Finder) fetchDocument(ctx context.Context, base string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base, nil)
	if err != nil {
		return nil, &FetchError{URL: base, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: base, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: base, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: base, Err: err}
	}
	return doc, nil
}
