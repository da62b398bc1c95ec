package service

import (
	"context"
	"errors"
	"strings"

	"github.com/SrikarVamsi/Gem/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyContent = errors.New("content is empty")

// SourceFinder walks the trusted domains for links matching a query
type SourceFinder interface {
	Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error)
}

// SourceFetcher fetches one page and extracts its readable text
type SourceFetcher interface {
	Fetch(ctx context.Context, url string) (models.SourceRecord, error)
}

// ScamDetector matches content against the scam signature set
type ScamDetector interface {
	Detect(content string) models.ScamResult
}

// VerdictSynthesizer produces a verdict from content and fetched sources
type VerdictSynthesizer interface {
	Analyze(ctx context.Context, content string, sources []models.SourceRecord, languageHint string) (models.Verdict, error)
}

// CheckService orchestrates one fact-check request: search, fetch,
// scam heuristics, and verdict synthesis, assembled into a CheckResponse.
type CheckService struct {
	finder      SourceFinder
	fetcher     SourceFetcher
	detector    ScamDetector
	synthesizer VerdictSynthesizer
	searchLimit int
	logger      *zap.Logger
}

// CheckServiceOption is a functional option for CheckService
type CheckServiceOption func(*CheckService)

// CheckWithFinder sets the source finder
func CheckWithFinder(finder SourceFinder) CheckServiceOption {
	return func(s *CheckService) {
		s.finder = finder
	}
}

// CheckWithFetcher sets the source fetcher
func CheckWithFetcher(fetcher SourceFetcher) CheckServiceOption {
	return func(s *CheckService) {
		s.fetcher = fetcher
	}
}

// CheckWithDetector sets the scam detector
func CheckWithDetector(detector ScamDetector) CheckServiceOption {
	return func(s *CheckService) {
		s.detector = detector
	}
}

// CheckWithSynthesizer sets the verdict synthesizer
func CheckWithSynthesizer(synth VerdictSynthesizer) CheckServiceOption {
	return func(s *CheckService) {
		s.synthesizer = synth
	}
}

// CheckWithSearchLimit sets how many search hits seed the fetch loop
func CheckWithSearchLimit(limit int) CheckServiceOption {
	return func(s *CheckService) {
		s.searchLimit = limit
	}
}

// CheckWithLogger sets the logger
func CheckWithLogger(logger *zap.Logger) CheckServiceOption {
	return func(s *CheckService) {
		s.logger = logger
	}
}

// NewCheckService creates a new check service
func NewCheckService(opts ...CheckServiceOption) *CheckService {
	s := &CheckService{
		searchLimit: 4,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckRequest represents one check invocation
type CheckRequest struct {
	Content      string
	LanguageHint string
}

// fetchOutcome is one fetch attempt's explicit result. Aggregation
// discards failures; the skip is deliberate, not a swallowed panic.
type fetchOutcome struct {
	record models.SourceRecord
	err    error
}

// Check runs the full pipeline. Search hits and fetch failures degrade
// gracefully; the only errors returned are empty content and synthesis
// transport exhaustion (*SynthesisError).
func (s *CheckService) Check(ctx context.Context, req CheckRequest) (*models.CheckResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}
	if s.finder == nil {
		return nil, errors.New("source finder not set")
	}
	if s.fetcher == nil {
		return nil, errors.New("source fetcher not set")
	}
	if s.detector == nil {
		return nil, errors.New("scam detector not set")
	}
	if s.synthesizer == nil {
		return nil, errors.New("verdict synthesizer not set")
	}

	// Scam heuristics are independent of search and fetch; run them
	// alongside. Detection is pure, so it has no failure path.
	scamCh := make(chan models.ScamResult, 1)
	go func() {
		scamCh <- s.detector.Detect(req.Content)
	}()

	hits, err := s.finder.Search(ctx, req.Content, s.searchLimit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		s.logger.Warn("source search failed, continuing without hits", zap.Error(err))
		hits = nil
	}

	fetched := s.fetchAll(ctx, hits)

	verdict, err := s.synthesizer.Analyze(ctx, req.Content, fetched, req.LanguageHint)
	if err != nil {
		return nil, err
	}

	sourceEntries := models.SourceEntriesFromRecords(fetched)
	if len(fetched) == 0 {
		sourceEntries = models.SourceEntriesFromHits(hits)
	}

	return &models.CheckResponse{
		Analysis: verdict,
		Scam:     <-scamCh,
		Sources:  sourceEntries,
	}, nil
}

// fetchAll dispatches one fetch per hit concurrently, each writing to
// its own slot, and keeps only the successes in hit order
func (s *CheckService) fetchAll(ctx context.Context, hits []models.SearchHit) []models.SourceRecord {
	outcomes := make([]fetchOutcome, len(hits))

	g, gctx := errgroup.WithContext(ctx)
	for i, hit := range hits {
		g.Go(func() error {
			record, err := s.fetcher.Fetch(gctx, hit.URL)
			outcomes[i] = fetchOutcome{record: record, err: err}
			return nil
		})
	}
	_ = g.Wait()

	fetched := make([]models.SourceRecord, 0, len(hits))
	for i, outcome := range outcomes {
		if outcome.err != nil {
			s.logger.Debug("skipping unfetchable source",
				zap.String("url", hits[i].URL),
				zap.Error(outcome.err))
			continue
		}
		fetched = append(fetched, outcome.record)
	}
	return fetched
}
