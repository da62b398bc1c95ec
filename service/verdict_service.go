package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/SrikarVamsi/Gem/models"
	"github.com/SrikarVamsi/Gem/retry"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// systemInstruction is set once on the model and establishes tone,
// neutrality, and source-preference policy for every analysis call.
const systemInstruction = "You are a strict, explainable fact-checking assistant for India. " +
	"Classify claims as Verified, Suspicious, or Fake; always include a concise, " +
	"non-technical explanation and cite evidence snippets from provided or fetched sources. " +
	"Be neutral, avoid sensationalism, and prefer official sources (PIB, government portals, WHO, etc.)."

// promptRequirements is the fixed output contract sent with every prompt
var promptRequirements = []string{
	"Return strict JSON with fields: label, explanation, evidence (array of {url, quote, support: one of ['supports','refutes','unrelated']}).",
	"label must be one of: Verified, Suspicious, Fake.",
	"explanation must be short, specific, and educational.",
	"Use only provided sources for evidence; do not fabricate.",
	"Include 'confidence' as a number between 0 and 1 indicating your certainty in the label.",
}

// SynthesisError reports that the model could not be reached after the
// retry policy was exhausted. It is the one synthesizer failure mode
// that surfaces to the caller; malformed model output never does.
type SynthesisError struct {
	Attempts int
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("verdict synthesis failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// textGenerator is the single outbound capability the synthesizer needs.
// *genai.GenerativeModel satisfies it; tests substitute a stub.
type textGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// VerdictService turns content plus fetched sources into a normalized
// verdict via the generative model. Construction is cheap; the model
// client is built lazily on first use and memoized.
type VerdictService struct {
	apiKey       string
	modelName    string
	previewChars int
	retryPolicy  retry.Policy
	logger       *zap.Logger

	mu        sync.Mutex
	client    *genai.Client
	generator textGenerator
}

// VerdictServiceOption is a functional option for VerdictService
type VerdictServiceOption func(*VerdictService)

// VerdictWithAPIKey sets the Gemini API key
func VerdictWithAPIKey(key string) VerdictServiceOption {
	return func(s *VerdictService) {
		s.apiKey = key
	}
}

// VerdictWithModelName sets the Gemini model name
func VerdictWithModelName(name string) VerdictServiceOption {
	return func(s *VerdictService) {
		s.modelName = name
	}
}

// VerdictWithPreviewChars bounds how much of each source's text is
// embedded in the prompt
func VerdictWithPreviewChars(n int) VerdictServiceOption {
	return func(s *VerdictService) {
		s.previewChars = n
	}
}

// VerdictWithRetryPolicy overrides the model-call retry policy
func VerdictWithRetryPolicy(p retry.Policy) VerdictServiceOption {
	return func(s *VerdictService) {
		s.retryPolicy = p
	}
}

// VerdictWithLogger sets the logger
func VerdictWithLogger(logger *zap.Logger) VerdictServiceOption {
	return func(s *VerdictService) {
		s.logger = logger
	}
}

// VerdictWithGenerator injects a pre-built generator, bypassing lazy
// client construction. Used by tests.
func VerdictWithGenerator(g textGenerator) VerdictServiceOption {
	return func(s *VerdictService) {
		s.generator = g
	}
}

// NewVerdictService creates a new verdict service
func NewVerdictService(opts ...VerdictServiceOption) *VerdictService {
	s := &VerdictService{
		modelName:    "gemini-1.5-flash",
		previewChars: 1200,
		retryPolicy:  retry.DefaultPolicy(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ensureGenerator builds and memoizes the model on first use
func (s *VerdictService) ensureGenerator(ctx context.Context) (textGenerator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generator != nil {
		return s.generator, nil
	}
	if s.apiKey == "" {
		return nil, errors.New("gemini api key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.SetTopP(0.9)
	model.SetTopK(40)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	s.client = client
	s.generator = model
	return s.generator, nil
}

// Close releases the underlying client, if one was built
func (s *VerdictService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	s.generator = nil
	return err
}

// promptSource is a bounded preview of one fetched source
type promptSource struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// promptRequest is the structured grounding prompt serialized as the
// sole user message
type promptRequest struct {
	Task         string         `json:"task"`
	LanguageHint string         `json:"language_hint"`
	Requirements []string       `json:"requirements"`
	Content      string         `json:"content"`
	Sources      []promptSource `json:"sources"`
}

// Analyze builds the grounding prompt, invokes the model under the
// retry policy, and normalizes the response into a verdict. A response
// that is not valid JSON becomes a fallback Suspicious verdict; only
// transport failure after retry exhaustion returns an error, always a
// *SynthesisError.
func (s *VerdictService) Analyze(
	ctx context.Context,
	content string,
	fetchedSources []models.SourceRecord,
	languageHint string,
) (models.Verdict, error) {
	if languageHint == "" {
		languageHint = "auto"
	}

	preview := make([]promptSource, 0, len(fetchedSources))
	for _, src := range fetchedSources {
		snippet := src.Text
		if runes := []rune(snippet); len(runes) > s.previewChars {
			snippet = string(runes[:s.previewChars])
		}
		preview = append(preview, promptSource{URL: src.URL, Title: src.Title, Snippet: snippet})
	}

	payload, err := json.Marshal(promptRequest{
		Task:         "fact_check_misinformation",
		LanguageHint: languageHint,
		Requirements: promptRequirements,
		Content:      content,
		Sources:      preview,
	})
	if err != nil {
		return models.Verdict{}, fmt.Errorf("failed to marshal prompt: %w", err)
	}

	generator, err := s.ensureGenerator(ctx)
	if err != nil {
		return models.Verdict{}, &SynthesisError{Attempts: 0, Err: err}
	}

	var raw string
	attempts := 0
	err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		attempts++
		resp, callErr := generator.GenerateContent(ctx, genai.Text(payload))
		if callErr != nil {
			s.logger.Warn("model call failed", zap.Error(callErr))
			return callErr
		}
		// An empty response is still a successful call; it degrades to
		// a fallback verdict below rather than burning retries.
		raw = responseText(resp)
		return nil
	})
	if err != nil {
		return models.Verdict{}, &SynthesisError{Attempts: attempts, Err: err}
	}

	return parseVerdict(raw), nil
}

// parseVerdict decodes the model's raw text. Missing or non-numeric
// confidence is repaired to 0.5; anything that is not a JSON object
// becomes a fallback verdict wrapping the trimmed raw text.
func parseVerdict(raw string) models.Verdict {
	var parsed struct {
		Label       string                `json:"label"`
		Explanation string                `json:"explanation"`
		Confidence  json.RawMessage       `json:"confidence"`
		Evidence    []models.EvidenceItem `json:"evidence"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.FallbackVerdict(strings.TrimSpace(raw))
	}

	confidence := 0.5
	if len(parsed.Confidence) > 0 {
		var f float64
		if err := json.Unmarshal(parsed.Confidence, &f); err == nil {
			confidence = f
		}
	}

	verdict := models.Verdict{
		Label:       models.Label(parsed.Label),
		Explanation: parsed.Explanation,
		Confidence:  confidence,
		Evidence:    parsed.Evidence,
	}
	verdict.Normalize()
	return verdict
}

// responseText flattens all text parts of all candidates
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
	}
	return builder.String()
}
