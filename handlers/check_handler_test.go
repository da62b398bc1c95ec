package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SrikarVamsi/Gem/models"
	"github.com/SrikarVamsi/Gem/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	resp *models.CheckResponse
	err  error
}

func (r *stubRunner) Check(ctx context.Context, req service.CheckRequest) (*models.CheckResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.resp, nil
}

type stubStore struct {
	created []*models.Feedback
	err     error
}

func (s *stubStore) Create(ctx context.Context, feedback *models.Feedback) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, feedback)
	return nil
}

func newTestRouter(runner CheckRunner, store FeedbackStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCheckHandler(runner, store, nil)
	r := gin.New()
	r.POST("/check", h.Check)
	r.POST("/feedback", h.Feedback)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckEndpoint(t *testing.T) {
	runner := &stubRunner{resp: &models.CheckResponse{
		Analysis: models.Verdict{Label: models.LabelVerified, Explanation: "ok", Confidence: 0.9, Evidence: []models.EvidenceItem{}},
		Scam:     models.ScamResult{IsSuspicious: false, Matched: []string{}},
		Sources:  []models.SourceEntry{{URL: "https://example.com", Title: "T"}},
	}}
	r := newTestRouter(runner, nil)

	w := postJSON(t, r, "/check", `{"content": "is this true?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.LabelVerified, resp.Analysis.Label)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "https://example.com", resp.Sources[0].URL)
}

func TestCheckEndpointMissingContent(t *testing.T) {
	r := newTestRouter(&stubRunner{}, nil)

	for _, body := range []string{`{}`, `{"content": ""}`, `not json`} {
		w := postJSON(t, r, "/check", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	}
}

func TestCheckEndpointEmptyContentFromService(t *testing.T) {
	r := newTestRouter(&stubRunner{err: service.ErrEmptyContent}, nil)

	w := postJSON(t, r, "/check", `{"content": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestCheckEndpointSynthesisFailure(t *testing.T) {
	r := newTestRouter(&stubRunner{err: &service.SynthesisError{Attempts: 3}}, nil)

	w := postJSON(t, r, "/check", `{"content": "claim"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "SYNTHESIS_FAILED")
}

func TestFeedbackEndpointWithoutStore(t *testing.T) {
	r := newTestRouter(&stubRunner{}, nil)

	w := postJSON(t, r, "/feedback", `{"content": "c", "label": "Fake", "helpful": false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestFeedbackEndpointStores(t *testing.T) {
	store := &stubStore{}
	r := newTestRouter(&stubRunner{}, store)

	w := postJSON(t, r, "/feedback", `{"content": "c", "label": "Verified", "helpful": true, "notes": "good call"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, store.created, 1)
	assert.Equal(t, models.LabelVerified, store.created[0].Label)
	assert.True(t, store.created[0].Helpful)
	require.NotNil(t, store.created[0].Notes)
	assert.Equal(t, "good call", *store.created[0].Notes)
}

func TestFeedbackEndpointStorageFailureStillAcknowledges(t *testing.T) {
	store := &stubStore{err: assert.AnError}
	r := newTestRouter(&stubRunner{}, store)

	w := postJSON(t, r, "/feedback", `{"content": "c", "label": "Fake", "helpful": false}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestFeedbackEndpointInvalidBody(t *testing.T) {
	r := newTestRouter(&stubRunner{}, nil)

	w := postJSON(t, r, "/feedback", `{"content": "c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
