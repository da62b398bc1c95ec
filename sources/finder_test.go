package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDomainServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFinderSearch(t *testing.T) {
	first := newDomainServer(t, `
		<a href="/news/vaccine-drive-launched">Government vaccine drive launched today</a>
		<a href="https://example.org/other">Completely unrelated headline here</a>
		<a href="/v">vaccine</a>
		<a href="">Another vaccine story without an href</a>`)
	second := newDomainServer(t, `
		<a href="https://second.example/vaccine-myths">Vaccine myths debunked by experts</a>`)

	f := NewFinder([]string{first.URL, second.URL}, 5*time.Second, nil)
	hits, err := f.Search(context.Background(), "VACCINE", 5)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, first.URL+"/news/vaccine-drive-launched", hits[0].URL)
	assert.Equal(t, "Government vaccine drive launched today", hits[0].Title)
	assert.Equal(t, "https://second.example/vaccine-myths", hits[1].URL)
}

func TestFinderSearchShortAnchorsFiltered(t *testing.T) {
	srv := newDomainServer(t, `<a href="/a">covid</a>`)

	f := NewFinder([]string{srv.URL}, 5*time.Second, nil)
	hits, err := f.Search(context.Background(), "covid", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFinderSearchLimit(t *testing.T) {
	srv := newDomainServer(t, `
		<a href="/1">Flood relief update number one</a>
		<a href="/2">Flood relief update number two</a>
		<a href="/3">Flood relief update number three</a>`)

	f := NewFinder([]string{srv.URL}, 5*time.Second, nil)
	hits, err := f.Search(context.Background(), "flood relief", 2)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, srv.URL+"/1", hits[0].URL)
	assert.Equal(t, srv.URL+"/2", hits[1].URL)
}

func TestFinderSearchSkipsFailedDomain(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	empty := newDomainServer(t, "")
	alive := newDomainServer(t, `<a href="/x">Election results announced officially</a>`)

	f := NewFinder([]string{deadURL, empty.URL, alive.URL}, time.Second, nil)
	hits, err := f.Search(context.Background(), "election results", 5)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, alive.URL+"/x", hits[0].URL)
}

func TestFinderSearchZeroLimit(t *testing.T) {
	f := NewFinder([]string{"http://never-contacted.invalid"}, time.Second, nil)
	hits, err := f.Search(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFinderSearchCancelledContext(t *testing.T) {
	srv := newDomainServer(t, `<a href="/x">Something that matches the query text</a>`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFinder([]string{srv.URL}, time.Second, nil)
	_, err := f.Search(ctx, "query", 5)
	require.Error(t, err)
}
