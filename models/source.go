package models

// SearchHit is a lightweight search result from the trusted-domain walk
type SearchHit struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// SourceRecord is a fetched page with its extracted text. Text is
// whitespace-normalized and bounded by the fetcher's max-chars setting.
type SourceRecord struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// SourceEntry is the wire shape of one entry in CheckResponse.Sources.
// Fetched records carry text; raw search hits omit it.
type SourceEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

// SourceEntriesFromRecords converts fetched records for the response payload
func SourceEntriesFromRecords(records []SourceRecord) []SourceEntry {
	entries := make([]SourceEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, SourceEntry{URL: r.URL, Title: r.Title, Text: r.Text})
	}
	return entries
}

// SourceEntriesFromHits converts raw search hits for the fallback payload
func SourceEntriesFromHits(hits []SearchHit) []SourceEntry {
	entries := make([]SourceEntry, 0, len(hits))
	for _, h := range hits {
		entries = append(entries, SourceEntry{URL: h.URL, Title: h.Title})
	}
	return entries
}
