package models

// CheckResponse is the top-level result of one check request. Sources
// holds fetched records when any fetch succeeded, otherwise the raw
// search hits that seeded the fetch loop.
type CheckResponse struct {
	Analysis Verdict       `json:"analysis"`
	Scam     ScamResult    `json:"scam"`
	Sources  []SourceEntry `json:"sources"`
}
