package models

// ScamResult reports which scam signatures matched a piece of content.
// Matched preserves signature-list order; an empty list means not suspicious.
type ScamResult struct {
	IsSuspicious bool     `json:"is_suspicious"`
	Matched      []string `json:"matched"`
}
