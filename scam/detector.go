// Package scam holds the heuristic signatures for common Indian payment
// and phishing scams. Detection is pure pattern matching, no I/O.
package scam

import (
	"regexp"

	"github.com/SrikarVamsi/Gem/models"
)

// signature pairs a human-readable name with its pattern. The slice
// order is the order names appear in ScamResult.Matched.
type signature struct {
	name    string
	pattern *regexp.Regexp
}

var signatures = []signature{
	{"free lottery or prize won", regexp.MustCompile(`(?i)free\s*lottery|won\s*prize`)},
	{"update KYC or block account", regexp.MustCompile(`(?i)update\s*KYC|block\s*account`)},
	{"OTP sharing", regexp.MustCompile(`(?i)OTP\s*sharing`)},
	{"unrealistic investment returns", regexp.MustCompile(`(?i)90%\s*returns|double\s*investment`)},
	{"urgent payment or UPI transfer", regexp.MustCompile(`(?i)urgent\s*payment|UPI\s*transfer`)},
}

// Detector matches content against the fixed signature set
type Detector struct{}

// NewDetector creates a detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns which signatures fired for the given content. Matched
// preserves signature order, not occurrence order within the content.
func (d *Detector) Detect(content string) models.ScamResult {
	matched := make([]string, 0, len(signatures))
	for _, sig := range signatures {
		if sig.pattern.MatchString(content) {
			matched = append(matched, sig.name)
		}
	}
	return models.ScamResult{
		IsSuspicious: len(matched) > 0,
		Matched:      matched,
	}
}
