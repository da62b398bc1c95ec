package models

// Label classifies a checked claim
type Label string

const (
	LabelVerified   Label = "Verified"
	LabelSuspicious Label = "Suspicious"
	LabelFake       Label = "Fake"
)

// Support describes how an evidence quote relates to the claim
type Support string

const (
	SupportSupports  Support = "supports"
	SupportRefutes   Support = "refutes"
	SupportUnrelated Support = "unrelated"
)

// EvidenceItem is a quoted fragment from a fetched source, tagged with
// whether it supports, refutes, or is unrelated to the claim
type EvidenceItem struct {
	URL     string  `json:"url"`
	Quote   string  `json:"quote"`
	Support Support `json:"support"`
}

// Verdict is the structured fact-check result returned by the model
type Verdict struct {
	Label       Label          `json:"label"`
	Explanation string         `json:"explanation"`
	Confidence  float64        `json:"confidence"`
	Evidence    []EvidenceItem `json:"evidence"`
}

// Normalize coerces a model-produced verdict into the closed taxonomy.
// Unknown labels become Suspicious, unknown support values become
// unrelated, and confidence is clamped to [0, 1].
func (v *Verdict) Normalize() {
	switch v.Label {
	case LabelVerified, LabelSuspicious, LabelFake:
	default:
		v.Label = LabelSuspicious
	}

	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}

	if v.Evidence == nil {
		v.Evidence = []EvidenceItem{}
	}
	for i := range v.Evidence {
		switch v.Evidence[i].Support {
		case SupportSupports, SupportRefutes, SupportUnrelated:
		default:
			v.Evidence[i].Support = SupportUnrelated
		}
	}
}

// FallbackVerdict wraps an unparseable model response in a well-formed
// verdict so the check request never fails on malformed output
func FallbackVerdict(rawText string) Verdict {
	return Verdict{
		Label:       LabelSuspicious,
		Explanation: rawText,
		Confidence:  0.5,
		Evidence:    []EvidenceItem{},
	}
}
