package scam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKYCPhishing(t *testing.T) {
	d := NewDetector()
	result := d.Detect("update KYC now or your account will be blocked")

	assert.True(t, result.IsSuspicious)
	assert.Contains(t, result.Matched, "update KYC or block account")
}

func TestDetectCleanText(t *testing.T) {
	d := NewDetector()
	result := d.Detect("The weather in Mumbai will be sunny tomorrow.")

	assert.False(t, result.IsSuspicious)
	assert.Empty(t, result.Matched)
}

func TestDetectSuspiciousMatchesFlag(t *testing.T) {
	d := NewDetector()
	tests := []string{
		"",
		"Congratulations, you WON PRIZE money!",
		"share your otp sharing details",
		"guaranteed 90% returns on crypto",
		"urgent payment needed, do a UPI transfer now",
		"nothing shady here",
	}

	for _, content := range tests {
		result := d.Detect(content)
		assert.Equal(t, len(result.Matched) > 0, result.IsSuspicious, "content: %q", content)
	}
}

func TestDetectAllSignaturesInOrder(t *testing.T) {
	d := NewDetector()
	content := "Free lottery! You won prize. Update KYC or we block account. " +
		"OTP sharing required. 90% returns, double investment. Urgent payment via UPI transfer."

	result := d.Detect(content)
	require.True(t, result.IsSuspicious)
	assert.Equal(t, []string{
		"free lottery or prize won",
		"update KYC or block account",
		"OTP sharing",
		"unrealistic investment returns",
		"urgent payment or UPI transfer",
	}, result.Matched)
}

func TestDetectIdempotent(t *testing.T) {
	d := NewDetector()
	content := "won prize, urgent payment"

	first := d.Detect(content)
	second := d.Detect(content)
	assert.Equal(t, first, second)
}

func TestDetectCaseInsensitive(t *testing.T) {
	d := NewDetector()
	assert.True(t, d.Detect("UPDATE kyc immediately").IsSuspicious)
	assert.True(t, d.Detect("FREE LOTTERY winner").IsSuspicious)
}
