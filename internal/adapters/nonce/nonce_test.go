package nonce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestService(now time.Time) *Service {
	s := NewService("test-secret", time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	token := s.Issue("paypal_pro-checkout")

	assert.True(t, s.Verify(token, "paypal_pro-checkout"))
	assert.False(t, s.Verify(token, "it-exchange-paypal_pro-settings"), "token is bound to its action")
}

func TestVerifyRejects(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)
	valid := s.Issue("checkout")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "no separator", token: "abcdef"},
		{name: "bad timestamp", token: "notanumber.abcdef"},
		{name: "tampered signature", token: valid[:len(valid)-1] + "x"},
		{name: "missing signature", token: "1714564800."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, s.Verify(tt.token, "checkout"))
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(issuedAt)
	token := s.Issue("checkout")

	s.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	assert.True(t, s.Verify(token, "checkout"))

	s.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	assert.False(t, s.Verify(token, "checkout"))
}

func TestVerifyDifferentSecret(t *testing.T) {
	now := time.Now()
	a := newTestService(now)
	b := NewService("other-secret", time.Hour)

	assert.False(t, b.Verify(a.Issue("checkout"), "checkout"))
}
