// Package nonce issues and verifies the CSRF tokens used by the checkout
// dialog and the settings forms.
package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Service signs tokens with HMAC-SHA256 over the action and issue time.
// A token is <unix seconds>.<hex signature> and is valid for ttl.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a nonce service.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a fresh token bound to action.
func (s *Service) Issue(action string) string {
	ts := strconv.FormatInt(s.now().Unix(), 10)
	return ts + "." + s.sign(action, ts)
}

// Verify checks the token signature for action and that it has not expired.
func (s *Service) Verify(token, action string) bool {
	if token == "" || len(s.secret) == 0 {
		return false
	}

	ts, sig, ok := strings.Cut(token, ".")
	if !ok || ts == "" || sig == "" {
		return false
	}

	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}

	age := s.now().Sub(time.Unix(issued, 0))
	if age < -time.Minute || age > s.ttl {
		return false
	}

	// Compare signatures (constant-time comparison)
	return hmac.Equal([]byte(sig), []byte(s.sign(action, ts)))
}

// sign computes HMAC-SHA256 of "<action>|<ts>".
func (s *Service) sign(action, ts string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(action + "|" + ts))
	return hex.EncodeToString(h.Sum(nil))
}
