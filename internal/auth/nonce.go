package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/localewatch/localewatch/internal/config"
)

// NonceService issues and verifies anti-forgery tokens. Tokens are bound to
// an action name and a time window: a token is an HMAC over the current
// window counter, keyed by a per-action key derived from the service secret.
// Verification accepts the current and the immediately preceding window, so
// a token remains valid for between half and the full configured lifetime.
type NonceService struct {
	secret   []byte
	lifetime time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewNonceService creates a nonce service from the security configuration.
func NewNonceService(cfg *config.SecuritySettings) *NonceService {
	lifetime := cfg.NonceLifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	return &NonceService{
		secret:   []byte(cfg.NonceSecret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Create issues a token for an action, valid in the current time window.
func (s *NonceService) Create(action string) string {
	return s.tokenFor(action, s.tick(0))
}

// Verify reports whether a token is valid for an action. Tokens from the
// current and the previous window are accepted; anything else, including a
// token issued for a different action, is rejected.
func (s *NonceService) Verify(token, action string) bool {
	if token == "" {
		return false
	}
	for _, offset := range []int64{0, -1} {
		expected := s.tokenFor(action, s.tick(offset))
		if hmac.Equal([]byte(token), []byte(expected)) {
			return true
		}
	}
	return false
}

// tick returns the window counter, offset by a number of windows. Windows
// are half the configured lifetime so that accepting the previous window
// yields at least half a lifetime of validity.
func (s *NonceService) tick(offset int64) int64 {
	windowSeconds := int64(s.lifetime.Seconds()) / 2
	if windowSeconds < 1 {
		windowSeconds = 1
	}
	return s.now().Unix()/windowSeconds + offset
}

// tokenFor computes the token for an action and window counter.
func (s *NonceService) tokenFor(action string, tick int64) string {
	mac := hmac.New(sha256.New, s.actionKey(action))
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], uint64(tick))
	mac.Write(counter[:])
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
}

// actionKey derives the per-action signing key from the service secret.
// Deriving instead of concatenating keeps tokens for different actions
// cryptographically independent.
func (s *NonceService) actionKey(action string) []byte {
	reader := hkdf.New(sha256.New, s.secret, nil, []byte(action))
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		// HKDF over SHA-256 cannot fail for a 32-byte read.
		panic(err)
	}
	return key
}
