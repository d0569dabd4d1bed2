package csrf

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestTokenRoundTrip(t *testing.T) {
	token, err := mintToken(testKey, "csrf_sid-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, checkToken(testKey, token, "csrf_sid-1", time.Hour))
}

func TestTokenBoundToSession(t *testing.T) {
	token, err := mintToken(testKey, "csrf_sid-1")
	require.NoError(t, err)

	err = checkToken(testKey, token, "csrf_sid-2", time.Hour)
	assert.ErrorIs(t, err, ErrTokenMismatch)
}

func TestTokenRejectsWrongKey(t *testing.T) {
	otherKey := []byte("ffffffffffffffffffffffffffffffff")

	token, err := mintToken(testKey, "csrf_sid-1")
	require.NoError(t, err)

	assert.ErrorIs(t, checkToken(otherKey, token, "csrf_sid-1", time.Hour), ErrTokenMismatch)
}

func TestTokenTamperingDetected(t *testing.T) {
	token, err := mintToken(testKey, "csrf_sid-1")
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)

	// flip one byte of the signed payload
	decoded[0] ^= 0x01
	tampered := base64.RawURLEncoding.EncodeToString(decoded)

	assert.ErrorIs(t, checkToken(testKey, tampered, "csrf_sid-1", time.Hour), ErrTokenMismatch)
}

func TestTokenGarbageInputs(t *testing.T) {
	tests := []string{
		"",
		"not base64 !!",
		base64.RawURLEncoding.EncodeToString([]byte("too:few:parts")),
		base64.RawURLEncoding.EncodeToString([]byte("nan:00ff:csrf_sid-1:00ff")),
		base64.RawURLEncoding.EncodeToString([]byte("1234:zz:csrf_sid-1:00ff")),
	}

	for _, token := range tests {
		assert.ErrorIs(t, checkToken(testKey, token, "csrf_sid-1", time.Hour), ErrTokenMismatch)
	}
}

// mintTokenAt builds a validly signed token with an arbitrary timestamp.
func mintTokenAt(key []byte, session string, issued time.Time) string {
	payload := fmt.Sprintf("%d:%s:%s", issued.UTC().Unix(), hex.EncodeToString(make([]byte, 16)), session)

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	signature := mac.Sum(nil)

	return base64.RawURLEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s:%s", payload, hex.EncodeToString(signature))),
	)
}

func TestTokenExpiration(t *testing.T) {
	stale := mintTokenAt(testKey, "csrf_sid-1", time.Now().Add(-2*time.Hour))

	assert.ErrorIs(t, checkToken(testKey, stale, "csrf_sid-1", time.Hour), ErrTokenExpired)
	assert.NoError(t, checkToken(testKey, stale, "csrf_sid-1", 3*time.Hour))

	// zero expiration disables the age check
	assert.NoError(t, checkToken(testKey, stale, "csrf_sid-1", 0))
}

func TestConfigDefault(t *testing.T) {
	cfg := configDefault()

	assert.Equal(t, DefaultContextKey, cfg.ContextKey)
	assert.Equal(t, DefaultFormFieldName, cfg.FormFieldName)
	assert.Equal(t, DefaultHeaderName, cfg.HeaderName)
	assert.Equal(t, DefaultSessionCookie, cfg.SessionCookie)
	assert.Equal(t, 24*time.Hour, cfg.Expiration)
	assert.Contains(t, cfg.SafeMethods, "GET")
	assert.Len(t, cfg.SecureKey, 32)
	assert.NotNil(t, cfg.ErrorHandler)
	assert.NotNil(t, cfg.SuccessHandler)
}

func TestConfigRejectsShortKey(t *testing.T) {
	assert.Panics(t, func() {
		configDefault(Config{SecureKey: []byte("short")})
	})
}

func TestTemplateHelpers(t *testing.T) {
	helpers := CSRFTemplateHelpers()

	assert.Contains(t, helpers, "csrf_token")
	assert.Contains(t, helpers["csrf_field"], DefaultFormFieldName)
	assert.Equal(t, DefaultHeaderName, helpers["csrf_header_name"])
}
