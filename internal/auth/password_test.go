package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"unidash/internal/model"
)

func sha256Hex(s string) string {
	digest := sha256.Sum256([]byte(s))
	return hex.EncodeToString(digest[:])
}

func TestHashPassword(t *testing.T) {
	hash, algo, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.Equal(t, model.AlgoSHA256Salted, algo)
	assert.Contains(t, hash, "$")
	assert.Greater(t, len(hash), 50)

	assert.True(t, VerifyPassword("password123", hash, algo))
	assert.False(t, VerifyPassword("password124", hash, algo))
}

func TestVerifyPassword_TaggedDispatch(t *testing.T) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		stored   string
		algo     string
		want     bool
	}{
		{"bcrypt match", "secret", string(bcryptHash), model.AlgoBcrypt, true},
		{"bcrypt mismatch", "wrong", string(bcryptHash), model.AlgoBcrypt, false},
		{"bare sha256 match", "secret", sha256Hex("secret"), model.AlgoSHA256, true},
		{"bare sha256 mismatch", "wrong", sha256Hex("secret"), model.AlgoSHA256, false},
		{"plain match", "secret", "secret", model.AlgoPlain, true},
		{"plain mismatch", "wrong", "secret", model.AlgoPlain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.password, tt.stored, tt.algo))
		})
	}
}

func TestVerifyPassword_LegacyFormats(t *testing.T) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	salt := "a1b2c3d4e5f60718a1b2c3d4e5f60718"
	salted := salt + "$" + sha256Hex("secret"+salt)

	tests := []struct {
		name     string
		password string
		stored   string
		want     bool
	}{
		{"bcrypt marker match", "secret", string(bcryptHash), true},
		{"bcrypt marker mismatch", "wrong", string(bcryptHash), false},
		{"plaintext escape hatch", "admin-password", "admin-password", true},
		{"salted digest match", "secret", salted, true},
		{"salted digest mismatch", "wrong", salted, false},
		{"bare digest match", "secret", sha256Hex("secret"), true},
		{"bare digest mismatch", "wrong", sha256Hex("secret"), false},
		{"equality fallback match", "abc123", "abc123", true},
		{"equality fallback mismatch", "abc124", "abc123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.password, tt.stored, ""))
		})
	}
}

// A value that parses as a 64-char hex digest must be handled by the
// bare-digest rule, not silently accepted by the trailing equality fallback.
func TestVerifyPassword_BareDigestPrecedence(t *testing.T) {
	stored := strings.Repeat("deadbeef", 8)
	assert.Len(t, stored, 64)

	assert.False(t, VerifyPassword("wrong", stored, ""))

	// The plaintext-equality rule still precedes the digest rule.
	assert.True(t, VerifyPassword(stored, stored, ""))
}
