package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"unidash/internal/model"
)

// HashPassword produces a salted SHA-256 hash in salt$digest form, the write
// format shared with the hosted stores. The returned algorithm tag is stored
// alongside the hash so verification never has to guess the format.
func HashPassword(password string) (hash, algo string, err error) {
	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(saltBytes)
	digest := sha256.Sum256([]byte(password + salt))
	return salt + "$" + hex.EncodeToString(digest[:]), model.AlgoSHA256Salted, nil
}

// VerifyPassword checks password against storedHash. Records tagged with an
// explicit algorithm dispatch directly; untagged records fall back to the
// legacy format detection.
func VerifyPassword(password, storedHash, algo string) bool {
	switch algo {
	case model.AlgoBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
	case model.AlgoSHA256Salted:
		return verifySaltedDigest(password, storedHash)
	case model.AlgoSHA256:
		return verifyBareDigest(password, storedHash)
	case model.AlgoPlain:
		return subtle.ConstantTimeCompare([]byte(password), []byte(storedHash)) == 1
	default:
		return verifyLegacyHash(password, storedHash)
	}
}

// verifyLegacyHash handles records migrated across hash formats over time by
// inferring the format from the stored value's shape. The precedence order is
// load-bearing: a value matching an earlier rule is always interpreted that
// way, even if a later rule would also match.
func verifyLegacyHash(password, storedHash string) bool {
	switch {
	// bcrypt hashes carry a version marker prefix.
	case strings.HasPrefix(storedHash, "$2a$") || strings.HasPrefix(storedHash, "$2b$") || strings.HasPrefix(storedHash, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil

	// Seeded admin accounts store the plaintext itself.
	case storedHash == password:
		return true

	// Salted digest in salt$digest form.
	case strings.Contains(storedHash, "$") && len(storedHash) > 50:
		return verifySaltedDigest(password, storedHash)

	// Bare SHA-256 digest without salt.
	case len(storedHash) == 64:
		return verifyBareDigest(password, storedHash)

	default:
		return password == storedHash
	}
}

func verifySaltedDigest(password, storedHash string) bool {
	salt, digest, ok := strings.Cut(storedHash, "$")
	if !ok {
		return false
	}
	computed := sha256.Sum256([]byte(password + salt))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(computed[:])), []byte(digest)) == 1
}

func verifyBareDigest(password, storedHash string) bool {
	computed := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(computed[:])), []byte(storedHash)) == 1
}
