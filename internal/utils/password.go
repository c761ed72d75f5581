package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2Iterations is the work factor for new digests. Existing digests carry
// their own iteration count.
var PBKDF2Iterations = 600000

const (
	pbkdf2Method  = "pbkdf2"
	pbkdf2KeyLen  = sha256.Size
	saltLen       = 16
	saltAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	legacyDefault = 600000
)

// HashPassword returns a salted digest in the form
// pbkdf2:sha256:<iterations>$<salt>$<hex>.
func HashPassword(password string) (string, error) {
	salt, err := genSalt(saltLen)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), PBKDF2Iterations, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("%s:sha256:%d$%s$%s", pbkdf2Method, PBKDF2Iterations, salt, hex.EncodeToString(key)), nil
}

// VerifyPassword reports whether password matches digest. Malformed digests
// never match.
func VerifyPassword(password, digest string) bool {
	if IsBcryptHash(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}

	parts := strings.SplitN(digest, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	iterations, ok := parsePBKDF2Method(method)
	if !ok || salt == "" {
		return false
	}

	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) != pbkdf2KeyLen {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, pbkdf2KeyLen, sha256.New)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// IsBcryptHash reports whether digest was produced by bcrypt.
func IsBcryptHash(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") || strings.HasPrefix(digest, "$2b$") || strings.HasPrefix(digest, "$2y$")
}

// parsePBKDF2Method accepts "pbkdf2:sha256" and "pbkdf2:sha256:<n>".
func parsePBKDF2Method(method string) (int, bool) {
	fields := strings.Split(method, ":")
	if len(fields) < 2 || len(fields) > 3 || fields[0] != pbkdf2Method || fields[1] != "sha256" {
		return 0, false
	}
	if len(fields) == 2 {
		return legacyDefault, true
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func genSalt(n int) (string, error) {
	var sb strings.Builder
	limit := big.NewInt(int64(len(saltAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(saltAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}
