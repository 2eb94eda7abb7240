// Package cryptox derives and checks password digests for stored accounts.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the per-account random salt.
const SaltSize = 16

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// DerivePasswordHash stretches password with argon2id under salt.
func DerivePasswordHash(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword generates a fresh salt and returns (hash, salt).
func HashPassword(password []byte) ([]byte, []byte) {
	salt := common.GenerateRandByteArray(SaltSize)
	return DerivePasswordHash(password, salt), salt
}

// VerifyPassword reports whether password hashes to want under salt.
// The comparison runs in constant time.
func VerifyPassword(password, salt, want []byte) bool {
	if len(want) == 0 {
		return false
	}
	got := DerivePasswordHash(password, salt)
	defer common.WipeByteArray(got)
	return subtle.ConstantTimeCompare(got, want) == 1
}
