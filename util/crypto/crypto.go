// Package crypto implements the credential store: a deterministic keyed
// digest used identically for account passwords, usernames (as a lookup
// key) and admin passwords. Determinism is required by the login
// contract, which matches stored digests by equality; the key makes the
// digest useless against precomputed tables once operators set their own.
package crypto

import (
	"encoding/hex"

	"blog-ui/config"

	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex-encoded keyed BLAKE2b-256 digest of secret.
func Digest(secret string) string {
	key := blake2b.Sum256([]byte(config.GetCredentialKey()))
	h, err := blake2b.New256(key[:])
	if err != nil {
		// New256 only fails on oversized keys; ours is fixed at 32 bytes.
		panic(err)
	}
	h.Write([]byte(secret))
	return hex.EncodeToString(h.Sum(nil))
}
