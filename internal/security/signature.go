// Package security provides verdict signing and admin-credential verification.
package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
)

// Signer computes deterministic verdict signatures so a remote caller can trust a
// verdict returned out-of-band without querying the store itself. The signed message
// is "<True|False>|<expires>" followed by the shared secret, hashed with SHA-256 and
// hex-encoded. The token capitalization and separator are wire-compatible with
// previously issued signatures and must not change.
type Signer struct {
	secret string
}

// NewSigner returns a Signer using the given shared secret. The secret is read-only
// after construction; callers validate non-emptiness at startup.
func NewSigner(secret string) *Signer {
	return &Signer{secret: secret}
}

// Sign returns the hex-encoded SHA-256 signature over (valid, expiresAt).
// Identical inputs always produce identical signatures; both positive and negative
// verdicts are signed so neither can be replayed as the other.
func (s *Signer) Sign(valid bool, expiresAt int64) string {
	token := "False"
	if valid {
		token = "True"
	}
	msg := token + "|" + strconv.FormatInt(expiresAt, 10) + s.secret
	h := sha256.Sum256([]byte(msg))
	return hex.EncodeToString(h[:])
}

// SignatureEqual reports whether signature matches Sign(valid, expiresAt), using
// constant-time comparison. Used by tooling that re-validates relayed verdicts.
func (s *Signer) SignatureEqual(valid bool, expiresAt int64, signature string) bool {
	expected := s.Sign(valid, expiresAt)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
