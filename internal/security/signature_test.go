package security

import (
	"testing"
)

func TestSign_KnownVectors(t *testing.T) {
	s := NewSigner("test-secret")

	// Precomputed: sha256("True|1760000000" + "test-secret") etc.
	cases := []struct {
		valid     bool
		expiresAt int64
		want      string
	}{
		{true, 1760000000, "885d7c84d2c698277a8c5098953c54b27018c9b8d52ed24974b5303abc7a80ec"},
		{false, 1760000000, "ff6422c573592480ff649cd2b7e486f7e36162a324b741c7c9cbd25bd52da584"},
		{false, 0, "15102eb93065abbe61e0a9039eec40004c2511974fc4d4208d00ff86a04643ec"},
	}
	for _, c := range cases {
		if got := s.Sign(c.valid, c.expiresAt); got != c.want {
			t.Errorf("Sign(%v, %d) = %q, want %q", c.valid, c.expiresAt, got, c.want)
		}
	}
}

func TestSign_Deterministic(t *testing.T) {
	s := NewSigner("secret")
	if s.Sign(true, 123) != s.Sign(true, 123) {
		t.Error("Sign is not deterministic for identical inputs")
	}
	if len(s.Sign(true, 123)) != 64 {
		t.Errorf("signature length = %d, want 64 (SHA-256 hex)", len(s.Sign(true, 123)))
	}
}

func TestSign_ValidityEmbeddedInMessage(t *testing.T) {
	s := NewSigner("secret")
	if s.Sign(true, 123) == s.Sign(false, 123) {
		t.Error("positive and negative verdicts must not share a signature")
	}
	if s.Sign(false, 0) == s.Sign(false, 1) {
		t.Error("signature must cover the outgoing expiresAt")
	}
}

func TestSign_SecretDependent(t *testing.T) {
	if NewSigner("a").Sign(true, 1) == NewSigner("b").Sign(true, 1) {
		t.Error("different secrets must produce different signatures")
	}
}

func TestSignatureEqual(t *testing.T) {
	s := NewSigner("secret")
	sig := s.Sign(true, 9999)

	if !s.SignatureEqual(true, 9999, sig) {
		t.Error("SignatureEqual should match the signer's own output")
	}
	if s.SignatureEqual(false, 9999, sig) {
		t.Error("SignatureEqual must reject a valid-verdict signature replayed as invalid")
	}
	if s.SignatureEqual(true, 9998, sig) {
		t.Error("SignatureEqual must reject a signature for a different expiry")
	}
	if s.SignatureEqual(true, 9999, "") {
		t.Error("SignatureEqual must reject an empty signature")
	}
}
