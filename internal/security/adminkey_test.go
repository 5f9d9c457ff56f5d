package security

import "testing"

func TestAdminVerifier_PlainKey(t *testing.T) {
	v := NewAdminVerifier("", "super-secret", nil)

	if !v.Verify("super-secret") {
		t.Error("Verify should accept the configured plain key")
	}
	if v.Verify("wrong") {
		t.Error("Verify should reject a wrong key")
	}
	if v.Verify("") {
		t.Error("Verify should reject an empty key")
	}
	if !v.Enabled() {
		t.Error("Enabled should be true with a plain key configured")
	}
}

func TestAdminVerifier_BcryptHash(t *testing.T) {
	hasher := NewHasher(4) // min cost to keep the test fast
	hash, err := hasher.Hash([]byte("super-secret"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	v := NewAdminVerifier(hash, "", hasher)

	if !v.Verify("super-secret") {
		t.Error("Verify should accept the hashed key")
	}
	if v.Verify("wrong") {
		t.Error("Verify should reject a wrong key against the hash")
	}
}

func TestAdminVerifier_HashTakesPrecedence(t *testing.T) {
	hasher := NewHasher(4)
	hash, err := hasher.Hash([]byte("hashed-key"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	v := NewAdminVerifier(hash, "plain-key", hasher)

	if v.Verify("plain-key") {
		t.Error("plain key must be ignored when a hash is configured")
	}
	if !v.Verify("hashed-key") {
		t.Error("hashed key should verify when both are configured")
	}
}

func TestAdminVerifier_Disabled(t *testing.T) {
	v := NewAdminVerifier("", "", nil)

	if v.Enabled() {
		t.Error("Enabled should be false with no credential configured")
	}
	if v.Verify("anything") {
		t.Error("Verify must fail when no credential is configured")
	}
}
