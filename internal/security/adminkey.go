package security

import "crypto/subtle"

// AdminVerifier checks the admin credential presented on admin routes against the
// configured key. Exactly one of hash (bcrypt, preferred) or plain key is used; when
// neither is configured every check fails, which disables the admin surface.
// The check never touches the store, so its outcome reveals nothing about whether a
// target license exists.
type AdminVerifier struct {
	hash   string
	plain  string
	hasher *Hasher
}

// NewAdminVerifier returns an AdminVerifier. hash takes precedence over plain when
// both are set.
func NewAdminVerifier(hash, plain string, hasher *Hasher) *AdminVerifier {
	if hasher == nil {
		hasher = NewHasher(0)
	}
	return &AdminVerifier{hash: hash, plain: plain, hasher: hasher}
}

// Verify reports whether candidate matches the configured admin credential.
// Comparison is constant-time in both modes.
func (v *AdminVerifier) Verify(candidate string) bool {
	if candidate == "" {
		return false
	}
	if v.hash != "" {
		return v.hasher.Compare(v.hash, []byte(candidate)) == nil
	}
	if v.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.plain), []byte(candidate)) == 1
}

// Enabled reports whether an admin credential is configured at all.
func (v *AdminVerifier) Enabled() bool {
	return v.hash != "" || v.plain != ""
}
