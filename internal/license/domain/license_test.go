package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestExpired_StrictBoundary(t *testing.T) {
	l := &License{ID: "L", ExpiresAt: 1000}

	if l.Expired(1000) {
		t.Error("a license expiring at exactly now must not be expired")
	}
	if !l.Expired(1001) {
		t.Error("a license one second past its deadline must be expired")
	}
	if l.Expired(999) {
		t.Error("a license before its deadline must not be expired")
	}
}

func TestState(t *testing.T) {
	cases := []struct {
		name string
		lic  License
		now  int64
		want State
	}{
		{"unbound valid", License{ExpiresAt: 2000}, 1000, StateUnbound},
		{"bound valid", License{ExpiresAt: 2000, Hwid: strPtr("H")}, 1000, StateBoundValid},
		{"expired", License{ExpiresAt: 500, Hwid: strPtr("H")}, 1000, StateInvalid},
		{"revoked", License{ExpiresAt: 2000, Hwid: strPtr("H"), Revoked: true}, 1000, StateInvalid},
		{"revoked and unbound", License{ExpiresAt: 2000, Revoked: true}, 1000, StateInvalid},
		{"expiring this second", License{ExpiresAt: 1000, Hwid: strPtr("H")}, 1000, StateBoundValid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.lic.State(c.now); got != c.want {
				t.Errorf("State(%d) = %q, want %q", c.now, got, c.want)
			}
		})
	}
}
