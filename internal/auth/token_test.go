package auth

import (
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func TestVerifyBearerRoundTrip(t *testing.T) {
	token, err := Sign(7, RoleBroker, 24*time.Hour, testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	ident, err := VerifyBearer("Bearer "+token, testSecret)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if ident.ID != 7 {
		t.Fatalf("id mismatch: got %d want 7", ident.ID)
	}
	if ident.Role != RoleBroker {
		t.Fatalf("role mismatch: got %q want broker", ident.Role)
	}
}

func TestVerifyBearerSchemeCaseInsensitive(t *testing.T) {
	token, err := Sign(1, RoleUser, time.Hour, testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := VerifyBearer("bearer "+token, testSecret); err != nil {
		t.Fatalf("lowercase scheme should verify, got %v", err)
	}
}

func TestVerifyBearerMissing(t *testing.T) {
	if _, err := VerifyBearer("", testSecret); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestVerifyBearerMalformed(t *testing.T) {
	cases := []string{
		"Token abc",
		"Bearer",
		"Bearer ",
		"abc",
	}
	for _, header := range cases {
		if _, err := VerifyBearer(header, testSecret); !errors.Is(err, ErrMalformedCredential) {
			t.Fatalf("header %q: expected ErrMalformedCredential, got %v", header, err)
		}
	}
}

func TestVerifyBearerWrongSecret(t *testing.T) {
	token, err := Sign(7, RoleBroker, time.Hour, testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := VerifyBearer("Bearer "+token, []byte("other-secret")); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestVerifyBearerExpired(t *testing.T) {
	token, err := Sign(7, RoleBroker, -time.Minute, testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := VerifyBearer("Bearer "+token, testSecret); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for expired token, got %v", err)
	}
}
