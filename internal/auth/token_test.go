package auth

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-test-secret-test-secret", time.Hour)

	token, err := issuer.Issue(42, "reader@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected subject 42, got %d", userID)
	}
	if claims.Email != "reader@example.com" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti claim")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-test-secret-test-secret", time.Hour)

	token, err := issuer.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := issuer.Verify(tampered); err == nil {
		t.Fatal("expected tampered token to fail verification")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-one-secret-one-secret-one", time.Hour)
	other := NewTokenIssuer("secret-two-secret-two-secret-two", time.Hour)

	token, err := issuer.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Fatal("expected token signed with a different key to fail")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-test-secret-test-secret", time.Hour)

	token, err := issuer.IssueWithExpiry(1, "a@example.com", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-test-secret-test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(tok); err == nil {
			t.Fatalf("expected %q to fail verification", tok)
		}
	}
}

func TestDefaultLifetimeIsOneDay(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-test-secret-test-secret", 0)
	if issuer.TTL() != 24*time.Hour {
		t.Fatalf("expected 24h default lifetime, got %s", issuer.TTL())
	}
}
