package callerauth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer, err := NewIssuer("secret", "peerraise")
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, err := issuer.Issue("principal-a", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "principal-a" {
		t.Fatalf("expected principal-a, got %s", subject)
	}
}

func TestVerifyRejects(t *testing.T) {
	good, _ := NewIssuer("secret", "peerraise")
	otherSecret, _ := NewIssuer("other", "peerraise")
	otherIssuer, _ := NewIssuer("secret", "someone-else")

	expired, _ := good.Issue("principal-a", time.Minute, time.Now().Add(-time.Hour))
	foreign, _ := otherSecret.Issue("principal-a", time.Hour, time.Now())
	wrongIssuer, _ := otherIssuer.Issue("principal-a", time.Hour, time.Now())

	tests := map[string]string{
		"expired":       expired,
		"bad signature": foreign,
		"wrong issuer":  wrongIssuer,
		"garbage":       "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := good.Verify(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected invalid token, got %v", err)
			}
		})
	}
}

func TestIssuerRequiresSecretAndSubject(t *testing.T) {
	if _, err := NewIssuer(" ", ""); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected missing secret, got %v", err)
	}
	issuer, _ := NewIssuer("secret", "")
	if _, err := issuer.Issue("", time.Hour, time.Now()); !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected missing subject, got %v", err)
	}
}
