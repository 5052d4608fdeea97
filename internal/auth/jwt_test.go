package auth

import (
	"testing"
	"time"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	pair, err := Issue("acc-1", "admin", "admin", "ccsa-attendance", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected non-empty tokens")
	}

	claims, err := Parse(pair.AccessToken, "test-key", "ccsa-attendance")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "acc-1" || claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestParse_RejectsWrongKey(t *testing.T) {
	pair, err := Issue("acc-1", "admin", "admin", "ccsa-attendance", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "other-key", "ccsa-attendance"); err == nil {
		t.Fatal("expected parse to fail with wrong key")
	}
}

func TestParse_RejectsIssuerMismatch(t *testing.T) {
	pair, err := Issue("acc-1", "admin", "admin", "other-issuer", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "test-key", "ccsa-attendance"); err == nil {
		t.Fatal("expected parse to fail on issuer mismatch")
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	pair, err := Issue("acc-1", "admin", "admin", "ccsa-attendance", "test-key", -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "test-key", "ccsa-attendance"); err == nil {
		t.Fatal("expected parse to fail on expired token")
	}
}
