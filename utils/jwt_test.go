package utils

import (
	"testing"
	"time"

	"pitchbook/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "unit-test-secret"

	token, err := GenerateToken("u1", "user", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	sub, role, err := ExtractClaimsFromToken(token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if sub != "u1" || role != "user" {
		t.Fatalf("expected sub u1 role user, got %s/%s", sub, role)
	}
}

func TestTokenSignedWithDifferentSecretIsRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "secret-a"
	token, err := GenerateToken("u1", "user", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	config.AppConfig.JWTSecret = "secret-b"
	if _, _, err := ExtractClaimsFromToken(token); err == nil {
		t.Fatalf("expected validation to fail under a different secret")
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "unit-test-secret"

	token, err := GenerateToken("u1", "user", -time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, _, err := ExtractClaimsFromToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}
