package services

import (
	"strings"
	"testing"
)

func TestSignAndParseToken(t *testing.T) {
	secret := []byte("rahasia-test")

	token, err := SignToken(secret, 42, "admin")
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user_id = %d, want 42", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q, want admin", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := SignToken([]byte("rahasia-a"), 1, "user")
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ParseToken([]byte("rahasia-b"), token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken([]byte("rahasia"), "bukan.token.jwt")
	if err == nil || !strings.Contains(err.Error(), "token tidak valid") {
		t.Fatalf("expected invalid token error, got: %v", err)
	}
}
