package services

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	auth := NewAuthService("test-signing-secret")

	token, expiresAt, err := auth.GenerateToken("user-1", "dev@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if expiresAt.IsZero() {
		t.Fatal("zero expiry")
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected userId user-1, got %q", claims.UserID)
	}
	if claims.Email != "dev@example.com" {
		t.Errorf("expected email dev@example.com, got %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role admin, got %q", claims.Role)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewAuthService("first-secret").GenerateToken("user-1", "dev@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := NewAuthService("second-secret").ValidateToken(token); err == nil {
		t.Fatal("expected validation error with different secret, got nil")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	auth := NewAuthService("")

	if _, _, err := auth.GenerateToken("user-1", "dev@example.com", "user"); err == nil {
		t.Fatal("expected error without a configured secret, got nil")
	}
}
