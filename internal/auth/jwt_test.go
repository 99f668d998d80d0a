package auth

import (
	"testing"
	"time"
)

func TestMintAndParse(t *testing.T) {
	token, err := MintToken(17, "frank", "secret", time.Hour)
	if err != nil {
		t.Fatalf("MintToken() error = %v", err)
	}

	claims, err := ParseClaims(token, "secret")
	if err != nil {
		t.Fatalf("ParseClaims() error = %v", err)
	}

	if claims.UserID != 17 {
		t.Errorf("UserID = %v, want 17", claims.UserID)
	}
	if claims.Username != "frank" {
		t.Errorf("Username = %v, want frank", claims.Username)
	}
}

func TestParseClaims_WrongSecret(t *testing.T) {
	token, err := MintToken(17, "frank", "secret", time.Hour)
	if err != nil {
		t.Fatalf("MintToken() error = %v", err)
	}

	if _, err := ParseClaims(token, "other-secret"); err == nil {
		t.Error("ParseClaims() with wrong secret expected error, got nil")
	}
}

func TestParseClaims_Expired(t *testing.T) {
	token, err := MintToken(17, "frank", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("MintToken() error = %v", err)
	}

	if _, err := ParseClaims(token, "secret"); err == nil {
		t.Error("ParseClaims() with expired token expected error, got nil")
	}
}
