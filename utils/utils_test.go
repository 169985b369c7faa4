package utils

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.GenerateToken("ana", "65f1c0ffee", []string{"Team_Member", "Admin"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "ana" || claims.Subject != "ana" || claims.UserID != "65f1c0ffee" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if !claims.HasRole("Admin") || claims.HasRole("Team_Leader") {
		t.Errorf("roles not carried over: %v", claims.Roles)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.GenerateToken("ana", "1", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := NewTokenIssuer("other", time.Hour).ValidateToken(token); err == nil {
		t.Error("expected a token signed with another secret to be rejected")
	}

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken("ana", "1", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := issuer.ValidateToken(old); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Errorf("expected expiry error, got %v", err)
	}

	if _, err := issuer.ValidateToken("not-a-token"); err == nil {
		t.Error("expected garbage to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in clear")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("expected matching password to pass")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}
