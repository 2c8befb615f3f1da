package auth

import (
	"testing"
	"time"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	token, err := issuer.Issue(7, "Dr Martin", "doctor")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID() != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID())
	}
	if claims.Name != "Dr Martin" || claims.Role != "doctor" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret-a"), time.Hour)
	token, err := issuer.Issue(1, "x", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := NewTokenIssuer([]byte("secret-b"), time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected verification failure with a different secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)
	token, err := issuer.Issue(1, "x", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("CheckPassword rejected correct password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword accepted wrong password")
	}
}
