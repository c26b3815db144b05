package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal the plain password")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatch to fail")
	}
	other, _ := HashPassword("s3cret-pass")
	if other == hash {
		t.Fatalf("expected per-hash salt")
	}
}

func TestNeedsRehash(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	if NeedsRehash(hash) {
		t.Error("fresh hash reported as stale")
	}
	BcryptCost = bcrypt.MinCost + 1
	defer func() { BcryptCost = bcrypt.MinCost }()
	if !NeedsRehash(hash) {
		t.Error("hash below the current cost not reported")
	}
	if NeedsRehash("not-a-hash") {
		t.Error("malformed hash reported as upgradable")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "campuslink"})
	token, expiresIn, err := svc.GenerateAccessToken("user-1", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expiresIn = %d", expiresIn)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "admin" || claims.Issuer != "campuslink" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour})
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestJWTExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "k", AccessTokenExp: time.Minute})
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	token, _, err := svc.GenerateAccessToken("user-1", "teacher")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	svc.now = time.Now
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected expired, got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer a.b.c", "a.b.c", true},
		{"a.b.c", "a.b.c", true},
		{"Bearer ", "", false},
		{"", "", false},
		{"Basic abc", "", false},
	}
	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if (err == nil) != tt.ok || got != tt.want {
			t.Fatalf("ExtractBearerToken(%q) = %q, %v", tt.header, got, err)
		}
	}
}
