package service

import (
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	want := Identity{
		UserID:    "user-123",
		Username:  "alice",
		AvatarURL: "https://cdn.example.com/alice.png",
	}

	token, err := GenerateJWT(want)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	got, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if *got != want {
		t.Errorf("round trip mismatch: got %+v want %+v", *got, want)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	if _, err := ParseJWT("not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
