package sealer

import (
	"encoding/base64"
	"testing"
)

const testKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

func TestSealOpenRoundtrip(t *testing.T) {
	token, err := SealCredentials(testKey, "guest@example.com", "s3cr3t:with:colons")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	email, password, err := OpenCredentials(testKey, token)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if email != "guest@example.com" {
		t.Errorf("unexpected email %q", email)
	}
	if password != "s3cr3t:with:colons" {
		t.Errorf("unexpected password %q", password)
	}
}

func TestSealProducesFreshTokens(t *testing.T) {
	a, err := SealCredentials(testKey, "guest@example.com", "password")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	b, err := SealCredentials(testKey, "guest@example.com", "password")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	if a == b {
		t.Error("sealing twice must not produce identical tokens")
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	token, err := SealCredentials(testKey, "guest@example.com", "password")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	otherKey := base64.StdEncoding.EncodeToString(make([]byte, 32))
	if _, _, err := OpenCredentials(otherKey, token); err == nil {
		t.Error("opening with a different key must fail")
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, _, err := OpenCredentials(testKey, "not-a-token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
	if _, _, err := OpenCredentials(testKey, ""); err == nil {
		t.Error("expected an error for an empty token")
	}
	if _, _, err := OpenCredentials("%%%", "not-a-token"); err == nil {
		t.Error("expected an error for a malformed key")
	}
}
