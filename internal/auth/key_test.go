package auth

import "testing"

func TestHashAndVerifyAPIKey(t *testing.T) {
	t.Parallel()

	hash, err := HashAPIKey("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash api key: %v", err)
	}
	if hash == "" || hash == "correct horse battery staple" {
		t.Fatalf("unexpected hash: %q", hash)
	}

	if !VerifyAPIKey("correct horse battery staple", hash) {
		t.Fatalf("expected key to verify against its own hash")
	}
	if VerifyAPIKey("wrong key", hash) {
		t.Fatalf("expected wrong key to be rejected")
	}
}

func TestHashAPIKey_EmptyRejected(t *testing.T) {
	t.Parallel()

	if _, err := HashAPIKey("   "); err == nil {
		t.Fatalf("expected error for blank key")
	}
}

func TestVerifyAPIKey_EmptyInputs(t *testing.T) {
	t.Parallel()

	if VerifyAPIKey("", "somehash") {
		t.Fatalf("empty key must not verify")
	}
	if VerifyAPIKey("key", "") {
		t.Fatalf("empty hash must not verify")
	}
}
