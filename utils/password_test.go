package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "s3cret-password") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestCheckPasswordEmptyInputs(t *testing.T) {
	hash, err := HashPassword("something")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if CheckPassword("", "something") {
		t.Fatal("empty hash must not match")
	}
	if CheckPassword(hash, "") {
		t.Fatal("empty plaintext must not match")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same input should differ")
	}
}
