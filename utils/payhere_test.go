package utils

import (
	"strings"
	"testing"
)

func TestPayHereCheckoutHash(t *testing.T) {
	hash := PayHereCheckoutHash("1211149", "order-1", 2500, "LKR", "secret")

	if len(hash) != 32 {
		t.Fatalf("hash length = %d, want 32", len(hash))
	}
	if hash != strings.ToUpper(hash) {
		t.Fatal("hash must be uppercase")
	}

	// Amount is always formatted with two decimals, so 2500 and 2500.00
	// produce the same signature.
	same := PayHereCheckoutHash("1211149", "order-1", 2500.00, "LKR", "secret")
	if hash != same {
		t.Fatal("equal amounts must produce equal hashes")
	}

	different := PayHereCheckoutHash("1211149", "order-1", 2500.50, "LKR", "secret")
	if hash == different {
		t.Fatal("different amounts must produce different hashes")
	}
}

func TestVerifyPayHereNotification(t *testing.T) {
	secret := "merchant-secret"
	sig := md5Upper("1211149" + "order-1" + "2500.00" + "LKR" + "2" + md5Upper(secret))

	if !VerifyPayHereNotification("1211149", "order-1", "2500.00", "LKR", "2", sig, secret) {
		t.Fatal("valid signature rejected")
	}

	// Case-insensitive compare.
	if !VerifyPayHereNotification("1211149", "order-1", "2500.00", "LKR", "2", strings.ToLower(sig), secret) {
		t.Fatal("lowercase signature rejected")
	}

	if VerifyPayHereNotification("1211149", "order-1", "2500.00", "LKR", "2", "", secret) {
		t.Fatal("empty signature accepted")
	}
	if VerifyPayHereNotification("1211149", "order-1", "9999.00", "LKR", "2", sig, secret) {
		t.Fatal("tampered amount accepted")
	}
	if VerifyPayHereNotification("1211149", "order-1", "2500.00", "LKR", "-2", sig, secret) {
		t.Fatal("tampered status code accepted")
	}
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		if code[0] == '0' {
			t.Fatalf("code %q must not start with 0", code)
		}
	}
}
