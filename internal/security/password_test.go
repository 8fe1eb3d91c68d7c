package security_test

import (
	"testing"

	"github.com/Rrens/skill-swap/internal/security"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := security.NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "password123" {
		t.Fatal("hash must not equal the plaintext")
	}

	ok, err := hasher.Verify(hash, "password123")
	if err != nil || !ok {
		t.Fatalf("expected password to verify, ok=%v err=%v", ok, err)
	}

	ok, err = hasher.Verify(hash, "wrong-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected wrong password to be rejected")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := security.NewPasswordHasher(bcrypt.MinCost)

	if _, err := hasher.Verify("not-a-hash", "password123"); err == nil {
		t.Error("expected error for malformed hash")
	}
}
