package security_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/Rrens/skill-swap/internal/security"
)

func testEncryptor(t *testing.T) *security.Encryptor {
	t.Helper()
	key := make([]byte, security.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	encryptor, err := security.NewEncryptor(key)
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}
	return encryptor
}

func TestEncryptor_SealOpen(t *testing.T) {
	encryptor := testEncryptor(t)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty", ""},
		{"session", `{"id":"1","name":"Marc Demo"}`},
		{"roster", `[{"name":"Michell","skills_offered":["Java Script","Python"]}]`},
		{"unicode", "unicode: 日本語 中文 한국어"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := encryptor.Seal([]byte(tt.plaintext), []byte("skillswap:users"))
			if err != nil {
				t.Fatalf("seal failed: %v", err)
			}

			opened, err := encryptor.Open(sealed, []byte("skillswap:users"))
			if err != nil {
				t.Fatalf("open failed: %v", err)
			}

			if string(opened) != tt.plaintext {
				t.Errorf("opened text does not match: got %q, want %q", opened, tt.plaintext)
			}
		})
	}
}

func TestEncryptor_AssociatedDataMismatch(t *testing.T) {
	encryptor := testEncryptor(t)

	sealed, err := encryptor.Seal([]byte(`[]`), []byte("skillswap:users"))
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	if _, err := encryptor.Open(sealed, []byte("skillswap:requests")); err == nil {
		t.Error("expected a value moved to another key to fail")
	}
}

func TestEncryptor_Tampered(t *testing.T) {
	encryptor := testEncryptor(t)

	sealed, _ := encryptor.Seal([]byte("payload"), nil)
	sealed[len(sealed)-1] ^= 0xff

	if _, err := encryptor.Open(sealed, nil); err == nil {
		t.Error("expected tampered value to fail authentication")
	}

	if _, err := encryptor.Open([]byte("short"), nil); err == nil {
		t.Error("expected short value to fail")
	}
}

func TestEncryptor_FreshNonce(t *testing.T) {
	encryptor := testEncryptor(t)
	plaintext := []byte("same plaintext")

	sealed1, _ := encryptor.Seal(plaintext, nil)
	sealed2, _ := encryptor.Seal(plaintext, nil)

	if bytes.Equal(sealed1, sealed2) {
		t.Error("expected different sealed values for same plaintext")
	}
}

func TestNewEncryptor_KeyLengths(t *testing.T) {
	for _, n := range []int{0, 15, 17, 31, 33} {
		if _, err := security.NewEncryptor(make([]byte, n)); err == nil {
			t.Errorf("expected error for key length %d, got nil", n)
		}
	}

	for _, n := range []int{16, 24, 32} {
		if _, err := security.NewEncryptor(make([]byte, n)); err != nil {
			t.Errorf("unexpected error for key length %d: %v", n, err)
		}
	}
}

func TestNewEncryptorFromBase64(t *testing.T) {
	key, err := security.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	if len(key) != security.KeySize {
		t.Errorf("expected key length %d, got %d", security.KeySize, len(key))
	}

	encryptor, err := security.NewEncryptorFromBase64(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}

	sealed, _ := encryptor.Seal([]byte("x"), nil)
	if _, err := encryptor.Open(sealed, nil); err != nil {
		t.Errorf("open failed: %v", err)
	}

	if _, err := security.NewEncryptorFromBase64("%%%not-base64"); err == nil {
		t.Error("expected error for invalid base64 key")
	}
}
