package security

import (
	"errors"
	"testing"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
)

func TestBcryptHashCompare(t *testing.T) {
	hasher := NewBcryptHasher(4) // lowest cost to keep the test fast

	hash, err := hasher.Hash("Secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := hasher.Compare(hash, "Secret123"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "Wrong1234"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}
