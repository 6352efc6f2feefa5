package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Success(t *testing.T) {
	hashed, err := HashPassword("super-secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "" {
		t.Fatal("expected non-empty hash")
	}
	if hashed == "super-secret" {
		t.Fatal("hash must not equal the plaintext password")
	}
}

func TestHashPassword_ZeroCostFallsBackToDefault(t *testing.T) {
	hashed, err := HashPassword("super-secret", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		t.Fatalf("failed to extract cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestComparePassword(t *testing.T) {
	hashed, err := HashPassword("correct-horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ComparePassword(hashed, "correct-horse"); err != nil {
		t.Errorf("expected matching password to verify, got: %v", err)
	}
	if err := ComparePassword(hashed, "wrong-horse"); err == nil {
		t.Error("expected error for wrong password, got nil")
	}
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	first, _ := HashPassword("same-password", bcrypt.MinCost)
	second, _ := HashPassword("same-password", bcrypt.MinCost)

	if first == second {
		t.Error("two hashes of the same password must differ by salt")
	}
}
