package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals the plaintext")
	}

	if !CheckPasswordHash("secret123", hash) {
		t.Error("correct password did not verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Error("wrong password verified")
	}
}

func TestCheckPasswordHashMalformed(t *testing.T) {
	if CheckPasswordHash("secret123", "not-a-bcrypt-hash") {
		t.Error("malformed hash verified")
	}
	if CheckPasswordHash("secret123", "") {
		t.Error("empty hash verified")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}
