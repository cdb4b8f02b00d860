package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := Compare(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Compare with correct password: %v", err)
	}
	if err := Compare(hash, "wrong password"); err == nil {
		t.Error("Compare with wrong password should fail")
	}
}
