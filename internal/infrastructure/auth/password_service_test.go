package auth

import (
	"reflect"
	"testing"

	"github.com/sibe/identity/domain"
)

func TestPasswordHashVerifyRoundTrip(t *testing.T) {
	svc := NewPasswordService(bcryptTestCost)

	hash, err := svc.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "Str0ng!Pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !svc.Verify(hash, "Str0ng!Pass") {
		t.Error("expected original secret to verify")
	}
	if svc.Verify(hash, "Str0ng!Pass2") {
		t.Error("different secret must not verify")
	}
	if svc.Verify(hash, "") {
		t.Error("empty secret must not verify")
	}
}

func TestPasswordHashRandomizedSalt(t *testing.T) {
	svc := NewPasswordService(bcryptTestCost)

	h1, err := svc.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("first Hash returned error: %v", err)
	}
	h2, err := svc.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("second Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Error("hashing the same secret twice must yield different outputs")
	}
	if !svc.Verify(h1, "Str0ng!Pass") || !svc.Verify(h2, "Str0ng!Pass") {
		t.Error("both hashes must verify against the original secret")
	}
}

func TestPasswordHashEmpty(t *testing.T) {
	svc := NewPasswordService(bcryptTestCost)
	if _, err := svc.Hash(""); err != domain.ErrEmptyPassword {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestCheckStrength(t *testing.T) {
	svc := NewPasswordService(bcryptTestCost)

	tests := []struct {
		name       string
		password   string
		violations int
	}{
		{"strong password", "Str0ng!Pass", 0},
		{"too short but otherwise fine", "S7r!ngx", 1},
		{"missing uppercase", "str0ng!pass", 1},
		{"missing lowercase", "STR0NG!PASS", 1},
		{"missing digit", "Strong!Pass", 1},
		{"missing symbol", "Str0ngPass1", 1},
		{"only lowercase", "weakpassword", 3},
		{"everything wrong", "zzz", 4},
		{"empty", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.CheckStrength(tt.password)
			if len(got) != tt.violations {
				t.Errorf("CheckStrength(%q) = %d violations %v, want %d",
					tt.password, len(got), got, tt.violations)
			}
		})
	}
}

func TestCheckStrengthIdempotent(t *testing.T) {
	svc := NewPasswordService(bcryptTestCost)
	first := svc.CheckStrength("badpass")
	second := svc.CheckStrength("badpass")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("violation lists differ between calls: %v vs %v", first, second)
	}
}

// bcryptTestCost keeps hashing fast in tests.
const bcryptTestCost = 4
