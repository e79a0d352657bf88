package auth

import (
	"strings"
	"testing"
)

func TestHashSecretFormat(t *testing.T) {
	rec, err := HashSecret("hunter2")
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	if len(rec) != saltHexLen+derivedKeyLen*2 {
		t.Fatalf("record length = %d, want %d", len(rec), saltHexLen+derivedKeyLen*2)
	}
	if rec != strings.ToLower(rec) {
		t.Errorf("record contains uppercase: %q", rec)
	}
	if !IsHashedRecord(rec) {
		t.Errorf("IsHashedRecord(%q) = false", rec)
	}
	again, err := HashSecret("hunter2")
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	if rec == again {
		t.Error("two hashes of the same secret are identical; salt not random")
	}
}

func TestIsHashedRecord(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"full record", strings.Repeat("ab", 96), true},
		{"salt only", strings.Repeat("0", 64), true},
		{"uppercase hex", strings.Repeat("AB", 48), true},
		{"too short", strings.Repeat("a", 63), false},
		{"non-hex char", strings.Repeat("a", 63) + "g", false},
		{"plain word", "correct horse battery staple", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsHashedRecord(tc.in); got != tc.want {
				t.Errorf("IsHashedRecord(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestVerifySecret(t *testing.T) {
	rec, err := HashSecret("s3cret")
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}

	cases := []struct {
		name      string
		stored    string
		presented string
		want      bool
	}{
		{"hashed match", rec, "s3cret", true},
		{"hashed mismatch", rec, "s3cret!", false},
		{"hashed empty presented", rec, "", false},
		{"uppercase derived half", rec[:64] + strings.ToUpper(rec[64:]), "s3cret", true},
		{"legacy match", "plainpass", "plainpass", true},
		{"legacy mismatch", "plainpass", "other", false},
		{"empty stored", "", "anything", false},
		{"empty stored empty presented", "", "", false},
		{"salt without derived key", rec[:64], "s3cret", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VerifySecret(tc.stored, tc.presented); got != tc.want {
				t.Errorf("VerifySecret(stored=%q..., presented=%q) = %v, want %v",
					tc.stored[:min(len(tc.stored), 12)], tc.presented, got, tc.want)
			}
		})
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
