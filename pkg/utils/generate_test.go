package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateTxRef(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pattern := regexp.MustCompile(`^booking-42-1700000000-[0-9a-f]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := GenerateTxRef(42, now)
		if !pattern.MatchString(ref) {
			t.Fatalf("ref %q does not match %s", ref, pattern)
		}
		if seen[ref] {
			t.Fatalf("duplicate ref %q within one second", ref)
		}
		seen[ref] = true
	}
}
