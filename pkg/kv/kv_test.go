package kv

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"", "notes", true},
		{"notes", "notes", true},
		{"notes", "notes-old", false},
		{"notes*", "notes-old", true},
		{"work/*", "work/ideas", true},
		{"work/*", "work/deep/ideas", false},
		{"**", "work/deep/ideas", true},
		{"[", "notes", false},
	}

	for _, tt := range tests {
		if got := Match(tt.pattern, tt.key); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.key, got, tt.want)
		}
	}
}

func TestValidatePattern(t *testing.T) {
	if err := ValidatePattern("work/**"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePattern("["); err == nil {
		t.Error("expected error for malformed pattern")
	}
}
