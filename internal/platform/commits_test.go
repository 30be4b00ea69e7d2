package platform

import "testing"

func TestFormatChangeReason(t *testing.T) {
	tests := []struct {
		name    string
		ctype   string
		scope   string
		subject string
		body    string
		want    string
	}{
		{
			name:    "simple",
			ctype:   "docs",
			subject: "add groceries",
			want:    "docs: add groceries\n\nRecorded-by: jotter",
		},
		{
			name:    "with scope",
			ctype:   "fix",
			scope:   "notes",
			subject: "typo in title",
			want:    "fix(notes): typo in title\n\nRecorded-by: jotter",
		},
		{
			name:    "with body",
			ctype:   "docs",
			subject: "import",
			body:    "  From the old phone.\n",
			want:    "docs: import\n\nFrom the old phone.\n\nRecorded-by: jotter",
		},
		{
			name:    "default type",
			subject: "cleanup",
			want:    "chore: cleanup\n\nRecorded-by: jotter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatChangeReason(tt.ctype, tt.scope, tt.subject, tt.body); got != tt.want {
				t.Errorf("FormatChangeReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendFooter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"one liner", "one liner\n\nRecorded-by: jotter"},
		{"ends with newline\n", "ends with newline\n\nRecorded-by: jotter"},
		{"already\n\nRecorded-by: jotter", "already\n\nRecorded-by: jotter"},
	}
	for _, tt := range tests {
		if got := AppendFooter(tt.in); got != tt.want {
			t.Errorf("AppendFooter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
