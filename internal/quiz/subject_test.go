package quiz

import "testing"

func TestSubjectName(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"pakistan-affairs", "Pakistan Affairs"},
		{"current-affairs", "Current Affairs"},
		{"english-precis-composition", "English Precis Composition"},
		{"economics", "Economics"},
		{"islamic-studies", "Islamic Studies"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SubjectName(tt.slug); got != tt.want {
			t.Errorf("SubjectName(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}
