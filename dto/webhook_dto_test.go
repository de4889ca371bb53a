package dto

import "testing"

func TestPushEventBranch(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"refs/heads/main", "main"},
		{"refs/heads/feature/new-intake", "feature/new-intake"},
		{"refs/tags/v1.0.0", ""},
		{"refs/heads/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		event := PushEvent{Ref: tt.ref}
		if got := event.Branch(); got != tt.want {
			t.Errorf("Branch(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
