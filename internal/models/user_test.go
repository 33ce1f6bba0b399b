package models

import "testing"

func TestUser_PasswordMatches(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		supplied string
		expected bool
	}{
		{"exact match", "hunter2", "hunter2", true},
		{"mismatch", "hunter2", "hunter3", false},
		{"case sensitive", "Hunter2", "hunter2", false},
		{"empty stored password never matches", "", "", false},
		{"empty supplied password", "hunter2", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{Password: tt.stored}
			if got := user.PasswordMatches(tt.supplied); got != tt.expected {
				t.Errorf("PasswordMatches() = %v, want %v", got, tt.expected)
			}
		})
	}
}
