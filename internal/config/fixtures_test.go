package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFixtures = `
users:
  - email: editor@example.com
    password: secret
strategies:
  - clientData:
      contentStrategy:
        items:
          - category: Tools
            mainFeature: Widgets
            selectedItem: Blue Widgets
            metrics:
              volume:
                $numberDouble: "1900"
              kd: 12
              difficulty: easy
              priority: high
            longTerms: [best blue widgets]
            contentGuidelines:
              focus: Buying guide
              targetAudience: Beginners
          - category: Tools
            mainFeature: Gadgets
            selectedItem: Red Gadgets
            status: selected
`

func TestParseFixtures(t *testing.T) {
	f, err := ParseFixtures([]byte(sampleFixtures))
	if err != nil {
		t.Fatalf("ParseFixtures() error = %v", err)
	}

	if len(f.Users) != 1 || f.Users[0].Email != "editor@example.com" {
		t.Fatalf("Users = %+v", f.Users)
	}
	if f.TopicCount() != 2 {
		t.Fatalf("TopicCount() = %d, want 2", f.TopicCount())
	}

	first := f.Strategies[0].Items()[0]
	if first.Metrics.Volume.String() != "1900" {
		t.Errorf("volume = %s, want 1900", first.Metrics.Volume)
	}
	if first.Metrics.KD.String() != "12" {
		t.Errorf("kd = %s, want 12", first.Metrics.KD)
	}
	if first.Guidelines.Focus != "Buying guide" {
		t.Errorf("focus = %q", first.Guidelines.Focus)
	}
	if len(first.LongTerms) != 1 {
		t.Errorf("longTerms = %v", first.LongTerms)
	}
	if f.Strategies[0].Items()[1].Status != "selected" {
		t.Errorf("second topic status = %q", f.Strategies[0].Items()[1].Status)
	}
}

func TestParseFixtures_RequiresCredentials(t *testing.T) {
	_, err := ParseFixtures([]byte("users:\n  - email: a@example.com\n"))
	if err == nil {
		t.Error("ParseFixtures() expected error for user without password")
	}
}

func TestParseFixtures_RejectsMalformedEmail(t *testing.T) {
	_, err := ParseFixtures([]byte("users:\n  - email: not-an-email\n    password: secret\n"))
	if err == nil || !strings.Contains(err.Error(), "Invalid email format") {
		t.Errorf("ParseFixtures() error = %v, want invalid email", err)
	}
}

func TestLoadFixtures_MissingFile(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("LoadFixtures() error = %v, want not-exist", err)
	}
}

func TestLoadFixtures_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(sampleFixtures), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFixtures(path)
	if err != nil {
		t.Fatalf("LoadFixtures() error = %v", err)
	}
	if len(f.Strategies) != 1 {
		t.Errorf("Strategies = %d, want 1", len(f.Strategies))
	}
}
