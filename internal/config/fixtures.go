package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"contentdash/internal/models"
	"contentdash/internal/validation"
)

// Fixtures is the structure of a seed file. Topic documents are created
// out-of-band; the seed command is that out-of-band path for local setups.
type Fixtures struct {
	Users      []models.User     `yaml:"users"`
	Strategies []models.Strategy `yaml:"strategies"`
}

// LoadFixtures reads and parses a YAML seed file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixtures(data)
}

// ParseFixtures parses seed YAML and checks that every user can log in with
// a well-formed email.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	for i, u := range f.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("user %d: email and password are required", i)
		}
		if ok, msg := validation.ValidateEmail(u.Email); !ok {
			return nil, fmt.Errorf("user %d: %s", i, msg)
		}
	}

	return &f, nil
}

// TopicCount returns the number of topics across all strategies.
func (f *Fixtures) TopicCount() int {
	if f == nil {
		return 0
	}
	n := 0
	for i := range f.Strategies {
		n += len(f.Strategies[i].Items())
	}
	return n
}
