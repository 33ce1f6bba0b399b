package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "SERVER_ADDR", "DB_QUERY_TIMEOUT", "PROTECTED_PATHS", "AUTH_COOKIE_MAX_AGE", "BRAND_NAME", "RATE_LIMIT_MAX"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.ServerAddr != ":3000" {
		t.Errorf("ServerAddr = %q, want :3000", cfg.ServerAddr)
	}
	if cfg.QueryTimeout != 10*time.Second {
		t.Errorf("QueryTimeout = %v, want 10s", cfg.QueryTimeout)
	}
	if cfg.CookieMaxAge != 8*time.Hour {
		t.Errorf("CookieMaxAge = %v, want 8h", cfg.CookieMaxAge)
	}
	if len(cfg.ProtectedPaths) != 2 || cfg.ProtectedPaths[0] != "/dashboard" || cfg.ProtectedPaths[1] != "/selected-topics" {
		t.Errorf("ProtectedPaths = %v", cfg.ProtectedPaths)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want 100", cfg.RateLimitMax)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DB", "strategies")
	t.Setenv("DB_QUERY_TIMEOUT", "3s")
	t.Setenv("PROTECTED_PATHS", " /dashboard , ,/admin")
	t.Setenv("REVIEW_NOTIFY_EMAILS", "a@example.com,b@example.com")
	t.Setenv("BRAND_NAME", "Acme SEO")

	cfg := Load()

	if cfg.IsDev() {
		t.Error("IsDev() = true for production")
	}
	if cfg.QueryTimeout != 3*time.Second {
		t.Errorf("QueryTimeout = %v, want 3s", cfg.QueryTimeout)
	}
	if len(cfg.ProtectedPaths) != 2 || cfg.ProtectedPaths[1] != "/admin" {
		t.Errorf("ProtectedPaths = %v, want [/dashboard /admin]", cfg.ProtectedPaths)
	}
	if len(cfg.ReviewNotifyEmails) != 2 {
		t.Errorf("ReviewNotifyEmails = %v", cfg.ReviewNotifyEmails)
	}
	if cfg.BrandName != "Acme SEO" {
		t.Errorf("BrandName = %q", cfg.BrandName)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DB_QUERY_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_MAX", "many")

	cfg := Load()

	if cfg.QueryTimeout != 10*time.Second {
		t.Errorf("QueryTimeout = %v, want fallback 10s", cfg.QueryTimeout)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want fallback 100", cfg.RateLimitMax)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"complete", Config{MongoURI: "mongodb://x", MongoDB: "db"}, false},
		{"missing uri", Config{MongoDB: "db"}, true},
		{"missing db name", Config{MongoURI: "mongodb://x"}, true},
		{"tls without cert", Config{MongoURI: "mongodb://x", MongoDB: "db", TLSEnabled: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSecureCookies(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected bool
	}{
		{"development over http", Config{Env: "development"}, false},
		{"development over tls", Config{Env: "development", TLSEnabled: true}, true},
		{"production", Config{Env: "production"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.SecureCookies(); got != tt.expected {
				t.Errorf("SecureCookies() = %v, want %v", got, tt.expected)
			}
		})
	}
}
