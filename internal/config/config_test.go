package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestRequireURL(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  string
		wantPanic bool
	}{
		{
			name:     "https url",
			value:    "https://shop.cdn.example.io/api",
			expected: "https://shop.cdn.example.io/api",
		},
		{
			name:     "trailing slash is trimmed",
			value:    "https://shop.cdn.example.io/api/",
			expected: "https://shop.cdn.example.io/api",
		},
		{
			name:      "missing scheme",
			value:     "shop.cdn.example.io/api",
			wantPanic: true,
		},
		{
			name:      "unsupported scheme",
			value:     "ftp://shop.cdn.example.io/api",
			wantPanic: true,
		},
		{
			name:      "missing variable",
			value:     "",
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_URL", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireURL() should have panicked")
					}
				}()
			}

			result := requireURL("TEST_URL")
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("requireURL() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "10.0.0.0/8", expected: []string{"10.0.0.0/8"}},
		{name: "spaces and quotes", input: ` "a.example.com" , 'b.example.com',, `, expected: []string{"a.example.com", "b.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", key: "TEST_BOOL", value: "true", def: false, expected: true},
		{name: "false value", key: "TEST_BOOL_FALSE", value: "false", def: true, expected: false},
		{name: "invalid value uses default", key: "TEST_BOOL_INVALID", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", key: "TEST_BOOL_MISSING", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PATISSERIE_API_URL", "https://shop.cdn.example.io/api/")
	t.Setenv("PATISSERIE_LOG_LEVEL", "error")
	for _, key := range []string{"PATISSERIE_REDIS_ADDR", "PATISSERIE_PUBLIC_URL", "PATISSERIE_API_RETRIES", "PATISSERIE_ALLOWED_CIDRS"} {
		if v, ok := os.LookupEnv(key); ok {
			t.Setenv(key, v)
			_ = os.Unsetenv(key)
		}
	}

	cfg := Load()

	if cfg.APIURL != "https://shop.cdn.example.io/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RedisEnabled() {
		t.Error("redis should be disabled without PATISSERIE_REDIS_ADDR")
	}
	if cfg.APIRetries != 3 {
		t.Errorf("APIRetries = %d, want 3", cfg.APIRetries)
	}
	if cfg.PublicURL != "" {
		t.Errorf("PublicURL = %q, want empty", cfg.PublicURL)
	}
	if cfg.AllowedCIDRS != nil {
		t.Errorf("AllowedCIDRS = %v, want nil", cfg.AllowedCIDRS)
	}
}

func TestLoadRejectsInvalidRetries(t *testing.T) {
	t.Setenv("PATISSERIE_API_URL", "https://shop.cdn.example.io/api")
	t.Setenv("PATISSERIE_API_RETRIES", "0")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked")
		}
	}()
	_ = Load()
}
