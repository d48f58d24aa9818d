package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"10.0.0.1":         "10.0.0.1",
		"10.0.0.1:8080":    "10.0.0.1",
		"[::1]:8080":       "::1",
		"[::1]":            "::1",
		"shop.example.com": "shop.example.com",
	}
	for in, want := range tests {
		if got := ParseHostNoPort(in); got != want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		trustProxy bool
		expected   string
	}{
		{name: "remote addr", expected: "192.0.2.1"},
		{
			name:     "headers ignored when proxy untrusted",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7"},
			expected: "192.0.2.1",
		},
		{
			name:       "cloudflare header first",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.2", "X-Forwarded-For": "203.0.113.7"},
			trustProxy: true,
			expected:   "198.51.100.2",
		},
		{
			name:       "left-most forwarded for",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			trustProxy: true,
			expected:   "203.0.113.7",
		},
		{
			name:       "garbage header skipped",
			headers:    map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "203.0.113.9"},
			trustProxy: true,
			expected:   "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = "192.0.2.1:51234"
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.expected {
				t.Errorf("ClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.0.2.1 ", "not-an-ip", "2001:db8::/32"})
	if m.IsEmpty() {
		t.Fatal("IsEmpty() = true")
	}

	tests := map[string]bool{
		"10.1.2.3":         true,
		"192.0.2.1":        true,
		"192.0.2.2":        false,
		"::ffff:10.0.0.5":  true,
		"2001:db8::1":      true,
		"2001:db9::1":      false,
		"shop.example.com": false,
	}
	for ip, want := range tests {
		if got := m.Allow(ip); got != want {
			t.Errorf("Allow(%q) = %v, want %v", ip, got, want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("NewIPMatcher(nil) should be empty")
	}
}
