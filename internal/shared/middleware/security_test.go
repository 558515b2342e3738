package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHSTS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := HSTS(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	got := rr.Header().Get("Strict-Transport-Security")
	if !strings.Contains(got, "max-age=31536000") {
		t.Errorf("HSTS header = %q, want max-age=31536000", got)
	}
}

func TestSecureCookies(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "abc"})
		w.WriteHeader(http.StatusOK)
	})

	handler := SecureCookies(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	cookies := rr.Header()["Set-Cookie"]
	if len(cookies) != 1 {
		t.Fatalf("expected 1 Set-Cookie header, got %d", len(cookies))
	}

	cookie := cookies[0]
	for _, attr := range []string{"Secure", "HttpOnly", "SameSite=Strict"} {
		if !strings.Contains(cookie, attr) {
			t.Errorf("cookie %q missing %s attribute", cookie, attr)
		}
	}
}

func TestEnsureSecureCookie_PreservesExistingAttributes(t *testing.T) {
	cookie := ensureSecureCookie("token=abc; Path=/; SameSite=Lax")

	if !strings.Contains(cookie, "SameSite=Lax") {
		t.Errorf("existing SameSite attribute replaced: %q", cookie)
	}
	if strings.Contains(cookie, "SameSite=Strict") {
		t.Errorf("duplicate SameSite attribute added: %q", cookie)
	}
	if !strings.Contains(cookie, "Secure") || !strings.Contains(cookie, "HttpOnly") {
		t.Errorf("missing Secure/HttpOnly attributes: %q", cookie)
	}
}

func TestRequireHTTPS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequireHTTPS(next)

	t.Run("redirects plain HTTP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/wallets", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusMovedPermanently {
			t.Fatalf("expected 301, got %d", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "https://example.com/api/wallets" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("passes through forwarded HTTPS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rr.Code)
		}
	})
}

func TestIsHostAllowed(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		allowedHosts []string
		want         bool
	}{
		{"empty list allows all", "anything.com", nil, true},
		{"exact match", "example.com", []string{"example.com"}, true},
		{"match ignoring port", "example.com:8443", []string{"example.com"}, true},
		{"no match", "evil.com", []string{"example.com"}, false},
		{"case insensitive", "Example.COM", []string{"example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHostAllowed(tt.host, tt.allowedHosts); got != tt.want {
				t.Errorf("IsHostAllowed(%q, %v) = %v, want %v", tt.host, tt.allowedHosts, got, tt.want)
			}
		})
	}
}
