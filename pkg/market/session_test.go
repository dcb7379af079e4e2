package market

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestBootstrap_ExtractsIdentity(t *testing.T) {
	env := newTestEnv(t)
	env.site.landing = landingPage(`{"userId":"42","csrf-token":"abc"}`)

	s, err := env.client.Bootstrap(context.Background(), NewHeaders(testCookie, "ua"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.AccountID() != "42" {
		t.Errorf("expected account id 42, got %q", s.AccountID())
	}
	if s.CSRFToken() != "abc" {
		t.Errorf("expected csrf token abc, got %q", s.CSRFToken())
	}
}

func TestBootstrap_NumericUserID(t *testing.T) {
	env := newTestEnv(t)
	env.site.landing = `<html><body data-app-data="{&quot;locale&quot;:&quot;en&quot;,&quot;csrf-token&quot;:&quot;t0k&quot;,&quot;userId&quot;:1234567}"></body></html>`

	s, err := env.client.Bootstrap(context.Background(), NewHeaders(testCookie, "ua"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.AccountID() != "1234567" || s.CSRFToken() != "t0k" {
		t.Errorf("unexpected identity: %q / %q", s.AccountID(), s.CSRFToken())
	}
}

func TestBootstrap_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		landing string
	}{
		{"missing attribute", `<html><body><p>maintenance</p></body></html>`},
		{"invalid json", landingPage(`{"userId":`)},
		{"null user", landingPage(`{"userId":null,"csrf-token":"abc"}`)},
		{"missing token", landingPage(`{"userId":"42"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.site.landing = tt.landing

			_, err := env.client.Bootstrap(context.Background(), NewHeaders(testCookie, "ua"))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestCheckAuthenticated(t *testing.T) {
	tests := []struct {
		name    string
		landing string
		want    bool
	}{
		{"logged in", landingPage(`{"userId":"42","csrf-token":"abc"}`), true},
		{"english login", `<html><body><a href="/account/login">Log In</a></body></html>`, false},
		{"localized login", `<html><body><a href="/account/login">Войти</a></body></html>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.site.landing = tt.landing

			got, err := env.client.CheckAuthenticated(context.Background(), NewHeaders(testCookie, "ua"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLogin_RequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)
	env.site.landing = `<html><body data-app-data='{"userId":null,"csrf-token":"abc"}'>Please LOG IN</body></html>`

	_, err := env.client.Login(context.Background(), NewHeaders(testCookie, "ua"))
	if !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if hits := env.site.hits("/"); hits != 1 {
		t.Errorf("expected a single landing fetch, got %d", hits)
	}
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.site.landing = landingPage(`{"userId":"42","csrf-token":"abc"}`)

	s, err := env.client.Login(context.Background(), NewHeaders(testCookie, "ua"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.AccountID() != "42" {
		t.Errorf("expected account id 42, got %q", s.AccountID())
	}
	if len(env.log.InfoCalls) != 1 {
		t.Errorf("expected one info line, got %v", env.log.InfoCalls)
	}
}

func TestBootstrap_StatusError(t *testing.T) {
	env := newTestEnv(t)
	env.site.status = http.StatusServiceUnavailable

	_, err := env.client.Bootstrap(context.Background(), NewHeaders(testCookie, "ua"))
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if serr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", serr.StatusCode)
	}
}

func TestBootstrap_ClosedServer(t *testing.T) {
	env := newTestEnv(t)
	env.server.Close()

	if _, err := env.client.Bootstrap(context.Background(), NewHeaders(testCookie, "ua")); err == nil {
		t.Fatal("expected transport error against a closed server")
	}
}

func TestNewSession_Validates(t *testing.T) {
	h := NewHeaders(testCookie, "ua")
	if _, err := NewSession(h, "", "abc"); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for empty account, got %v", err)
	}
	if _, err := NewSession(h, "42", ""); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for empty token, got %v", err)
	}
}

func TestSession_HeadersAreCopies(t *testing.T) {
	s, err := NewSession(NewHeaders(testCookie, "ua"), "42", "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := s.Headers()
	h[0].Value = "tampered"
	if v, _ := s.Headers().Get(ContentTypeKey); v == "tampered" {
		t.Error("session headers must not be mutable through a returned copy")
	}
	if _, ok := s.Headers().Get(RequestedWithKey); ok {
		t.Error("standard headers must not carry X-Requested-With")
	}
	if v, _ := s.XHRHeaders().Get(RequestedWithKey); v != "XMLHttpRequest" {
		t.Errorf("expected XHR marker, got %q", v)
	}
}
