package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func newTestClient(url string, tokens TokenSource) *Client {
	return New(Config{BaseURL: url, Timeout: 2 * time.Second, Tokens: tokens})
}

// --- credential attachment ---

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, staticTokens("tok-123"))
	if _, err := c.MenuItems(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected 'Bearer tok-123', got %q", gotAuth)
	}
}

func TestNoBearerWhenTokenAbsent(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	// Empty token and nil source both mean: send the call unauthenticated.
	for _, tokens := range []TokenSource{staticTokens(""), nil} {
		gotAuth = "unset"
		c := newTestClient(ts.URL, tokens)
		if _, err := c.MenuItems(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAuth != "" {
			t.Errorf("expected no Authorization header, got %q", gotAuth)
		}
	}
}

func TestRequestHeaders(t *testing.T) {
	var contentType, accept, reqID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		accept = r.Header.Get("Accept")
		reqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"success":true,"access_token":"a","refresh_token":"r","user":{"id":1}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, nil)
	if _, err := c.LoginAdmin(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
	if accept != "application/json" {
		t.Errorf("Accept = %q", accept)
	}
	if reqID == "" {
		t.Error("expected X-Request-ID to be set")
	}
}

// --- error classification ---

func TestServerErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", 401, `{"error":"Invalid email or password"}`, "Invalid email or password"},
		{"message field", 404, `{"message":"Menu item not found"}`, "Menu item not found"},
		{"error preferred over message", 400, `{"error":"bad","message":"other"}`, "bad"},
		{"fallback to status text", 500, `<html>boom</html>`, "Internal Server Error"},
		{"empty body", 503, ``, "Service Unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := newTestClient(ts.URL, nil)
			_, err := c.MenuItems(context.Background())

			var serverErr *ServerError
			if !errors.As(err, &serverErr) {
				t.Fatalf("expected *ServerError, got %T: %v", err, err)
			}
			if serverErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", serverErr.Status, tt.status)
			}
			if serverErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", serverErr.Message, tt.wantMsg)
			}
			if string(serverErr.Raw) != tt.body {
				t.Errorf("Raw = %q, want %q", serverErr.Raw, tt.body)
			}
		})
	}
}

func TestNetworkErrorOnUnreachableBackend(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	c := newTestClient(ts.URL, nil)
	_, err := c.MenuItems(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
}

func TestNetworkErrorOnTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL, Timeout: 50 * time.Millisecond})
	_, err := c.MenuItems(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError on timeout, got %T: %v", err, err)
	}
}

func TestRequestSetupErrorOnBadMethod(t *testing.T) {
	c := newTestClient("http://localhost:0", nil)
	err := c.do(context.Background(), "BAD METHOD", "/x", nil, nil)

	var setupErr *RequestSetupError
	if !errors.As(err, &setupErr) {
		t.Fatalf("expected *RequestSetupError, got %T: %v", err, err)
	}
}

func TestSingleAttemptPerCall(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, nil)
	c.MenuItems(context.Background())
	if calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", calls)
	}
}

// --- typed endpoints ---

func TestMenuItemsDecoding(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/menu-items/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]MenuItem{
			{ID: 1, Name: "Jollof Rice", Category: "MEALS", Price: 15000, Available: true, ImageKey: "meal5.jpg"},
		})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, nil)
	items, err := c.MenuItems(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Jollof Rice" || items[0].Price != 15000 {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestLoginEndpointsByRole(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true,"access_token":"a","refresh_token":"r","user":{"id":1,"role":"admin"}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, nil)

	if _, err := c.LoginAdmin(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if gotPath != "/auth/login" {
		t.Errorf("admin login path = %q", gotPath)
	}

	if _, err := c.LoginCustomer(context.Background(), "c@d.com", "pw"); err != nil {
		t.Fatalf("customer login: %v", err)
	}
	if gotPath != "/auth/customer-login" {
		t.Errorf("customer login path = %q", gotPath)
	}
}

func TestLoginResponseAccount(t *testing.T) {
	admin := &LoginResponse{User: &Profile{ID: 1, Role: "admin"}}
	if admin.Account() == nil || admin.Account().Role != "admin" {
		t.Error("expected user profile")
	}
	customer := &LoginResponse{Customer: &Profile{ID: 2}}
	if customer.Account() == nil || customer.Account().ID != 2 {
		t.Error("expected customer profile")
	}
	neither := &LoginResponse{}
	if neither.Account() != nil {
		t.Error("expected nil account")
	}
}
