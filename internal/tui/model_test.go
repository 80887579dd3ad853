package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dorahnaks/jill-project/internal/api"
	"github.com/dorahnaks/jill-project/internal/session"
)

func testModel(t *testing.T) Model {
	t.Helper()
	client := api.New(api.Config{BaseURL: "http://localhost:0"})
	sess := session.New(session.NewMemStore(), client, zerolog.Nop())
	return NewModel(Options{Version: "v0.0.0-test", API: client, Session: sess})
}

func TestDashboardPendingWhileHydrating(t *testing.T) {
	m := testModel(t)

	// Session has not hydrated yet: the guard must hold the dashboard in a
	// neutral loading state, not render it and not bounce to the menu.
	updated, _ := m.enterDashboard(nil)
	got := updated.(Model)
	if got.page != pageDashboard || !got.dashPending {
		t.Errorf("expected pending dashboard, got page=%v pending=%v", got.page, got.dashPending)
	}
	if view := got.viewDashboard(); !strings.Contains(view, "checking session") {
		t.Errorf("pending view should show the neutral loading state, got %q", view)
	}
}

func TestDashboardRedirectsAnonymous(t *testing.T) {
	m := testModel(t)
	// Empty store: hydration settles to anonymous without a network call.
	m.opts.Session.Hydrate(context.Background())

	updated, _ := m.enterDashboard(nil)
	got := updated.(Model)
	if got.page != pageMenu || got.dashPending {
		t.Errorf("expected redirect to menu, got page=%v pending=%v", got.page, got.dashPending)
	}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantBanner string
		wantRaw    string
	}{
		{
			"server error keeps message and raw",
			&api.ServerError{Status: 500, Message: "Error fetching menu items", Raw: []byte(`{"error":"db down"}`)},
			"Error fetching menu items",
			`{"error":"db down"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			banner, raw := describeError(tt.err)
			if banner != tt.wantBanner {
				t.Errorf("banner = %q, want %q", banner, tt.wantBanner)
			}
			if raw != tt.wantRaw {
				t.Errorf("raw = %q, want %q", raw, tt.wantRaw)
			}
		})
	}
}

func TestLoginErrorText(t *testing.T) {
	if got := loginErrorText(&session.AuthRejectedError{Message: "Invalid email or password"}); got != "Invalid email or password" {
		t.Errorf("rejected text = %q", got)
	}
	if got := loginErrorText(session.ErrAuthFailed); got != "Authentication failed" {
		t.Errorf("failed text = %q", got)
	}
	if got := loginErrorText(&session.ValidationError{Field: "email"}); !strings.Contains(got, "email") {
		t.Errorf("validation text = %q", got)
	}
}

func TestBarChart(t *testing.T) {
	out := barChart(map[string]int{"PENDING": 2, "DELIVERED": 4}, chartBarStyle)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 bars, got %d: %q", len(lines), out)
	}
	// Keys come out sorted, widest bar belongs to the biggest count.
	if !strings.Contains(lines[0], "DELIVERED") || !strings.Contains(lines[1], "PENDING") {
		t.Errorf("unexpected ordering: %q", out)
	}
	if strings.Count(lines[0], "█") != 32 {
		t.Errorf("max bar width = %d, want 32", strings.Count(lines[0], "█"))
	}
	if strings.Count(lines[1], "█") != 16 {
		t.Errorf("half bar width = %d, want 16", strings.Count(lines[1], "█"))
	}
}

func TestBarChartEmpty(t *testing.T) {
	if out := barChart(nil, chartBarStyle); !strings.Contains(out, "no data") {
		t.Errorf("expected 'no data', got %q", out)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(15000); got != "15000 UGX" {
		t.Errorf("formatPrice(15000) = %q", got)
	}
	if got := formatPrice(99.5); got != "99.50 UGX" {
		t.Errorf("formatPrice(99.5) = %q", got)
	}
}
