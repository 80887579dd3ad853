package guard

import (
	"testing"

	"github.com/dorahnaks/jill-project/internal/session"
)

func snap(status session.Status, role session.Role) session.Snapshot {
	s := session.Snapshot{Status: status}
	if status == session.StatusAuthenticated {
		s.User = &session.User{ID: 1, Email: "u@e.com", Role: role}
	}
	return s
}

func TestAuthorize(t *testing.T) {
	adminOnly := NewRoleGate(session.RoleAdmin)
	staffOrAdmin := NewRoleGate(session.RoleAdmin, session.RoleStaff)

	tests := []struct {
		name string
		snap session.Snapshot
		gate RoleGate
		want Decision
	}{
		{"hydrating is pending", snap(session.StatusHydrating, ""), adminOnly, Pending},
		{"hydrating never allows", snap(session.StatusHydrating, session.RoleAdmin), adminOnly, Pending},
		{"anonymous redirects", snap(session.StatusAnonymous, ""), adminOnly, Redirect},
		{"wrong role redirects", snap(session.StatusAuthenticated, session.RoleCustomer), adminOnly, Redirect},
		{"matching role allows", snap(session.StatusAuthenticated, session.RoleAdmin), adminOnly, Allow},
		{"staff passes multi-role gate", snap(session.StatusAuthenticated, session.RoleStaff), staffOrAdmin, Allow},
		{"customer fails multi-role gate", snap(session.StatusAuthenticated, session.RoleCustomer), staffOrAdmin, Redirect},
		{"empty gate admits nobody", snap(session.StatusAuthenticated, session.RoleAdmin), NewRoleGate(), Redirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Authorize(tt.snap, tt.gate)
			if res.Decision != tt.want {
				t.Errorf("decision = %v, want %v", res.Decision, tt.want)
			}
			if tt.want == Redirect && res.Target != HomeTarget {
				t.Errorf("target = %q, want %q", res.Target, HomeTarget)
			}
			if tt.want != Redirect && res.Target != "" {
				t.Errorf("target = %q, want empty", res.Target)
			}
		})
	}
}

// An authenticated snapshot missing its user is a broken invariant; the
// guard fails closed.
func TestAuthorizeNilUserRedirects(t *testing.T) {
	broken := session.Snapshot{Status: session.StatusAuthenticated}
	if res := Authorize(broken, NewRoleGate(session.RoleAdmin)); res.Decision != Redirect {
		t.Errorf("decision = %v, want Redirect", res.Decision)
	}
}

func TestRoleGateAdmits(t *testing.T) {
	gate := NewRoleGate(session.RoleAdmin, session.RoleCustomer)
	if !gate.Admits(session.RoleAdmin) || !gate.Admits(session.RoleCustomer) {
		t.Error("expected gate to admit both configured roles")
	}
	if gate.Admits(session.RoleStaff) {
		t.Error("expected gate to reject staff")
	}
}
