// Package guard gates protected views by required role. Authorize is a
// pure function of the session snapshot and the role gate; it holds no
// state and is evaluated at view-mount time.
package guard

import (
	"github.com/dorahnaks/jill-project/internal/session"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Pending means the session is still hydrating. Render a neutral
	// loading state: neither the protected content nor a redirect, so the
	// user never sees a flash-redirect before hydration settles.
	Pending Decision = iota

	// Redirect means the viewer is not allowed; send them to Target.
	Redirect

	// Allow means the protected subtree may render.
	Allow
)

// HomeTarget is where unauthorized viewers are sent.
const HomeTarget = "/"

// Result pairs a Decision with its redirect target, if any.
type Result struct {
	Decision Decision
	Target   string
}

// RoleGate is the immutable set of roles permitted to view a protected
// region.
type RoleGate struct {
	roles map[session.Role]struct{}
}

// NewRoleGate builds a gate admitting exactly the given roles.
func NewRoleGate(roles ...session.Role) RoleGate {
	set := make(map[session.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return RoleGate{roles: set}
}

// Admits reports whether the role passes the gate.
func (g RoleGate) Admits(r session.Role) bool {
	_, ok := g.roles[r]
	return ok
}

// Authorize checks the session against the gate.
//
// Hydrating sessions get Pending. Anything not authenticated, or
// authenticated with a role outside the gate, gets Redirect to HomeTarget.
// Everything else gets Allow.
func Authorize(snap session.Snapshot, gate RoleGate) Result {
	if snap.Status == session.StatusHydrating {
		return Result{Decision: Pending}
	}
	if snap.Status != session.StatusAuthenticated || snap.User == nil || !gate.Admits(snap.User.Role) {
		return Result{Decision: Redirect, Target: HomeTarget}
	}
	return Result{Decision: Allow}
}
