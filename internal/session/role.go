package session

import "fmt"

// Role is the enumerated account role. Using a dedicated type instead of
// raw strings keeps typos from silently failing a role gate.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

// ParseRole validates a role string coming from the wire or a flag.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCustomer, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return string(r) }
