package session

import "flowdesk/internal/users"

// Decision is the result of the authorization gate
type Decision int

const (
	Denied Decision = iota
	Admitted
)

func (d Decision) String() string {
	if d == Admitted {
		return "admitted"
	}
	return "denied"
}

// Err returns ErrForbidden for a denial so callers can map it to 403
func (d Decision) Err() error {
	if d == Admitted {
		return nil
	}
	return ErrForbidden
}

// Authenticate returns ErrUnauthenticated when no principal was resolved
func Authenticate(p *Principal) error {
	if p == nil {
		return ErrUnauthenticated
	}
	return nil
}

// Authorize admits p only when it carries exactly the required role.
// A missing principal is denied, not treated as unauthenticated.
func Authorize(p *Principal, required users.Role) Decision {
	if p == nil || p.Role != required {
		return Denied
	}
	return Admitted
}
