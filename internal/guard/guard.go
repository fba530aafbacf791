// Package guard gates routes by the role derived from the current
// session. Checks are exact: there is no role hierarchy, an admin does
// not implicitly satisfy a user-only check.
package guard

import (
	"fmt"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

// Decision carries the outcome plus a shopper-facing reason for a
// deny. A deny is always surfaced, never silently redirected.
type Decision struct {
	Allowed bool
	Reason  string
}

// Authorize checks a session against the role a route requires.
// RolePublic always allows, even for an anonymous (nil) session.
func Authorize(session *domain.Session, required domain.Role) Decision {
	if required == domain.RolePublic {
		return Decision{Allowed: true}
	}

	role := domain.RolePublic
	if session != nil {
		role = session.Role
	}
	if role == required {
		return Decision{Allowed: true}
	}

	if required == domain.RoleAdmin {
		return Decision{Reason: "Only administrators can access this feature."}
	}
	return Decision{Reason: fmt.Sprintf("You need %s access to view this page.", required)}
}
