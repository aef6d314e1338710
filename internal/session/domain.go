// Package session owns the transition between signed-out and signed-in
// application state and is the only writer of persisted credentials.
package session

import (
	"errors"

	"github.com/jobportal/jobportal-client/internal/rbac"
)

// State is the position of the session lifecycle.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	LoggingOut
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case LoggingOut:
		return "logging_out"
	}
	return "unknown"
}

// Event is emitted to listeners in causal order.
type Event string

const (
	EventAuthenticating     Event = "authenticating"
	EventAuthenticated      Event = "authenticated"
	EventLoginFailed        Event = "login_failed"
	EventPermissionsReset   Event = "permissions_reset"
	EventStorageCleared     Event = "storage_cleared"
	EventNavigatorSwitched  Event = "navigator_switched"
	EventAccountDeleted     Event = "account_deleted"
	EventPermissionsMissing Event = "permissions_missing"
)

// Errors returned by the lifecycle.
var (
	ErrInvalidInput         = errors.New("session: invalid credentials input")
	ErrBusy                 = errors.New("session: another transition is in progress")
	ErrNotAuthenticated     = errors.New("session: not authenticated")
	ErrSuperseded           = errors.New("session: login superseded by logout")
	ErrDeletionNotConfirmed = errors.New("session: account deletion not confirmed")
)

// Identity is the signed-in user as persisted under the "user" key.
type Identity struct {
	ID       int64  `json:"id"`
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"role_name"`
}

// Role returns the account type of the identity.
func (i Identity) Role() (rbac.Role, bool) {
	return rbac.RoleByID(i.RoleID)
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
