package rbac

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jobportal/jobportal-client/internal/platform/httpx"
)

// ErrForbidden is returned by Guard when a permission is missing.
var ErrForbidden = errors.New("rbac: permission denied")

// Service loads permission sets from the portal API.
type Service struct {
	api httpx.Doer
}

// NewService constructs a Service using api as transport.
func NewService(api httpx.Doer) *Service {
	return &Service{api: api}
}

// Permission is a single entry of the permissions payload.
type Permission struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both {"name": "..."} objects and bare strings.
func (p *Permission) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Permission{Name: name}
		return nil
	}
	type alias Permission
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Permission(a)
	return nil
}

// Fetch returns the permission names granted to userID.
func (s *Service) Fetch(ctx context.Context, userID int64) ([]string, error) {
	raw, err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("api/user-permissions/%d", userID), nil)
	if err != nil {
		return nil, fmt.Errorf("rbac: fetch permissions: %w", err)
	}
	var perms []Permission
	if err := httpx.Extract(raw, &perms, "data"); err != nil {
		return nil, fmt.Errorf("rbac: fetch permissions: %w", err)
	}
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}
	return names, nil
}

// Refresh fetches the permissions for userID and replaces the store content.
// On failure the store is left untouched.
func (s *Service) Refresh(ctx context.Context, store *Store, userID int64) error {
	names, err := s.Fetch(ctx, userID)
	if err != nil {
		return err
	}
	store.SetPermissions(userID, names)
	return nil
}

// Guard gates programmatic actions on the current permission set.
type Guard struct {
	Store *Store
}

// RequireAny fails with ErrForbidden unless one of perms is granted.
func (g Guard) RequireAny(perms ...string) error {
	if len(perms) == 0 {
		return nil
	}
	if g.Store != nil && g.Store.HasAny(perms...) {
		return nil
	}
	return fmt.Errorf("%w: need one of %v", ErrForbidden, perms)
}

// RequireAll fails with ErrForbidden unless every one of perms is granted.
func (g Guard) RequireAll(perms ...string) error {
	if len(perms) == 0 {
		return nil
	}
	if g.Store != nil && g.Store.HasAll(perms...) {
		return nil
	}
	return fmt.Errorf("%w: need all of %v", ErrForbidden, perms)
}
