package rbac

import (
	"slices"
	"strings"
)

// Role is the account type assigned by the portal.
type Role struct {
	ID   int64
	Name string
}

// Account types known to the portal.
var (
	RoleAdmin      = Role{ID: 1, Name: "admin"}
	RoleCandidate  = Role{ID: 2, Name: "candidate"}
	RoleEmployer   = Role{ID: 3, Name: "employer"}
	RoleConsultant = Role{ID: 4, Name: "consultant"}
	RoleInstitute  = Role{ID: 5, Name: "institute"}
	RoleGram       = Role{ID: 6, Name: "gram"}
)

var roles = []Role{RoleAdmin, RoleCandidate, RoleEmployer, RoleConsultant, RoleInstitute, RoleGram}

// RoleByID looks up a role by its server id.
func RoleByID(id int64) (Role, bool) {
	for _, r := range roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// Set is an immutable, sorted and deduplicated collection of permission names.
// The zero value grants nothing.
type Set struct {
	names []string
}

// NewSet builds a Set. Names are opaque: only surrounding whitespace is
// trimmed and empty names are dropped.
func NewSet(names ...string) Set {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return Set{names: slices.Compact(out)}
}

// Has reports whether name is granted.
func (s Set) Has(name string) bool {
	_, found := slices.BinarySearch(s.names, strings.TrimSpace(name))
	return found
}

// HasAny reports whether at least one of names is granted.
func (s Set) HasAny(names ...string) bool {
	for _, n := range names {
		if s.Has(n) {
			return true
		}
	}
	return false
}

// HasAll reports whether every one of names is granted. An empty list is
// trivially satisfied.
func (s Set) HasAll(names ...string) bool {
	for _, n := range names {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

// Len returns the number of granted permissions.
func (s Set) Len() int {
	return len(s.names)
}

// Names returns a copy of the granted names in sorted order.
func (s Set) Names() []string {
	return slices.Clone(s.names)
}

// Equal reports whether both sets grant the same names.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s.names, other.names)
}
