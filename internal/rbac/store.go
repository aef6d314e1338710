package rbac

import (
	"slices"
	"sync"
)

// Store holds the permission set of the signed-in user. All mutation goes
// through SetPermissions and Reset; lookups on an unpopulated store deny
// everything.
type Store struct {
	notifyMu sync.Mutex

	mu        sync.RWMutex
	set       Set
	userID    int64
	populated bool
	subs      []func(Set)
}

// NewStore returns an empty, fail-closed store.
func NewStore() *Store {
	return &Store{}
}

// HasPermission reports whether name is granted to the current user.
func (s *Store) HasPermission(name string) bool {
	return s.Snapshot().Has(name)
}

// HasAny reports whether at least one of names is granted.
func (s *Store) HasAny(names ...string) bool {
	return s.Snapshot().HasAny(names...)
}

// HasAll reports whether all names are granted.
func (s *Store) HasAll(names ...string) bool {
	if !s.Populated() {
		return false
	}
	return s.Snapshot().HasAll(names...)
}

// SetPermissions replaces the whole permission set for userID. Nothing from a
// previous user survives the call.
func (s *Store) SetPermissions(userID int64, names []string) {
	s.SetPermissionsIf(userID, names, nil)
}

// SetPermissionsIf replaces the permission set like SetPermissions, but only
// when valid reports true. valid runs while the store is locked, so a Reset
// that follows a failed check cannot be overtaken. It must not call back into
// the store.
func (s *Store) SetPermissionsIf(userID int64, names []string, valid func() bool) bool {
	set := NewSet(names...)
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if valid != nil && !valid() {
		s.mu.Unlock()
		return false
	}
	s.set = set
	s.userID = userID
	s.populated = true
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(set)
	}
	return true
}

// Reset forgets the user and every permission.
func (s *Store) Reset() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.set = Set{}
	s.userID = 0
	s.populated = false
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Set{})
	}
}

// UserID returns the id of the user the permissions belong to.
func (s *Store) UserID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.populated
}

// Populated reports whether SetPermissions has been called since the last
// Reset.
func (s *Store) Populated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.populated
}

// Snapshot returns the current set. Unpopulated stores yield an empty set.
func (s *Store) Snapshot() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated {
		return Set{}
	}
	return s.set
}

// Subscribe registers fn to receive every new permission set. Callbacks run
// in mutation order and must not mutate the store.
func (s *Store) Subscribe(fn func(Set)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
