package navigation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jobportal/jobportal-client/internal/rbac"
)

// Configuration defects reported by NewResolver.
var (
	ErrNoDefault      = errors.New("navigation: mandatory slot without default screen")
	ErrDuplicateRoute = errors.New("navigation: duplicate tab route")
	ErrEmptyGroup     = errors.New("navigation: menu group without children")
)

// Route is a reachable tab and the screen mounted for it.
type Route struct {
	Name   string `json:"name"`
	Screen Screen `json:"screen"`
}

// DrawerEntry is a reachable drawer item.
type DrawerEntry struct {
	Label    string        `json:"label"`
	Route    string        `json:"route,omitempty"`
	Screen   Screen        `json:"screen,omitempty"`
	Action   Action        `json:"action"`
	Children []DrawerEntry `json:"children,omitempty"`
}

// Reachable is the navigation derived from one permission set.
type Reachable struct {
	Tabs   []Route       `json:"tabs"`
	Drawer []DrawerEntry `json:"drawer"`
}

// Has reports whether the tab route is reachable.
func (r Reachable) Has(route string) bool {
	_, ok := r.Screen(route)
	return ok
}

// Screen returns the screen mounted for a tab route.
func (r Reachable) Screen(route string) (Screen, bool) {
	for _, t := range r.Tabs {
		if t.Name == route {
			return t.Screen, true
		}
	}
	return "", false
}

// DrawerRoutes returns every reachable drawer route, children included, in
// menu order.
func (r Reachable) DrawerRoutes() []string {
	var out []string
	var walk func([]DrawerEntry)
	walk = func(entries []DrawerEntry) {
		for _, e := range entries {
			if e.Route != "" {
				out = append(out, e.Route)
			}
			walk(e.Children)
		}
	}
	walk(r.Drawer)
	return out
}

// Resolver evaluates a Table against permission sets. It holds no state
// besides the validated table, so equal sets resolve to equal results.
type Resolver struct {
	table Table
}

// NewResolver validates table and returns a Resolver for it.
func NewResolver(table Table) (*Resolver, error) {
	seen := make(map[string]struct{}, len(table.Tabs))
	for _, slot := range table.Tabs {
		if _, dup := seen[slot.Route]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, slot.Route)
		}
		seen[slot.Route] = struct{}{}
		if slot.Mandatory && slot.Default == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoDefault, slot.Route)
		}
	}
	if err := validateMenu(table.Drawer); err != nil {
		return nil, err
	}
	return &Resolver{table: cloneTable(table)}, nil
}

// MustResolver is NewResolver for tables known to be valid.
func MustResolver(table Table) *Resolver {
	r, err := NewResolver(table)
	if err != nil {
		panic(err)
	}
	return r
}

// ResolveSlot picks the screen for slot. ok is false only for an optional
// slot without a matching permission.
func ResolveSlot(slot Slot, perms rbac.Set) (Screen, bool) {
	for _, c := range slot.Candidates {
		if perms.Has(c.Permission) {
			return c.Screen, true
		}
	}
	if slot.Mandatory {
		return slot.Default, true
	}
	return "", false
}

// Resolve computes the reachable navigation for perms.
func (r *Resolver) Resolve(perms rbac.Set) Reachable {
	out := Reachable{Tabs: make([]Route, 0, len(r.table.Tabs))}
	for _, slot := range r.table.Tabs {
		if screen, ok := ResolveSlot(slot, perms); ok {
			out.Tabs = append(out.Tabs, Route{Name: slot.Route, Screen: screen})
		}
	}
	out.Drawer = resolveMenu(r.table.Drawer, perms)
	return out
}

// Watch resolves the current store content and again on every permission
// change, passing the result to fn.
func (r *Resolver) Watch(store *rbac.Store, fn func(Reachable)) {
	store.Subscribe(func(set rbac.Set) { fn(r.Resolve(set)) })
	fn(r.Resolve(store.Snapshot()))
}

func resolveMenu(items []MenuItem, perms rbac.Set) []DrawerEntry {
	var out []DrawerEntry
	for _, item := range items {
		if len(item.Permissions) > 0 && !perms.HasAny(item.Permissions...) {
			continue
		}
		entry := DrawerEntry{Label: item.Label, Route: item.Route, Screen: item.Screen, Action: item.Action}
		if len(item.Children) > 0 {
			entry.Children = resolveMenu(item.Children, perms)
			if len(entry.Children) == 0 {
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}

func validateMenu(items []MenuItem) error {
	for _, item := range items {
		if item.Action == ActionExpand && len(item.Children) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyGroup, item.Label)
		}
		if err := validateMenu(item.Children); err != nil {
			return err
		}
	}
	return nil
}

func cloneTable(t Table) Table {
	out := Table{Tabs: make([]Slot, len(t.Tabs)), Drawer: cloneMenu(t.Drawer)}
	for i, slot := range t.Tabs {
		slot.Candidates = slices.Clone(slot.Candidates)
		out.Tabs[i] = slot
	}
	return out
}

func cloneMenu(items []MenuItem) []MenuItem {
	if items == nil {
		return nil
	}
	out := make([]MenuItem, len(items))
	for i, item := range items {
		item.Permissions = slices.Clone(item.Permissions)
		item.Children = cloneMenu(item.Children)
		out[i] = item
	}
	return out
}
