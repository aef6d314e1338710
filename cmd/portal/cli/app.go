// Package cli implements the portal command line workflows on top of the
// client core.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/jobportal/jobportal-client/internal/locale"
	"github.com/jobportal/jobportal-client/internal/navigation"
	"github.com/jobportal/jobportal-client/internal/observability"
	"github.com/jobportal/jobportal-client/internal/rbac"
	"github.com/jobportal/jobportal-client/internal/resources"
	"github.com/jobportal/jobportal-client/internal/session"
)

// App bundles the collaborators every command needs.
type App struct {
	Session   *session.Manager
	Resources *resources.Set
	Resolver  *navigation.Resolver
	Locale    *locale.Preference
	Metrics   *observability.Metrics
	Logger    *slog.Logger

	// Middleware wraps the watch server routes.
	Middleware []func(http.Handler) http.Handler
	// CreateFile opens report output files. Defaults to os.Create.
	CreateFile func(name string) (io.WriteCloser, error)
}

func (a *App) createFile(name string) (io.WriteCloser, error) {
	if a.CreateFile != nil {
		return a.CreateFile(name)
	}
	return os.Create(name)
}

// Output selects the streams and format of a command.
type Output struct {
	JSON   bool
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Output) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

func (o Output) failf(cmd, format string, args ...any) int {
	_, _ = fmt.Fprintf(o.Stderr, cmd+": "+format+"\n", args...)
	return 1
}

func (o Output) encode(cmd string, v any) int {
	enc := json.NewEncoder(o.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return o.failf(cmd, "encode json: %v", err)
	}
	return 0
}

func (a *App) guard() rbac.Guard {
	return rbac.Guard{Store: a.Session.Permissions()}
}

// ensureSession restores a persisted session when none is active.
func (a *App) ensureSession(ctx context.Context) bool {
	if a.Session.State() == session.Authenticated {
		return true
	}
	return a.Session.Restore(ctx)
}

// NavigationView is the printable navigation of the current user.
type NavigationView struct {
	Navigator navigation.Navigator     `json:"navigator"`
	Language  string                   `json:"language"`
	User      *session.Identity        `json:"user,omitempty"`
	Tabs      []navigation.Route       `json:"tabs"`
	Drawer    []navigation.DrawerEntry `json:"drawer,omitempty"`
}

func (a *App) navigationView() NavigationView {
	view := NavigationView{Navigator: a.Session.Navigator()}
	if a.Locale != nil {
		view.Language = locale.Code(a.Locale.Current())
	}
	if view.Navigator == navigation.NavigatorAuth {
		for _, s := range navigation.AuthScreens() {
			view.Tabs = append(view.Tabs, navigation.Route{Name: string(s), Screen: s})
		}
		return view
	}
	if ident, ok := a.Session.Identity(); ok {
		view.User = &ident
	}
	reach := a.Resolver.Resolve(a.Session.Permissions().Snapshot())
	view.Tabs = reach.Tabs
	view.Drawer = reach.Drawer
	return view
}
