package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jobportal/jobportal-client/internal/navigation"
	"github.com/jobportal/jobportal-client/internal/slice"
)

func renderNavigation(w io.Writer, view NavigationView) {
	_, _ = fmt.Fprintf(w, "Navigator: %s\n", view.Navigator)
	if view.User != nil {
		_, _ = fmt.Fprintf(w, "User: #%d (%s)\n", view.User.ID, view.User.RoleName)
	}
	if view.Language != "" {
		_, _ = fmt.Fprintf(w, "Language: %s\n", view.Language)
	}
	_, _ = fmt.Fprintln(w, "Tabs:")
	for _, t := range view.Tabs {
		_, _ = fmt.Fprintf(w, "  %-18s %s\n", t.Name, t.Screen)
	}
	if len(view.Drawer) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "Drawer:")
	renderDrawer(w, view.Drawer, 1)
}

func renderDrawer(w io.Writer, entries []navigation.DrawerEntry, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		switch e.Action {
		case navigation.ActionLogout:
			_, _ = fmt.Fprintf(w, "%s%s [logout]\n", indent, e.Label)
		case navigation.ActionExpand:
			_, _ = fmt.Fprintf(w, "%s%s\n", indent, e.Label)
			renderDrawer(w, e.Children, depth+1)
		default:
			_, _ = fmt.Fprintf(w, "%s%s -> %s\n", indent, e.Label, e.Route)
		}
	}
}

// stateView is the printable form of a slice snapshot.
type stateView struct {
	Resource string           `json:"resource"`
	Status   string           `json:"status"`
	Data     any              `json:"data"`
	Error    *slice.ErrorInfo `json:"error,omitempty"`
}

func viewOf[T any](name string, st slice.State[T]) stateView {
	v := stateView{Resource: name, Status: st.Status.String(), Error: st.Error}
	if st.Data != nil {
		v.Data = *st.Data
	}
	return v
}

func notice(err *slice.ErrorInfo) string {
	if err == nil {
		return ""
	}
	if err.Transient() {
		return err.Message + " (temporary problem, try again)"
	}
	return err.Message
}
