package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jobportal/jobportal-client/internal/locale"
	"github.com/jobportal/jobportal-client/internal/rbac"
	"github.com/jobportal/jobportal-client/internal/resources"
	"github.com/jobportal/jobportal-client/internal/session"
	"github.com/jobportal/jobportal-client/internal/slice"
	"github.com/jobportal/jobportal-client/report"
)

// Exit codes shared by the commands.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitSignedOut = 3
	ExitForbidden = 4
)

// LoginOptions are the flags of the login command.
type LoginOptions struct {
	Output
	Email    string
	Password string
}

// LoginCommand signs in and prints the resulting navigation.
func (a *App) LoginCommand(ctx context.Context, opts LoginOptions) int {
	opts.defaults()
	if err := a.Session.Login(ctx, session.Credentials{Email: opts.Email, Password: opts.Password}); err != nil {
		if errors.Is(err, session.ErrInvalidInput) {
			return opts.failf("login", "email and password are required")
		}
		return opts.failf("login", "%v", err)
	}
	return a.printNavigation("login", opts.Output)
}

// NavCommand prints the navigation of the persisted session.
func (a *App) NavCommand(ctx context.Context, out Output) int {
	out.defaults()
	a.ensureSession(ctx)
	return a.printNavigation("nav", out)
}

func (a *App) printNavigation(cmd string, out Output) int {
	view := a.navigationView()
	if out.JSON {
		return out.encode(cmd, view)
	}
	renderNavigation(out.Stdout, view)
	return ExitOK
}

// FetchOptions are the flags of the fetch command.
type FetchOptions struct {
	Output
	Resource string
	ID       int64
}

// FetchCommand dispatches one resource slice and prints its final state.
func (a *App) FetchCommand(ctx context.Context, opts FetchOptions) int {
	opts.defaults()
	if !a.ensureSession(ctx) {
		_, _ = fmt.Fprintln(opts.Stderr, "fetch: not signed in")
		return ExitSignedOut
	}
	var view stateView
	switch opts.Resource {
	case resources.NameProfile:
		id := opts.ID
		if id == 0 {
			id, _ = a.Session.Permissions().UserID()
		}
		view = viewOf(opts.Resource, a.Resources.FetchProfile(ctx, id))
	case resources.NameEmployers:
		view = viewOf(opts.Resource, a.Resources.FetchEmployers(ctx))
	case resources.NameEmployerDetails:
		view = viewOf(opts.Resource, a.Resources.FetchEmployerDetails(ctx, opts.ID))
	case resources.NameEmployerNames:
		view = viewOf(opts.Resource, a.Resources.FetchEmployerNames(ctx))
	case resources.NameConsultants:
		view = viewOf(opts.Resource, a.Resources.FetchConsultants(ctx))
	case resources.NameConsultantDetails:
		view = viewOf(opts.Resource, a.Resources.FetchConsultantDetails(ctx, opts.ID))
	case resources.NameJobReports:
		view = viewOf(opts.Resource, a.Resources.FetchJobReports(ctx))
	default:
		return opts.failf("fetch", "unknown resource %q", opts.Resource)
	}
	if view.Error != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "fetch %s: %s\n", opts.Resource, notice(view.Error))
		if opts.JSON {
			opts.encode("fetch", view)
		}
		return ExitFailure
	}
	return opts.encode("fetch", view)
}

// ReportOptions are the flags of the jobs report export.
type ReportOptions struct {
	Output
	Query string
	CSV   io.Writer
	// Path, when set, receives the CSV instead of CSV or Stdout.
	Path string
}

// ReportCommand exports the jobs report as CSV. It requires the job reports
// permission.
func (a *App) ReportCommand(ctx context.Context, opts ReportOptions) int {
	opts.defaults()
	if !a.ensureSession(ctx) {
		_, _ = fmt.Fprintln(opts.Stderr, "report: not signed in")
		return ExitSignedOut
	}
	if err := a.guard().RequireAny(rbac.PermJobReports); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "report: %v\n", err)
		return ExitForbidden
	}
	st := a.Resources.FetchJobReports(ctx)
	if st.Status == slice.Rejected && st.Data == nil {
		return opts.failf("report", "%s", notice(st.Error))
	}
	if st.Error != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "report: showing previous data: %s\n", notice(st.Error))
	}
	rows := report.FilterJobReports(st.Value(), opts.Query)
	if opts.Path != "" {
		return a.writeReportFile(opts, rows)
	}
	w := opts.CSV
	if w == nil {
		w = opts.Stdout
	}
	if err := report.WriteJobReportsCSV(w, rows); err != nil {
		return opts.failf("report", "%v", err)
	}
	return ExitOK
}

func (a *App) writeReportFile(opts ReportOptions, rows []resources.JobReport) int {
	f, err := a.createFile(opts.Path)
	if err != nil {
		return opts.failf("report", "%v", err)
	}
	if err := report.WriteJobReportsCSV(f, rows); err != nil {
		_ = f.Close()
		return opts.failf("report", "%v", err)
	}
	if err := f.Close(); err != nil {
		return opts.failf("report", "close %s: %v", opts.Path, err)
	}
	return ExitOK
}

// LogoutCommand ends the session.
func (a *App) LogoutCommand(ctx context.Context, out Output) int {
	out.defaults()
	a.ensureSession(ctx)
	a.Session.Logout(ctx)
	_, _ = fmt.Fprintln(out.Stdout, "Logged out.")
	return ExitOK
}

// DeleteAccountOptions are the flags of the delete-account command.
type DeleteAccountOptions struct {
	Output
	Confirm bool
}

// DeleteAccountCommand removes the signed-in account after confirmation.
func (a *App) DeleteAccountCommand(ctx context.Context, opts DeleteAccountOptions) int {
	opts.defaults()
	if !opts.Confirm {
		return opts.failf("delete-account", "refusing to delete without --yes")
	}
	if !a.ensureSession(ctx) {
		_, _ = fmt.Fprintln(opts.Stderr, "delete-account: not signed in")
		return ExitSignedOut
	}
	outcome, err := a.Session.DeleteAccount(ctx)
	if err != nil {
		return opts.failf("delete-account", "failed to delete account: %v", err)
	}
	_, _ = fmt.Fprintf(opts.Stdout, "Your %s account has been deleted successfully.\n", outcome.Role)
	return ExitOK
}

// LanguageOptions are the flags of the language command.
type LanguageOptions struct {
	Output
	Set string
}

// LanguageCommand prints or changes the language preference.
func (a *App) LanguageCommand(ctx context.Context, opts LanguageOptions) int {
	opts.defaults()
	tag := a.Locale.Load(ctx)
	if strings.TrimSpace(opts.Set) != "" {
		tag = a.Locale.Select(ctx, opts.Set)
	}
	if opts.JSON {
		return opts.encode("language", map[string]string{"language": locale.Code(tag)})
	}
	_, _ = fmt.Fprintln(opts.Stdout, locale.Code(tag))
	return ExitOK
}
