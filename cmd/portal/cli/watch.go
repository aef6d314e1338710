package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/jobportal/jobportal-client/internal/rbac"
)

// WatchOptions are the flags of the watch command.
type WatchOptions struct {
	Output
	Addr     string
	Interval time.Duration
}

// Router exposes the metrics and the current navigation over HTTP.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	if len(a.Middleware) > 0 {
		r.Use(a.Middleware...)
	} else {
		r.Use(middleware.Recoverer)
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	r.Get("/navigation", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		Output{Stdout: w, Stderr: w}.encode("navigation", a.navigationView())
	})
	return r
}

// WatchCommand keeps the session's resources fresh and serves metrics until
// ctx is cancelled.
func (a *App) WatchCommand(ctx context.Context, opts WatchOptions) int {
	opts.defaults()
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if !a.ensureSession(ctx) {
		_, _ = fmt.Fprintln(opts.Stderr, "watch: not signed in")
		return ExitSignedOut
	}

	srv := &http.Server{Addr: opts.Addr, Handler: a.Router(), ReadHeaderTimeout: 5 * time.Second}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		for {
			a.refresh(gctx)
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
	if err := g.Wait(); err != nil {
		return opts.failf("watch", "%v", err)
	}
	return ExitOK
}

func (a *App) refresh(ctx context.Context) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := a.Session.RefreshPermissions(ctx); err != nil {
		logger.Warn("watch refresh permissions", slog.Any("error", err))
	}
	if id, ok := a.Session.Permissions().UserID(); ok {
		if st := a.Resources.FetchProfile(ctx, id); st.Error != nil {
			logger.Warn("watch refresh profile", slog.String("error", st.Error.Message))
		}
	}
	if a.guard().RequireAny(rbac.PermJobReports) == nil {
		if st := a.Resources.FetchJobReports(ctx); st.Error != nil {
			logger.Warn("watch refresh job reports", slog.String("error", st.Error.Message))
		}
	}
}
