package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jobportal/jobportal-client/internal/app"
	"github.com/jobportal/jobportal-client/internal/locale"
	"github.com/jobportal/jobportal-client/internal/navigation"
	"github.com/jobportal/jobportal-client/internal/observability"
	"github.com/jobportal/jobportal-client/internal/platform/cache"
	"github.com/jobportal/jobportal-client/internal/platform/httpx"
	"github.com/jobportal/jobportal-client/internal/rbac"
	"github.com/jobportal/jobportal-client/internal/resources"
	"github.com/jobportal/jobportal-client/internal/session"
	"github.com/jobportal/jobportal-client/internal/slice"
	"github.com/jobportal/jobportal-client/internal/storage"
)

// Build wires the client core from configuration. The returned closer
// releases the storage connection.
func Build(ctx context.Context, cfg *app.Config, logger *slog.Logger) (*App, func() error, error) {
	closer := func() error { return nil }

	var store storage.Store
	switch cfg.StorageDriver {
	case app.StorageRedis:
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, closer, fmt.Errorf("connect storage: %w", err)
		}
		r := storage.NewRedis(client, cfg.StoragePrefix)
		store, closer = r, r.Close
	default:
		store = storage.NewMemory()
	}

	metrics := observability.NewMetrics()
	api, err := httpx.NewClient(cfg.APIBaseURL, cfg.APITimeout,
		httpx.WithHTTPClient(&http.Client{
			Timeout:   cfg.APITimeout,
			Transport: metrics.Transport(http.DefaultTransport),
		}),
		httpx.WithTokenSource(func(ctx context.Context) (string, error) {
			return storage.Token(ctx, store)
		}),
		httpx.WithLogger(logger),
	)
	if err != nil {
		_ = closer()
		return nil, func() error { return nil }, err
	}

	a := Assemble(api, store, metrics, logger)
	a.Locale.UseDefault(cfg.DefaultLanguage)
	a.Middleware = app.MiddlewareStack(app.MiddlewareConfig{Logger: logger, Config: cfg})
	return a, closer, nil
}

// Assemble builds an App around an API client and a store.
func Assemble(api httpx.Doer, store storage.Store, metrics *observability.Metrics, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	opts := []slice.Option{slice.WithLogger(logger)}
	var recorder session.EventRecorder
	if metrics != nil {
		opts = append(opts, slice.WithRecorder(metrics))
		recorder = metrics
	}
	res := resources.NewSet(api, opts...)
	perms := rbac.NewStore()
	mgr := session.NewManager(session.Deps{
		API:         api,
		Storage:     store,
		Permissions: perms,
		Loader:      rbac.NewService(api),
		Resources:   res,
		Recorder:    recorder,
		Logger:      logger,
	})
	return &App{
		Session:   mgr,
		Resources: res,
		Resolver:  navigation.MustResolver(navigation.DefaultTable()),
		Locale:    locale.NewPreference(store, logger),
		Metrics:   metrics,
		Logger:    logger,
	}
}
