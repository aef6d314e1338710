package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jobportal/jobportal-client/internal/navigation"
	"github.com/jobportal/jobportal-client/internal/platform/httpx"
	"github.com/jobportal/jobportal-client/internal/rbac"
	"github.com/jobportal/jobportal-client/internal/resources"
	"github.com/jobportal/jobportal-client/internal/slice"
	"github.com/jobportal/jobportal-client/internal/storage"
)

// PermissionLoader fetches the permission names granted to a user.
type PermissionLoader interface {
	Fetch(ctx context.Context, userID int64) ([]string, error)
}

// EventRecorder counts lifecycle events.
type EventRecorder interface {
	SessionEvent(event string)
}

// Deps are the collaborators of a Manager. Resources and Recorder are
// optional.
type Deps struct {
	API         httpx.Doer
	Storage     storage.Store
	Permissions *rbac.Store
	Loader      PermissionLoader
	Resources   *resources.Set
	Recorder    EventRecorder
	Logger      *slog.Logger
}

// Manager drives the session lifecycle.
type Manager struct {
	api       httpx.Doer
	storage   storage.Store
	perms     *rbac.Store
	loader    PermissionLoader
	resources *resources.Set
	recorder  EventRecorder
	logger    *slog.Logger
	validate  *validator.Validate

	mu         sync.Mutex
	state      State
	generation uint64
	identity   *Identity
	navigator  navigation.Navigator
	listeners  []func(Event)
}

// NewManager builds an unauthenticated Manager.
func NewManager(deps Deps) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	perms := deps.Permissions
	if perms == nil {
		perms = rbac.NewStore()
	}
	return &Manager{
		api:       deps.API,
		storage:   deps.Storage,
		perms:     perms,
		loader:    deps.Loader,
		resources: deps.Resources,
		recorder:  deps.Recorder,
		logger:    logger,
		validate:  validator.New(),
		state:     Unauthenticated,
		navigator: navigation.TopLevel(false),
	}
}

// OnChange registers fn for every lifecycle event.
func (m *Manager) OnChange(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Navigator returns the mounted top-level navigator.
func (m *Manager) Navigator() navigation.Navigator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.navigator
}

// Identity returns the signed-in user.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return Identity{}, false
	}
	return *m.identity, true
}

// Permissions returns the permission store fed by the lifecycle.
func (m *Manager) Permissions() *rbac.Store {
	return m.perms
}

type loginResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// Login authenticates creds against the portal. On success the token and
// identity are persisted, permissions are loaded and the main navigator is
// mounted. Failures return the session to Unauthenticated.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := m.validate.Struct(creds); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	gen, err := m.begin()
	if err != nil {
		return err
	}
	logger := m.logger.With(slog.String("attempt", uuid.NewString()))
	m.emit(EventAuthenticating)

	raw, err := m.api.Do(ctx, http.MethodPost, "api/login", map[string]any{
		"email":    creds.Email,
		"password": creds.Password,
	})
	var resp loginResponse
	if err == nil {
		err = httpx.Extract(raw, &resp)
	}
	if err == nil && (resp.Token == "" || resp.User.ID == 0) {
		err = fmt.Errorf("%w: login response without token or user", httpx.ErrDecode)
	}
	if err != nil {
		logger.Warn("session login failed", slog.Any("error", err))
		return m.fail(gen, err)
	}
	if resp.User.RoleName == "" {
		if role, ok := resp.User.Role(); ok {
			resp.User.RoleName = role.Name
		}
	}

	if err := m.persist(ctx, gen, resp.Token, resp.User); err != nil {
		if errors.Is(err, ErrSuperseded) {
			logger.Info("session login superseded")
			return err
		}
		logger.Error("session persist credentials", slog.Any("error", err))
		_ = m.guarded(gen, func() error {
			m.clearStorage(ctx)
			return nil
		})
		return m.fail(gen, err)
	}

	m.load(ctx, logger, gen, resp.User)
	if !m.finish(gen, resp.User) {
		logger.Info("session login superseded")
		return ErrSuperseded
	}
	logger.Info("session authenticated", slog.Int64("user_id", resp.User.ID), slog.String("role", resp.User.RoleName))
	return nil
}

// Restore resumes a persisted session. It reports false when no usable
// credentials are stored; storage errors are logged and treated the same way.
func (m *Manager) Restore(ctx context.Context) bool {
	token, ok, err := m.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		m.logger.Warn("session read token", slog.Any("error", err))
		return false
	}
	if !ok || token == "" {
		return false
	}
	rawUser, ok, err := m.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		m.logger.Warn("session read user", slog.Any("error", err))
		return false
	}
	if !ok {
		return false
	}
	var ident Identity
	if err := json.Unmarshal([]byte(rawUser), &ident); err != nil || ident.ID == 0 {
		m.logger.Warn("session stored user unreadable", slog.Any("error", err))
		return false
	}

	gen, err := m.begin()
	if err != nil {
		return false
	}
	m.emit(EventAuthenticating)
	m.load(ctx, m.logger, gen, ident)
	if !m.finish(gen, ident) {
		m.logger.Info("session restore superseded")
		return false
	}
	m.logger.Info("session restored", slog.Int64("user_id", ident.ID))
	return true
}

// RefreshPermissions re-fetches the permission set of the signed-in user. A
// failed fetch keeps the current set.
func (m *Manager) RefreshPermissions(ctx context.Context) error {
	m.mu.Lock()
	gen, ident, state := m.generation, m.identity, m.state
	m.mu.Unlock()
	if state != Authenticated || ident == nil {
		return ErrNotAuthenticated
	}
	if m.loader == nil {
		return errors.New("session: permission loader not configured")
	}
	names, err := m.loader.Fetch(ctx, ident.ID)
	if err != nil {
		return fmt.Errorf("session: refresh permissions: %w", err)
	}
	if !m.perms.SetPermissionsIf(ident.ID, names, func() bool { return m.current(gen) }) {
		return ErrSuperseded
	}
	return nil
}

// Logout ends the session: permissions are invalidated first, then persisted
// credentials are removed, then the auth navigator is mounted. Storage
// failures are logged and never block the switch. Logout is idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.generation++
	m.state = LoggingOut
	m.mu.Unlock()

	m.perms.Reset()
	m.emit(EventPermissionsReset)

	m.clearStorage(ctx)
	m.emit(EventStorageCleared)

	m.mu.Lock()
	m.state = Unauthenticated
	m.identity = nil
	m.navigator = navigation.TopLevel(false)
	m.mu.Unlock()
	m.emit(EventNavigatorSwitched)
}

// DeleteAccount deletes the signed-in account and, once the server confirms,
// ends the session.
func (m *Manager) DeleteAccount(ctx context.Context) (resources.DeleteOutcome, error) {
	if m.resources == nil {
		return resources.DeleteOutcome{}, errors.New("session: resources not configured")
	}
	ident, ok := m.Identity()
	if !ok {
		return resources.DeleteOutcome{}, ErrNotAuthenticated
	}
	m.resources.DeleteAccountOf(ctx, ident.RoleID, ident.ID)
	return m.CompleteAccountDeletion(ctx, m.resources.DeleteAccount)
}

// CompleteAccountDeletion consumes the terminal state of the delete slice.
// A fulfilled deletion logs the user out; a rejected one is reported as an
// error. Either way the slice is cleared afterwards so the outcome is handled
// once.
func (m *Manager) CompleteAccountDeletion(ctx context.Context, del *slice.Slice[resources.DeleteOutcome]) (resources.DeleteOutcome, error) {
	snap := del.Snapshot()
	switch snap.Status {
	case slice.Fulfilled:
		outcome := snap.Value()
		m.logger.Info("session account deleted", slog.String("role", outcome.Role))
		m.Logout(ctx)
		m.emit(EventAccountDeleted)
		del.Clear()
		return outcome, nil
	case slice.Rejected:
		msg := "delete failed"
		if snap.Error != nil {
			msg = snap.Error.Message
		}
		del.Clear()
		return resources.DeleteOutcome{}, fmt.Errorf("session: delete account: %s", msg)
	default:
		return resources.DeleteOutcome{}, ErrDeletionNotConfirmed
	}
}

func (m *Manager) begin() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Unauthenticated {
		return 0, fmt.Errorf("%w: %s", ErrBusy, m.state)
	}
	m.generation++
	m.state = Authenticating
	return m.generation, nil
}

func (m *Manager) current(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return gen == m.generation
}

// guarded runs fn under the session lock while gen is still the latest
// attempt. A Logout bumps the generation under the same lock before it clears
// anything, so writes made here are always cleaned up by it.
func (m *Manager) guarded(gen uint64, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return ErrSuperseded
	}
	return fn()
}

func (m *Manager) fail(gen uint64, err error) error {
	m.mu.Lock()
	if gen == m.generation {
		m.state = Unauthenticated
	}
	m.mu.Unlock()
	m.emit(EventLoginFailed)
	return err
}

func (m *Manager) finish(gen uint64, ident Identity) bool {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return false
	}
	m.state = Authenticated
	m.identity = &ident
	m.navigator = navigation.TopLevel(true)
	m.mu.Unlock()
	m.emit(EventAuthenticated)
	m.emit(EventNavigatorSwitched)
	return true
}

func (m *Manager) persist(ctx context.Context, gen uint64, token string, ident Identity) error {
	rawUser, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	for _, kv := range [][2]string{{storage.KeyToken, token}, {storage.KeyUser, string(rawUser)}} {
		if err := m.guarded(gen, func() error {
			return m.storage.Set(ctx, kv[0], kv[1])
		}); err != nil {
			return err
		}
	}
	return nil
}

// load fetches permissions and the profile concurrently. The permission set
// only lands while gen is still current. A fetch failure leaves the user with
// an empty, fail-closed permission set.
func (m *Manager) load(ctx context.Context, logger *slog.Logger, gen uint64, ident Identity) {
	var names []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if m.loader == nil {
			return errors.New("session: permission loader not configured")
		}
		var err error
		names, err = m.loader.Fetch(gctx, ident.ID)
		return err
	})
	if m.resources != nil {
		g.Go(func() error {
			m.resources.FetchProfile(ctx, ident.ID)
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		logger.Warn("session load permissions", slog.Int64("user_id", ident.ID), slog.Any("error", err))
		names = nil
	}
	applied := m.perms.SetPermissionsIf(ident.ID, names, func() bool { return m.current(gen) })
	if !applied {
		logger.Info("session permissions discarded", slog.Int64("user_id", ident.ID))
		return
	}
	if err != nil {
		m.emit(EventPermissionsMissing)
	}
}

func (m *Manager) clearStorage(ctx context.Context) {
	for _, key := range []string{storage.KeyToken, storage.KeyUser} {
		if err := m.storage.Remove(ctx, key); err != nil {
			m.logger.Warn("session clear storage", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func (m *Manager) emit(ev Event) {
	m.mu.Lock()
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()
	if m.recorder != nil {
		m.recorder.SessionEvent(string(ev))
	}
	for _, fn := range listeners {
		fn(ev)
	}
}
