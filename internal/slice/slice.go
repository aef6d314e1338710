package slice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Params are resource specific fetch arguments.
type Params map[string]any

// Fetcher performs the underlying request for a slice.
type Fetcher[T any] func(ctx context.Context, params Params) (T, error)

// Recorder observes slice transitions.
type Recorder interface {
	Transition(slice string, status Status)
	Discarded(slice string)
}

type options struct {
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Slice.
type Option func(*options)

// WithLogger sets the logger used for rejections and stale completions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecorder attaches a transition recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// Slice owns the status, data and error of one server resource.
//
// Every Dispatch bumps a generation counter; only the completion of the most
// recently issued fetch may set the terminal state. Subscribers are invoked
// synchronously in transition order and must not call Dispatch, Set or Clear
// from inside the callback.
type Slice[T any] struct {
	name  string
	fetch Fetcher[T]
	opts  options

	notifyMu sync.Mutex

	mu         sync.Mutex
	generation uint64
	state      State[T]
	subs       map[int]func(State[T])
	nextSub    int
}

// New builds an idle slice.
func New[T any](name string, fetch Fetcher[T], opts ...Option) *Slice[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Slice[T]{
		name:  name,
		fetch: fetch,
		opts:  o,
		subs:  make(map[int]func(State[T])),
	}
}

// Name returns the slice name used in logs and metrics.
func (s *Slice[T]) Name() string {
	return s.name
}

// Snapshot returns the current state.
func (s *Slice[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for every subsequent transition.
func (s *Slice[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Dispatch runs one fetch and returns the state observed once it completes.
// Failures are stored in the state, never returned.
func (s *Slice[T]) Dispatch(ctx context.Context, params Params) State[T] {
	gen := s.transition(func(st *State[T]) {
		st.Status = Pending
		st.Error = nil
	}, true)

	data, err := s.run(ctx, params)

	applied := s.apply(gen, func(st *State[T]) {
		if err != nil {
			st.Status = Rejected
			st.Error = normalizeError(err)
			return
		}
		st.Status = Fulfilled
		st.Data = &data
		st.Error = nil
	})
	if !applied {
		s.opts.logger.Debug("slice stale completion discarded", slog.String("slice", s.name), slog.Uint64("generation", gen))
		if s.opts.recorder != nil {
			s.opts.recorder.Discarded(s.name)
		}
		return s.Snapshot()
	}
	if err != nil {
		s.opts.logger.Warn("slice fetch rejected", slog.String("slice", s.name), slog.Any("error", err))
	}
	return s.Snapshot()
}

// Clear returns a slice to Idle and drops its error, keeping data. Any fetch
// still in flight can no longer land.
func (s *Slice[T]) Clear() {
	s.transition(func(st *State[T]) {
		st.Status = Idle
		st.Error = nil
	}, true)
}

// Set applies a synchronous local update to the data. fn receives a copy of
// the current value (zero when nothing was fetched yet).
func (s *Slice[T]) Set(fn func(*T)) {
	s.transition(func(st *State[T]) {
		var next T
		if st.Data != nil {
			next = *st.Data
		}
		fn(&next)
		st.Data = &next
	}, false)
}

func (s *Slice[T]) run(ctx context.Context, params Params) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("slice %s: fetch panicked: %v", s.name, r)
		}
	}()
	if s.fetch == nil {
		return data, fmt.Errorf("slice %s: no fetcher configured", s.name)
	}
	return s.fetch(ctx, params)
}

// transition mutates the state unconditionally and notifies subscribers. When
// bump is set the generation advances and the new value is returned.
func (s *Slice[T]) transition(mutate func(*State[T]), bump bool) uint64 {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if bump {
		s.generation++
	}
	gen := s.generation
	mutate(&s.state)
	snap, subs := s.state, s.subscribers()
	s.mu.Unlock()

	s.publish(snap, subs)
	return gen
}

// apply mutates the state only when gen is still the latest generation.
func (s *Slice[T]) apply(gen uint64, mutate func(*State[T])) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return false
	}
	mutate(&s.state)
	snap, subs := s.state, s.subscribers()
	s.mu.Unlock()

	s.publish(snap, subs)
	return true
}

func (s *Slice[T]) subscribers() []func(State[T]) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(State[T]), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	return fns
}

func (s *Slice[T]) publish(snap State[T], subs []func(State[T])) {
	if s.opts.recorder != nil {
		s.opts.recorder.Transition(s.name, snap.Status)
	}
	for _, fn := range subs {
		fn(snap)
	}
}
