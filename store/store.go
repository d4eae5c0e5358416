package store

import (
	"log/slog"

	"github.com/odvcencio/bookshelf/state"
)

// UpdateCurrent names the only mutation and action a Store knows.
const UpdateCurrent = "UPDATE_CURRENT"

// Mutation describes a committed write.
type Mutation[T any] struct {
	Type     string
	Payload  T
	Previous T
}

// Action describes an intent passed to RequestSetCurrent.
type Action[T any] struct {
	Type    string
	Payload T
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithEqual drops writes that fn reports as equal to the stored value.
// Dropped writes notify nobody. By default every write notifies.
func WithEqual[T any](fn state.EqualFunc[T]) Option[T] {
	return func(s *Store[T]) {
		s.current.SetEqualFunc(fn)
	}
}

// WithLogger logs every action and mutation at debug level.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(s *Store[T]) {
		if logger == nil {
			return
		}
		s.OnAction(func(a Action[T]) {
			logger.Debug("action dispatched", "type", a.Type, "payload", a.Payload)
		})
		s.OnMutation(func(m Mutation[T]) {
			logger.Debug("mutation committed", "type", m.Type, "payload", m.Payload, "previous", m.Previous)
		})
	}
}

// Store is a single reactive slot named current.
type Store[T any] struct {
	current   *state.Signal[T]
	mutations hookList[Mutation[T]]
	actions   hookList[Action[T]]
}

var _ state.Readable[int] = (*Store[int])(nil)

// New creates a store whose current value is the zero value of T.
func New[T any](opts ...Option[T]) *Store[T] {
	var zero T
	s := &Store[T]{current: state.NewSignal(zero)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Current returns the stored value, or the zero value if nothing was
// ever written.
func (s *Store[T]) Current() T {
	if s == nil {
		var zero T
		return zero
	}
	return s.current.Get()
}

// SetCurrent overwrites the stored value with payload. Subscribers run
// synchronously once the write is visible, followed by mutation hooks.
func (s *Store[T]) SetCurrent(payload T) {
	if s == nil {
		return
	}
	prev, changed := s.current.Swap(payload)
	if !changed {
		return
	}
	s.mutations.emit(Mutation[T]{Type: UpdateCurrent, Payload: payload, Previous: prev})
}

// RequestSetCurrent reports the intent to action hooks and forwards payload
// to SetCurrent unchanged.
func (s *Store[T]) RequestSetCurrent(payload T) {
	if s == nil {
		return
	}
	s.actions.emit(Action[T]{Type: UpdateCurrent, Payload: payload})
	s.SetCurrent(payload)
}

// Get returns Current. It makes Store a state.Readable.
func (s *Store[T]) Get() T {
	return s.Current()
}

// Subscribe registers fn to run after every accepted write.
func (s *Store[T]) Subscribe(fn func()) func() {
	if s == nil {
		return func() {}
	}
	return s.current.Subscribe(fn)
}

// SubscribeWithScheduler registers fn and routes notifications through
// scheduler.
func (s *Store[T]) SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if s == nil {
		return func() {}
	}
	return s.current.SubscribeWithScheduler(scheduler, fn)
}

// OnMutation registers fn to observe committed writes in registration
// order. The returned func removes it.
func (s *Store[T]) OnMutation(fn func(Mutation[T])) func() {
	if s == nil {
		return func() {}
	}
	return s.mutations.add(fn)
}

// OnAction registers fn to observe intents before they are forwarded.
func (s *Store[T]) OnAction(fn func(Action[T])) func() {
	if s == nil {
		return func() {}
	}
	return s.actions.add(fn)
}

// Watch calls fn with the new and previous value after each write.
func (s *Store[T]) Watch(fn func(next, prev T)) func() {
	if fn == nil {
		return func() {}
	}
	return s.OnMutation(func(m Mutation[T]) {
		fn(m.Payload, m.Previous)
	})
}

// Getter derives a reactive value from the store's current value. With a
// scheduler the derived value is refreshed when the scheduler runs.
// Call Stop on the result to detach it.
func Getter[T, R any](s *Store[T], scheduler state.Scheduler, fn func(T) R) *state.Derived[R] {
	return state.Derive[T, R](s, scheduler, fn)
}
