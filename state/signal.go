package state

import "sync"

// EqualFunc reports whether two values should be treated as the same.
type EqualFunc[T any] func(a, b T) bool

// Readable is a value that can be read and watched.
type Readable[T any] interface {
	Get() T
	Subscribe(fn func()) func()
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

type listener struct {
	id        uint64
	fn        func()
	scheduler Scheduler
}

// Signal holds a value and notifies listeners when it is written.
//
// Without an EqualFunc every Set is a change. Listeners are invoked after
// the lock is released, so they may read or write the signal.
type Signal[T any] struct {
	mu        sync.Mutex
	value     T
	equal     EqualFunc[T]
	listeners []listener
	nextID    uint64
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// SetEqualFunc configures the check used to drop redundant writes.
// A nil fn makes every write a change.
func (s *Signal[T]) SetEqualFunc(fn EqualFunc[T]) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores value and notifies listeners. It reports false when the
// equality check rejected the write.
func (s *Signal[T]) Set(value T) bool {
	_, changed := s.Swap(value)
	return changed
}

// Swap stores value like Set and also returns the value it replaced.
func (s *Signal[T]) Swap(value T) (T, bool) {
	var prev T
	if s == nil {
		return prev, false
	}
	s.mu.Lock()
	prev = s.value
	if s.equal != nil && s.equal(prev, value) {
		s.mu.Unlock()
		return prev, false
	}
	s.value = value
	pending := append([]listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range pending {
		if l.scheduler == nil {
			l.fn()
		} else {
			l.scheduler.Schedule(l.fn)
		}
	}
	return prev, true
}

// Subscribe registers fn to run synchronously after each change.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers fn and hands each notification to
// scheduler. A nil scheduler runs fn synchronously.
func (s *Signal[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn, scheduler: scheduler})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Signal[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}
