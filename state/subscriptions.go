package state

import "sync"

type notifier interface {
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Subscriptions ties the lifetime of several observations to one owner.
// Every observation made through it uses the same scheduler.
type Subscriptions struct {
	scheduler Scheduler

	mu      sync.Mutex
	release []func()
}

// NewSubscriptions creates an empty set whose observations use scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{scheduler: scheduler}
}

// Observe runs fn through the set's scheduler whenever src notifies.
func (s *Subscriptions) Observe(src notifier, fn func()) {
	if src == nil || fn == nil {
		return
	}
	s.Add(src.SubscribeWithScheduler(s.scheduler, fn))
}

// Add registers a release func to run on Clear.
func (s *Subscriptions) Add(release func()) {
	if release == nil {
		return
	}
	s.mu.Lock()
	s.release = append(s.release, release)
	s.mu.Unlock()
}

// Clear runs every release func, newest first, and empties the set.
func (s *Subscriptions) Clear() {
	s.mu.Lock()
	release := s.release
	s.release = nil
	s.mu.Unlock()
	for i := len(release) - 1; i >= 0; i-- {
		release[i]()
	}
}
