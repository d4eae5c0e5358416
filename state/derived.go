package state

// Derived is a read-only projection of one source. It is refreshed every
// time the source notifies; with a scheduler the refresh waits for it.
type Derived[R any] struct {
	out    *Signal[R]
	detach func()
}

// Derive projects src through fn. A nil scheduler refreshes synchronously.
func Derive[S, R any](src Readable[S], scheduler Scheduler, fn func(S) R) *Derived[R] {
	project := func() R {
		if src == nil || fn == nil {
			var zero R
			return zero
		}
		return fn(src.Get())
	}
	d := &Derived[R]{out: NewSignal(project())}
	if src != nil {
		d.detach = src.SubscribeWithScheduler(scheduler, func() {
			d.out.Set(project())
		})
	}
	return d
}

// Get returns the latest projection.
func (d *Derived[R]) Get() R {
	if d == nil {
		var zero R
		return zero
	}
	return d.out.Get()
}

// SubscribeWithScheduler registers fn to run after each refresh.
func (d *Derived[R]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if d == nil {
		return func() {}
	}
	return d.out.SubscribeWithScheduler(scheduler, fn)
}

// Stop detaches from the source; Get keeps returning the last projection.
func (d *Derived[R]) Stop() {
	if d != nil && d.detach != nil {
		d.detach()
	}
}
