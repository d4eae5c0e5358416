package store

import "sync"

// hookList keeps callbacks in registration order and lets each one be
// removed independently.
type hookList[E any] struct {
	mu     sync.Mutex
	fns    []hookEntry[E]
	nextID uint64
}

type hookEntry[E any] struct {
	id uint64
	fn func(E)
}

func (h *hookList[E]) add(fn func(E)) func() {
	if fn == nil {
		return func() {}
	}
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.fns = append(h.fns, hookEntry[E]{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *hookList[E]) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, e := range h.fns {
		if e.id == id {
			h.fns = append(h.fns[:i:i], h.fns[i+1:]...)
			return
		}
	}
}

func (h *hookList[E]) emit(event E) {
	h.mu.Lock()
	fns := append([]hookEntry[E](nil), h.fns...)
	h.mu.Unlock()
	for _, e := range fns {
		e.fn(event)
	}
}
