package store

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/bookshelf/state"
)

type item struct {
	ID    int
	Title string
}

func TestStore_InitialValueIsZero(t *testing.T) {
	s := New[*item]()
	assert.Nil(t, s.Current())

	n := New[int]()
	assert.Equal(t, 0, n.Current())
}

func TestStore_SetCurrentScenario(t *testing.T) {
	s := New[*item]()
	require.Nil(t, s.Current())

	book := &item{ID: 1, Title: "Book A"}
	s.SetCurrent(book)
	assert.Same(t, book, s.Current())
	assert.Equal(t, item{ID: 1, Title: "Book A"}, *s.Current())

	s.SetCurrent(nil)
	assert.Nil(t, s.Current())
}

func TestStore_LastWriteWins(t *testing.T) {
	s := New[string]()

	s.SetCurrent("a")
	s.SetCurrent("b")
	assert.Equal(t, "b", s.Current())
}

func TestStore_SetCurrentIsIdempotent(t *testing.T) {
	s := New[any]()
	v := map[string]int{"id": 7}

	s.SetCurrent(v)
	s.SetCurrent(v)
	assert.Equal(t, v, s.Current())
}

func TestStore_AcceptsAnyPayload(t *testing.T) {
	s := New[any]()
	for _, v := range []any{nil, 0, "", []int{1, 2}, struct{}{}, &item{}} {
		s.SetCurrent(v)
		assert.Equal(t, v, s.Current())
	}
}

func TestStore_RequestSetCurrentMatchesSetCurrent(t *testing.T) {
	direct := New[*item]()
	forwarded := New[*item]()
	book := &item{ID: 2, Title: "Book B"}

	var directCalls, forwardedCalls int
	direct.Subscribe(func() { directCalls++ })
	forwarded.Subscribe(func() { forwardedCalls++ })

	direct.SetCurrent(book)
	forwarded.RequestSetCurrent(book)

	assert.Same(t, direct.Current(), forwarded.Current())
	assert.Equal(t, directCalls, forwardedCalls)
}

func TestStore_SubscribersSeeWriteSynchronously(t *testing.T) {
	s := New[int]()
	var seen []int
	unsub := s.Subscribe(func() { seen = append(seen, s.Current()) })

	s.SetCurrent(1)
	s.SetCurrent(1)
	s.SetCurrent(2)
	assert.Equal(t, []int{1, 1, 2}, seen)

	unsub()
	s.SetCurrent(3)
	assert.Len(t, seen, 3)
}

func TestStore_SubscribeWithScheduler(t *testing.T) {
	s := New[int]()
	queue := state.NewQueue()
	calls := 0
	s.SubscribeWithScheduler(queue, func() { calls++ })

	s.SetCurrent(5)
	require.Equal(t, 0, calls)
	require.Equal(t, 1, queue.Flush())
	assert.Equal(t, 1, calls)
}

func TestStore_WithEqualDropsRedundantWrites(t *testing.T) {
	s := New(WithEqual[string](func(a, b string) bool { return a == b }))
	notified := 0
	mutations := 0
	s.Subscribe(func() { notified++ })
	s.OnMutation(func(Mutation[string]) { mutations++ })

	s.SetCurrent("x")
	s.SetCurrent("x")
	assert.Equal(t, 1, notified)
	assert.Equal(t, 1, mutations)
	assert.Equal(t, "x", s.Current())
}

func TestStore_MutationHooks(t *testing.T) {
	s := New[string]()
	var got []Mutation[string]
	var order []string

	s.Subscribe(func() { order = append(order, "subscriber") })
	unsub := s.OnMutation(func(m Mutation[string]) {
		order = append(order, "hook")
		got = append(got, m)
	})

	s.SetCurrent("a")
	s.RequestSetCurrent("b")
	require.Len(t, got, 2)
	assert.Equal(t, Mutation[string]{Type: UpdateCurrent, Payload: "a", Previous: ""}, got[0])
	assert.Equal(t, Mutation[string]{Type: UpdateCurrent, Payload: "b", Previous: "a"}, got[1])
	assert.Equal(t, []string{"subscriber", "hook", "subscriber", "hook"}, order)

	unsub()
	unsub()
	s.SetCurrent("c")
	assert.Len(t, got, 2)
}

func TestStore_ActionHooksRunBeforeMutation(t *testing.T) {
	s := New[int]()
	var events []string

	s.OnAction(func(a Action[int]) {
		assert.Equal(t, UpdateCurrent, a.Type)
		assert.Equal(t, 0, s.Current(), "action must be observed before the write")
		events = append(events, "action")
	})
	s.OnMutation(func(Mutation[int]) { events = append(events, "mutation") })

	s.RequestSetCurrent(9)
	s.SetCurrent(10)
	assert.Equal(t, []string{"action", "mutation", "mutation"}, events)
	assert.Equal(t, 10, s.Current())
}

func TestStore_Watch(t *testing.T) {
	s := New[string]()
	type pair struct{ next, prev string }
	var seen []pair
	s.Watch(func(next, prev string) { seen = append(seen, pair{next, prev}) })

	s.SetCurrent("one")
	s.SetCurrent("two")
	assert.Equal(t, []pair{{"one", ""}, {"two", "one"}}, seen)
	assert.NotPanics(t, func() { s.Watch(nil)() })
}

func TestGetter(t *testing.T) {
	s := New[*item]()
	title := Getter(s, nil, func(it *item) string {
		if it == nil {
			return "(none)"
		}
		return it.Title
	})
	defer title.Stop()

	assert.Equal(t, "(none)", title.Get())
	s.SetCurrent(&item{ID: 1, Title: "Book A"})
	assert.Equal(t, "Book A", title.Get())
	s.SetCurrent(nil)
	assert.Equal(t, "(none)", title.Get())
}

func TestGetter_ScheduledRefresh(t *testing.T) {
	s := New[int]()
	queue := state.NewQueue()
	label := Getter(s, queue, func(v int) string { return fmt.Sprintf("#%d", v) })
	defer label.Stop()

	redraws := 0
	label.SubscribeWithScheduler(nil, func() { redraws++ })

	s.SetCurrent(1)
	s.SetCurrent(2)
	assert.Equal(t, "#0", label.Get())
	require.Equal(t, 2, queue.Flush())
	assert.Equal(t, "#2", label.Get())
	assert.Equal(t, 2, redraws)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(WithLogger[string](logger))

	s.RequestSetCurrent("Book A")
	out := buf.String()
	assert.Contains(t, out, "action dispatched")
	assert.Contains(t, out, "mutation committed")
	assert.Contains(t, out, UpdateCurrent)
}

func TestStore_NilReceiver(t *testing.T) {
	var s *Store[int]
	assert.NotPanics(t, func() {
		s.SetCurrent(1)
		s.RequestSetCurrent(2)
		s.Subscribe(func() {})()
		s.OnMutation(func(Mutation[int]) {})()
	})
	assert.Equal(t, 0, s.Current())
}
