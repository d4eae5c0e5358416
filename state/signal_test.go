package state

import "testing"

func TestSignal_EveryWriteNotifies(t *testing.T) {
	title := NewSignal("")
	var seen []string
	title.Subscribe(func() { seen = append(seen, title.Get()) })

	title.Set("Dune")
	title.Set("Dune")
	title.Set("Emma")

	want := []string{"Dune", "Dune", "Emma"}
	if len(seen) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected notification %d to read %q, got %q", i, want[i], seen[i])
		}
	}
}

func TestSignal_EqualFuncDropsWrite(t *testing.T) {
	id := NewSignal(3)
	id.SetEqualFunc(func(a, b int) bool { return a%2 == b%2 })
	calls := 0
	id.Subscribe(func() { calls++ })

	if id.Set(5) {
		t.Fatalf("expected write of same parity to be dropped")
	}
	if got := id.Get(); got != 3 {
		t.Fatalf("expected dropped write to keep 3, got %d", got)
	}
	if !id.Set(4) || calls != 1 {
		t.Fatalf("expected accepted write to notify once, got calls=%d", calls)
	}

	id.SetEqualFunc(nil)
	if !id.Set(4) {
		t.Fatalf("expected nil equal func to accept every write")
	}
}

func TestSignal_SwapReturnsPrevious(t *testing.T) {
	sig := NewSignal("first")

	prev, changed := sig.Swap("second")
	if !changed || prev != "first" {
		t.Fatalf("expected swap to return first/true, got %q/%v", prev, changed)
	}
	prev, _ = sig.Swap("third")
	if prev != "second" {
		t.Fatalf("expected second swap to return second, got %q", prev)
	}
}

func TestSignal_UnsubscribeMiddleKeepsOrder(t *testing.T) {
	sig := NewSignal(0)
	var order []string
	sig.Subscribe(func() { order = append(order, "a") })
	dropB := sig.Subscribe(func() { order = append(order, "b") })
	sig.Subscribe(func() { order = append(order, "c") })

	dropB()
	dropB()
	sig.Set(1)

	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Fatalf("expected [a c], got %v", order)
	}
}

func TestSignal_ListenerMayWrite(t *testing.T) {
	sig := NewSignal(0)
	sig.Subscribe(func() {
		if v := sig.Get(); v < 3 {
			sig.Set(v + 1)
		}
	})

	sig.Set(1)
	if got := sig.Get(); got != 3 {
		t.Fatalf("expected re-entrant writes to settle at 3, got %d", got)
	}
}

func TestSignal_ScheduledListenerWaitsForFlush(t *testing.T) {
	sig := NewSignal(false)
	queue := NewQueue()
	sawTrue := false
	sig.SubscribeWithScheduler(queue, func() { sawTrue = sig.Get() })

	sig.Set(true)
	if sawTrue {
		t.Fatalf("expected listener to wait for flush")
	}
	queue.Flush()
	if !sawTrue {
		t.Fatalf("expected listener to run on flush")
	}
}

func TestSignal_NilReceiver(t *testing.T) {
	var sig *Signal[string]

	if sig.Get() != "" {
		t.Fatalf("expected zero value from nil signal")
	}
	if _, changed := sig.Swap("x"); changed {
		t.Fatalf("expected nil signal to ignore writes")
	}
	sig.Subscribe(func() {})()
	sig.SetEqualFunc(nil)
}
