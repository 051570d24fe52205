package event

import (
	"sync"
	"testing"
)

func TestOnAndEmit(t *testing.T) {
	e := NewEmitter()

	var got any
	sub := e.On("update", func(payload any) { got = payload })
	if sub == nil {
		t.Fatal("On returned nil subscription")
	}

	e.Emit("update", 42)
	if got != 42 {
		t.Errorf("listener received %v, want 42", got)
	}
}

func TestEmitWrongName(t *testing.T) {
	e := NewEmitter()

	called := false
	e.On("update", func(any) { called = true })

	e.Emit("other", nil)
	if called {
		t.Error("listener for a different name should not fire")
	}
}

func TestMultipleListeners(t *testing.T) {
	e := NewEmitter()

	count := 0
	e.On("tick", func(any) { count++ })
	e.On("tick", func(any) { count++ })
	e.On("tick", func(any) { count++ })

	e.Emit("tick", nil)
	if count != 3 {
		t.Errorf("expected 3 deliveries, got %d", count)
	}
}

func TestUnsubscribe(t *testing.T) {
	e := NewEmitter()

	called := false
	sub := e.On("tick", func(any) { called = true })
	sub.Unsubscribe()

	e.Emit("tick", nil)
	if called {
		t.Error("unsubscribed listener should not fire")
	}
	if e.ListenerCount("tick") != 0 {
		t.Errorf("expected 0 listeners, got %d", e.ListenerCount("tick"))
	}

	// Idempotent.
	sub.Unsubscribe()
}

func TestNilSubscription(t *testing.T) {
	var sub *Subscription
	sub.Unsubscribe() // must not panic
	if sub.ID() != "" {
		t.Error("nil subscription should have empty ID")
	}
}

func TestNilListener(t *testing.T) {
	e := NewEmitter()
	if sub := e.On("tick", nil); sub != nil {
		t.Error("nil listener should not register")
	}
	e.Emit("tick", nil)
}

func TestPanickingListenerIsIsolated(t *testing.T) {
	e := NewEmitter()

	delivered := 0
	e.On("tick", func(any) { delivered++ })
	e.On("tick", func(any) { panic("bad subscriber") })
	e.On("tick", func(any) { delivered++ })

	e.Emit("tick", nil) // must not panic
	if delivered != 2 {
		t.Errorf("healthy listeners should still fire, got %d deliveries", delivered)
	}
}

func TestUnsubscribeDuringEmit(t *testing.T) {
	e := NewEmitter()

	var subs []*Subscription
	fired := 0
	for i := 0; i < 4; i++ {
		sub := e.On("tick", func(any) {
			fired++
			// Listeners may unsubscribe everything mid-emission.
			for _, s := range subs {
				s.Unsubscribe()
			}
		})
		subs = append(subs, sub)
	}

	e.Emit("tick", nil) // must not deadlock or panic

	// The snapshot means all four listeners from this emission still run.
	if fired != 4 {
		t.Errorf("expected 4 deliveries from snapshot, got %d", fired)
	}

	fired = 0
	e.Emit("tick", nil)
	if fired != 0 {
		t.Errorf("all listeners were removed, got %d deliveries", fired)
	}
}

func TestClear(t *testing.T) {
	e := NewEmitter()
	e.On("a", func(any) {})
	e.On("b", func(any) {})

	e.Clear()
	if e.ListenerCount("a") != 0 || e.ListenerCount("b") != 0 {
		t.Error("Clear should remove all listeners")
	}
}

func TestConcurrentEmitAndSubscribe(t *testing.T) {
	e := NewEmitter()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sub := e.On("tick", func(any) {})
				e.Emit("tick", j)
				sub.Unsubscribe()
			}
		}()
	}
	wg.Wait()
}
