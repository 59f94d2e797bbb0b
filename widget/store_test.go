package widget

import "testing"

func TestStoreSetCarriesUntouchedFields(t *testing.T) {
	s := NewStore()
	s.Set(func(st *State) { st.Quantity = 5 })
	s.Set(func(st *State) { st.Screen = ScreenGrid })

	got := s.Get()
	if got.Quantity != 5 {
		t.Errorf("quantity = %d, want 5 (carried over)", got.Quantity)
	}
	if got.Screen != ScreenGrid {
		t.Errorf("screen = %q", got.Screen)
	}
}

func TestStoreNotifiesInSubscriptionOrder(t *testing.T) {
	s := NewStore()
	var order []int
	s.Subscribe(func(State) { order = append(order, 1) })
	s.Subscribe(func(State) { order = append(order, 2) })
	s.Subscribe(func(State) { order = append(order, 3) })

	s.Set(func(st *State) { st.CartOpen = true })

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("notification order = %v", order)
	}
}

func TestStoreListenerReceivesNewSnapshot(t *testing.T) {
	s := NewStore()
	var seen Screen
	s.Subscribe(func(st State) { seen = st.Screen })

	s.Set(func(st *State) { st.Screen = ScreenDetail })

	if seen != ScreenDetail {
		t.Errorf("listener saw %q, want %q", seen, ScreenDetail)
	}
}

func TestStoreUnsubscribeStopsDelivery(t *testing.T) {
	s := NewStore()
	calls := 0
	unsub := s.Subscribe(func(State) { calls++ })

	s.Set(func(st *State) {})
	unsub()
	s.Set(func(st *State) {})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestStoreUnsubscribeDuringNotificationTakesEffectNextSet(t *testing.T) {
	s := NewStore()
	calls := 0
	var unsub func()
	s.Subscribe(func(State) { unsub() })
	unsub = s.Subscribe(func(State) { calls++ })

	// The first listener unsubscribes the second mid-notification; the
	// in-flight notification still reaches it.
	s.Set(func(st *State) {})
	if calls != 1 {
		t.Fatalf("calls after first set = %d, want 1", calls)
	}

	s.Set(func(st *State) {})
	if calls != 1 {
		t.Errorf("calls after second set = %d, want 1", calls)
	}
}

func TestStoreSubscribeDuringNotificationMissesCurrentSet(t *testing.T) {
	s := NewStore()
	lateCalls := 0
	s.Subscribe(func(State) {
		if lateCalls == 0 {
			s.Subscribe(func(State) { lateCalls++ })
		}
	})

	s.Set(func(st *State) {})
	if lateCalls != 0 {
		t.Fatalf("late listener ran during the set that added it")
	}

	s.Set(func(st *State) {})
	if lateCalls != 1 {
		t.Errorf("late listener calls = %d, want 1", lateCalls)
	}
}
