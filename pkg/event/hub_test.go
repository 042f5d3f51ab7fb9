package event

import "testing"

func TestHubPublishOrder(t *testing.T) {
	var h Hub[int]
	var got []string

	h.Subscribe(func(v int) { got = append(got, "a") })
	h.Subscribe(func(v int) { got = append(got, "b") })

	h.Publish(1)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Publish order = %v, want [a b]", got)
	}
}

func TestHubCancel(t *testing.T) {
	var h Hub[string]
	calls := 0

	sub := h.Subscribe(func(string) { calls++ })
	h.Publish("x")
	sub.Cancel()
	sub.Cancel()
	h.Publish("y")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHubCancelDuringPublish(t *testing.T) {
	var h Hub[int]
	var second *Subscription
	secondCalls := 0

	h.Subscribe(func(int) { second.Cancel() })
	second = h.Subscribe(func(int) { secondCalls++ })

	h.Publish(1)

	if secondCalls != 0 {
		t.Errorf("cancelled subscriber called %d times, want 0", secondCalls)
	}
}

func TestNilSubscriptionCancel(t *testing.T) {
	var s *Subscription
	s.Cancel()
}
