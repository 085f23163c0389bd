package notify

import "testing"

func TestHubDeliversInOrder(t *testing.T) {
	var h Hub[int]
	var got []string
	h.Subscribe(func(v int) { got = append(got, "a") })
	h.Subscribe(nil)
	h.Subscribe(func(v int) { got = append(got, "b") })

	h.Publish(1)
	h.Publish(2)

	want := []string{"a", "b", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if h.Len() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", h.Len())
	}
}

func TestHubSubscribeDuringPublish(t *testing.T) {
	var h Hub[string]
	calls := 0
	h.Subscribe(func(string) {
		calls++
		h.Subscribe(func(string) { calls++ })
	})

	h.Publish("x")
	if calls != 1 {
		t.Fatalf("late subscriber must not see the in-flight value, calls=%d", calls)
	}

	h.Clear()
	h.Publish("y")
	if calls != 1 {
		t.Fatalf("cleared hub still delivered, calls=%d", calls)
	}
}
