package notify

// Hub is an ordered subscriber list. Publish delivers to every subscriber
// registered at call time, in registration order.
type Hub[T any] struct {
	subs []func(T)
}

func (h *Hub[T]) Subscribe(fn func(T)) {
	if fn == nil {
		return
	}
	h.subs = append(h.subs, fn)
}

func (h *Hub[T]) Publish(v T) {
	subs := h.subs
	for _, fn := range subs {
		fn(v)
	}
}

func (h *Hub[T]) Len() int { return len(h.subs) }

// Clear drops all subscribers.
func (h *Hub[T]) Clear() { h.subs = nil }
