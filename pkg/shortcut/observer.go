package shortcut

import "sync"

type binding struct {
	id int
	fn func()
}

// Observer dispatches key combos to registered handlers.
// Handlers are owned by whoever registered them: an editing surface
// registers on open and calls the returned unregister func on teardown.
type Observer struct {
	mu       sync.Mutex
	nextID   int
	bindings map[Combo][]binding
}

// NewObserver creates an Observer with no bindings.
func NewObserver() *Observer {
	return &Observer{bindings: make(map[Combo][]binding)}
}

// Register binds fn to c. The returned func removes exactly this binding and
// may be called more than once.
func (o *Observer) Register(c Combo, fn func()) (unregister func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.bindings[c] = append(o.bindings[c], binding{id: id, fn: fn})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()

		list := o.bindings[c]
		for i, b := range list {
			if b.id == id {
				o.bindings[c] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(o.bindings[c]) == 0 {
			delete(o.bindings, c)
		}
	}
}

// Dispatch runs every handler bound to c, in registration order, and reports
// whether there was any. Handlers run without the lock held, so they may
// register or unregister.
func (o *Observer) Dispatch(c Combo) bool {
	o.mu.Lock()
	list := append([]binding(nil), o.bindings[c]...)
	o.mu.Unlock()

	for _, b := range list {
		b.fn()
	}
	return len(list) > 0
}

// Bound reports whether any handler is registered for c.
func (o *Observer) Bound(c Combo) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.bindings[c]) > 0
}
