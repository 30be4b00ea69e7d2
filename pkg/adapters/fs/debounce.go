package fs

import (
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

// debouncer coalesces bursts of events per key into a single event emitted
// after the key has been quiet for delay.
type debouncer struct {
	delay   time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

// add schedules e for emission, replacing any pending event for the same key.
func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[e.Key] = merge(d.pending[e.Key], e)

	if t, ok := d.timers[e.Key]; ok && t.Stop() {
		d.wg.Done()
	}

	key := e.Key
	d.wg.Add(1)
	d.timers[key] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		ev, ok := d.pending[key]
		delete(d.pending, key)
		delete(d.timers, key)
		d.mu.Unlock()

		if ok {
			emit(ev)
		}
	})
}

// stopAndWait drops pending events and waits up to timeout for emissions
// already in flight.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	clear(d.pending)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}

// merge folds next into the pending event prev.
// A create followed by writes is still a create; a delete followed by a
// create is a modification of the slot.
func merge(prev, next core.Event) core.Event {
	switch {
	case prev.Type == "":
		return next
	case prev.Type == core.EventCreate && next.Type == core.EventModify:
		next.Type = core.EventCreate
	case prev.Type == core.EventDelete && next.Type == core.EventCreate:
		next.Type = core.EventModify
	}
	return next
}
