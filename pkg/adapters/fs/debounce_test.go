package fs

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

func TestDebouncer_CoalescesPerKey(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var got []core.Event
	emit := func(e core.Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	}

	d.add(core.Event{Type: core.EventCreate, Key: "a"}, emit)
	d.add(core.Event{Type: core.EventModify, Key: "a"}, emit)
	d.add(core.Event{Type: core.EventModify, Key: "a"}, emit)
	d.add(core.Event{Type: core.EventModify, Key: "b"}, emit)

	time.Sleep(150 * time.Millisecond)
	d.stopAndWait(time.Second)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(got), got)
	}
	for _, e := range got {
		if e.Key == "a" && e.Type != core.EventCreate {
			t.Errorf("create followed by writes should stay a create, got %s", e.Type)
		}
	}
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	d := newDebouncer(time.Hour)
	fired := false
	d.add(core.Event{Type: core.EventModify, Key: "a"}, func(core.Event) { fired = true })

	d.stopAndWait(time.Second)
	d.add(core.Event{Type: core.EventModify, Key: "b"}, func(core.Event) { fired = true })

	if fired {
		t.Error("no event should fire after stop")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		prev, next, want core.EventType
	}{
		{"", core.EventModify, core.EventModify},
		{core.EventCreate, core.EventModify, core.EventCreate},
		{core.EventDelete, core.EventCreate, core.EventModify},
		{core.EventModify, core.EventDelete, core.EventDelete},
	}
	for _, tt := range tests {
		got := merge(core.Event{Type: tt.prev}, core.Event{Type: tt.next}).Type
		if got != tt.want {
			t.Errorf("merge(%s, %s) = %s, want %s", tt.prev, tt.next, got, tt.want)
		}
	}
}
