package audit

import (
	"errors"
	"sync"
	"testing"
)

type memoryWriter struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
}

func (w *memoryWriter) Write(ev Event) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	if ev.Action == "fail" {
		return errors.New("write failed")
	}
	return nil
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	w := &memoryWriter{}
	d := NewDispatcher(w, 10)

	d.Dispatch(Event{Action: "booking_created"})
	d.Dispatch(Event{Action: "fail"})
	d.Dispatch(Event{Action: "service_deleted"})
	d.Close()

	if len(w.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(w.events))
	}
	if w.events[0].Action != "booking_created" || w.events[2].Action != "service_deleted" {
		t.Fatalf("unexpected order: %+v", w.events)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	w := &memoryWriter{block: make(chan struct{})}
	d := NewDispatcher(w, 1)

	// o worker fica preso no primeiro evento; o segundo ocupa a fila
	for i := 0; i < 5; i++ {
		d.Dispatch(Event{Action: "booking_created"})
	}

	close(w.block)
	d.Close()

	if len(w.events) < 1 || len(w.events) > 2 {
		t.Fatalf("expected overflow events to be dropped, got %d", len(w.events))
	}
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	w := &memoryWriter{}
	d := NewDispatcher(w, 10)

	d.Dispatch(Event{Action: "booking_created"})
	d.Close()

	d.Dispatch(Event{Action: "service_deleted"})
	d.Close()

	if len(w.events) != 1 || w.events[0].Action != "booking_created" {
		t.Fatalf("expected only the event sent before Close, got %+v", w.events)
	}
}

func TestDispatchRacingCloseDoesNotPanic(t *testing.T) {
	d := NewDispatcher(&memoryWriter{}, 4)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(Event{Action: "booking_created"})
			}
		}()
	}

	d.Close()
	wg.Wait()
}
