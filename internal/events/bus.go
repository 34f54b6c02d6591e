// Package events carries session state changes from the tracker to
// consumers that run outside the update loop.
package events

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sandeepkv93/goalquest/internal/tracker"
)

var ErrBusClosed = errors.New("events: bus closed")

// Bus delivers events on a buffered channel without ever blocking the
// publisher. Events that do not fit are counted and dropped.
type Bus struct {
	mu      sync.Mutex
	out     chan tracker.Event
	closed  bool
	dropped uint64
}

func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Bus{out: make(chan tracker.Event, bufferSize)}
}

func (b *Bus) C() <-chan tracker.Event {
	return b.out
}

// Notify lets a Bus subscribe to a tracker.Session.
func (b *Bus) Notify(ev tracker.Event) {
	_ = b.Publish(ev)
}

func (b *Bus) Publish(ev tracker.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBusClosed
	}
	select {
	case b.out <- ev:
	default:
		atomic.AddUint64(&b.dropped, 1)
	}
	return nil
}

func (b *Bus) Dropped() uint64 {
	return atomic.LoadUint64(&b.dropped)
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.out)
}
