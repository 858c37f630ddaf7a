package freeze

import (
	"github.com/iamasit07/othello/internal/domain"
	"golang.org/x/exp/slices"
)

type EventKind int

const (
	// the stone becomes frozen
	EventFreeze EventKind = iota
	// the stone is live again
	EventThaw
)

func (k EventKind) String() string {
	if k == EventFreeze {
		return "freeze"
	}
	return "thaw"
}

// Event is a pending state change of one stone, due at Tick.
type Event struct {
	Tick  uint64
	Kind  EventKind
	Coord domain.Coord
}

func (e Event) compare(o Event) int {
	switch {
	case e.Tick < o.Tick:
		return -1
	case e.Tick > o.Tick:
		return 1
	case e.Kind != o.Kind:
		return int(e.Kind) - int(o.Kind)
	}
	return e.Coord.Compare(o.Coord)
}

// Scheduler is the single clock of a game's freeze timers. Events are kept
// sorted by due tick; every Advance pops the ones that became due.
type Scheduler struct {
	now    uint64
	events []Event
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now is the number of ticks elapsed since the scheduler started.
func (s *Scheduler) Now() uint64 {
	return s.now
}

func (s *Scheduler) Pending() int {
	return len(s.events)
}

func (s *Scheduler) push(e Event) {
	i, found := slices.BinarySearchFunc(s.events, e, Event.compare)
	if found {
		return
	}
	s.events = slices.Insert(s.events, i, e)
}

// Schedule starts a countdown for the stone at c and returns the timer the
// cell should carry.
func (s *Scheduler) Schedule(c domain.Coord, initDelay, persist int) domain.FreezeTimer {
	t := domain.FreezeTimer{
		InitDelay:       initDelay,
		OriginalPersist: persist,
		ScheduledAt:     s.now,
	}
	s.track(c, t)
	return t
}

func (s *Scheduler) track(c domain.Coord, t domain.FreezeTimer) {
	if t.FreezeAt() > s.now {
		s.push(Event{Tick: t.FreezeAt(), Kind: EventFreeze, Coord: c})
	}
	if t.ThawAt() > s.now {
		s.push(Event{Tick: t.ThawAt(), Kind: EventThaw, Coord: c})
	}
}

// Due returns the events whose tick has been reached without advancing.
func (s *Scheduler) Due() []Event {
	n := 0
	for n < len(s.events) && s.events[n].Tick <= s.now {
		n++
	}
	due := slices.Clone(s.events[:n])
	s.events = slices.Delete(s.events, 0, n)
	return due
}

// Advance moves the clock one tick forward and returns the events now due.
func (s *Scheduler) Advance() []Event {
	s.now++
	return s.Due()
}

// Rebuild drops every pending event and re-tracks the timers found on the
// board. Used after the board was replaced wholesale, e.g. by undo.
func (s *Scheduler) Rebuild(b *domain.Board) {
	s.events = s.events[:0]
	b.Each(func(c domain.Coord, cell *domain.Cell) {
		if t, ok := cell.Timer(); ok {
			s.track(c, t)
		}
	})
}

// Clear forgets every pending event.
func (s *Scheduler) Clear() {
	s.events = nil
}
