package ledger

import (
	"sort"

	"github.com/Veraticus/accountant/internal/model"
)

// EventKind identifies the mutation that produced an Event.
type EventKind string

// Event kinds.
const (
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
	EventCleared EventKind = "cleared"
)

// Event is delivered to subscribers after a mutation has been persisted.
type Event struct {
	Kind         EventKind
	Transactions []model.Transaction
}

// Subscribe registers fn to be called after every successful mutation.
// Calls happen synchronously on the mutating goroutine, outside the store lock.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(e Event) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, s.subscribers[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

