// Package ledger owns the in-memory transaction collection and every view
// derived from it.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/model"
	"github.com/Veraticus/accountant/internal/storage"
)

// DefaultRecentLimit is how many transactions the recent view shows.
const DefaultRecentLimit = 5

// Repository loads and saves the whole collection at once.
type Repository interface {
	Load(ctx context.Context) ([]model.Transaction, error)
	Save(ctx context.Context, transactions []model.Transaction) error
}

// LoadState describes what Open found in storage.
type LoadState int

const (
	// LoadEmpty means nothing was stored yet.
	LoadEmpty LoadState = iota
	// LoadLoaded means a stored collection was decoded.
	LoadLoaded
	// LoadCorrupt means the stored value could not be decoded and the store
	// started empty.
	LoadCorrupt
)

func (s LoadState) String() string {
	switch s {
	case LoadEmpty:
		return "empty"
	case LoadLoaded:
		return "loaded"
	case LoadCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// Store is the single owner of the transaction collection. All mutations go
// through it and are persisted before they become visible.
type Store struct {
	repo        Repository
	now         func() time.Time
	location    *time.Location
	logger      *slog.Logger
	subscribers map[int]func(Event)
	txns        []model.Transaction
	mu          sync.RWMutex
	subMu       sync.Mutex
	nextSub     int
	loadState   LoadState
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for "today" views.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone that defines calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open loads the collection through repo and returns a ready store.
// Undecodable data is treated as an empty collection; LoadState reports it.
func Open(ctx context.Context, repo Repository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, errors.New("ledger: repository is required")
	}

	s := &Store{
		repo:        repo,
		now:         time.Now,
		location:    time.Local,
		logger:      slog.Default(),
		subscribers: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}

	txns, err := repo.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrCorruptData):
		s.logger.Warn("stored transactions are corrupt, starting with an empty ledger", "error", err)
		s.loadState = LoadCorrupt
		txns = nil
	case err != nil:
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	case len(txns) > 0:
		s.loadState = LoadLoaded
	default:
		s.loadState = LoadEmpty
	}

	s.txns = append([]model.Transaction(nil), txns...)
	s.logger.Debug("ledger opened", "transactions", len(s.txns), "state", s.loadState.String())
	return s, nil
}

// LoadState reports what Open found in storage.
func (s *Store) LoadState() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadState
}

// Location returns the time zone used for calendar-day views.
func (s *Store) Location() *time.Location {
	return s.location
}

// commit persists next and, on success, installs it as the live collection.
// Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []model.Transaction) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.txns = next
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.txns {
		if s.txns[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []model.Transaction {
	out := make([]model.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

// Add appends a transaction and persists the collection.
// The record is expected to be validated by the caller.
func (s *Store) Add(ctx context.Context, txn model.Transaction) error {
	if txn.ID == "" {
		return model.ErrMissingID
	}

	s.mu.Lock()
	if s.indexOf(txn.ID) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: transaction %s", common.ErrDuplicateEntry, txn.ID)
	}
	next := append(s.snapshot(), txn)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Debug("transaction added", "id", txn.ID, "type", txn.Type.String(), "amount", txn.Amount)
	s.publish(Event{Kind: EventAdded, Transactions: []model.Transaction{txn}})
	return nil
}

// Update replaces the transaction with the same ID, keeping its position.
func (s *Store) Update(ctx context.Context, txn model.Transaction) error {
	s.mu.Lock()
	idx := s.indexOf(txn.ID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, txn.ID)
	}
	next := s.snapshot()
	next[idx] = txn
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Debug("transaction updated", "id", txn.ID)
	s.publish(Event{Kind: EventUpdated, Transactions: []model.Transaction{txn}})
	return nil
}

// Delete removes the transaction with txn's ID.
func (s *Store) Delete(ctx context.Context, txn model.Transaction) error {
	return s.DeleteByID(ctx, txn.ID)
}

// DeleteByID removes the transaction with the given ID.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	removed := s.txns[idx]
	next := make([]model.Transaction, 0, len(s.txns)-1)
	next = append(next, s.txns[:idx]...)
	next = append(next, s.txns[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Debug("transaction deleted", "id", id)
	s.publish(Event{Kind: EventDeleted, Transactions: []model.Transaction{removed}})
	return nil
}

// DeleteAt removes the records found at indices of view, an ordering the
// caller obtained earlier (usually a filtered, sorted list). Indices outside
// view and records no longer stored are skipped. The collection is persisted
// once, and only if something was removed. It returns the number removed.
func (s *Store) DeleteAt(ctx context.Context, view []model.Transaction, indices []int) (int, error) {
	targets := make(map[string]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(view) {
			continue
		}
		targets[view[i].ID] = struct{}{}
	}
	if len(targets) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	next := make([]model.Transaction, 0, len(s.txns))
	var removed []model.Transaction
	for _, txn := range s.txns {
		if _, ok := targets[txn.ID]; ok {
			removed = append(removed, txn)
			continue
		}
		next = append(next, txn)
	}
	if len(removed) == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.mu.Unlock()

	s.logger.Debug("transactions deleted", "count", len(removed))
	s.publish(Event{Kind: EventDeleted, Transactions: removed})
	return len(removed), nil
}

// Clear removes every transaction and persists the empty collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	removed := s.snapshot()
	if err := s.commit(ctx, []model.Transaction{}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Debug("ledger cleared", "removed", len(removed))
	s.publish(Event{Kind: EventCleared, Transactions: removed})
	return nil
}

// Transactions returns a copy of the collection in insertion order.
func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Sorted returns a copy of the collection, newest first.
func (s *Store) Sorted() []model.Transaction {
	return SortByDateDesc(s.Transactions())
}

// Recent returns at most n of the newest transactions.
func (s *Store) Recent(n int) []model.Transaction {
	sorted := s.Sorted()
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Get returns the transaction with the given ID.
func (s *Store) Get(id string) (model.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.txns[idx], true
	}
	return model.Transaction{}, false
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns)
}

// SortByDateDesc sorts txns in place by date, newest first, keeping the
// relative order of equal dates, and returns it.
func SortByDateDesc(txns []model.Transaction) []model.Transaction {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
	return txns
}
