// Package testutil provides helpers for building transactions and ledgers in tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
	"github.com/Veraticus/accountant/internal/storage"
)

// ErrInjected is returned by FlakyStore when a write is set to fail.
var ErrInjected = errors.New("injected storage failure")

// FlakyStore is an in-memory BlobStore whose writes can be made to fail.
type FlakyStore struct {
	*storage.MemoryStore
	mu       sync.Mutex
	failPuts bool
	putCalls int
}

// NewFlakyStore returns a FlakyStore that succeeds until told otherwise.
func NewFlakyStore() *FlakyStore {
	return &FlakyStore{MemoryStore: storage.NewMemoryStore()}
}

// FailPuts toggles write failures.
func (f *FlakyStore) FailPuts(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPuts = fail
}

// PutCalls returns how many writes were attempted.
func (f *FlakyStore) PutCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putCalls
}

// Put implements storage.BlobStore.
func (f *FlakyStore) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	f.putCalls++
	fail := f.failPuts
	f.mu.Unlock()

	if fail {
		return ErrInjected
	}
	return f.MemoryStore.Put(ctx, key, value)
}

// TestLedger bundles a store with the storage behind it.
type TestLedger struct {
	Store *ledger.Store
	Blobs *FlakyStore
	Repo  *storage.TransactionRepository
	t     *testing.T
}

// LedgerOptions configures NewLedger.
type LedgerOptions struct {
	Now          time.Time
	Location     *time.Location
	Transactions []model.Transaction
}

// NewLedger opens a store over in-memory storage seeded with opts.Transactions.
// The store's clock is fixed at opts.Now (DefaultDate when zero) and its
// location defaults to UTC.
func NewLedger(t *testing.T, opts LedgerOptions) *TestLedger {
	t.Helper()

	ctx := context.Background()
	blobs := NewFlakyStore()
	repo := storage.NewTransactionRepository(blobs, storage.DefaultKey)

	if len(opts.Transactions) > 0 {
		if err := repo.Save(ctx, opts.Transactions); err != nil {
			t.Fatalf("failed to seed transactions: %v", err)
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = DefaultDate
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	store, err := ledger.Open(ctx, repo,
		ledger.WithClock(FixedClock(now)),
		ledger.WithLocation(loc),
		ledger.WithLogger(common.DiscardLogger()),
	)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}

	t.Cleanup(func() {
		_ = blobs.Close()
	})

	return &TestLedger{Store: store, Blobs: blobs, Repo: repo, t: t}
}

// NewStore is shorthand for a ledger seeded with txns.
func NewStore(t *testing.T, txns ...model.Transaction) *ledger.Store {
	t.Helper()
	return NewLedger(t, LedgerOptions{Transactions: txns}).Store
}

// MustAdd adds every transaction or fails the test.
func (l *TestLedger) MustAdd(txns ...model.Transaction) {
	l.t.Helper()
	for _, txn := range txns {
		if err := l.Store.Add(context.Background(), txn); err != nil {
			l.t.Fatalf("failed to add transaction %s: %v", txn.ID, err)
		}
	}
}

// Persisted loads what is currently stored.
func (l *TestLedger) Persisted() []model.Transaction {
	l.t.Helper()
	txns, err := l.Repo.Load(context.Background())
	if err != nil {
		l.t.Fatalf("failed to load persisted transactions: %v", err)
	}
	return txns
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}
