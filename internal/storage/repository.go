package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/accountant/internal/model"
)

// DefaultKey is the key the whole transaction collection is stored under.
const DefaultKey = "SavedTransactions"

// corruptSuffix is appended to the key when an undecodable blob is set aside.
const corruptSuffix = ".corrupt"

// TransactionRepository persists the full transaction collection as a single
// JSON document under one key of a BlobStore.
type TransactionRepository struct {
	blobs  BlobStore
	logger *slog.Logger
	key    string
}

// NewTransactionRepository creates a repository storing under key (DefaultKey when empty).
func NewTransactionRepository(blobs BlobStore, key string) *TransactionRepository {
	if key == "" {
		key = DefaultKey
	}
	return &TransactionRepository{
		blobs:  blobs,
		key:    key,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for load diagnostics.
func (r *TransactionRepository) WithLogger(logger *slog.Logger) *TransactionRepository {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Key returns the key the collection is stored under.
func (r *TransactionRepository) Key() string {
	return r.key
}

// Save encodes the entire collection and overwrites the stored value.
func (r *TransactionRepository) Save(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := Encode(transactions)
	if err != nil {
		return err
	}
	if err := r.blobs.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// Load reads and decodes the collection.
//
// A missing key yields an empty collection and no error. A value that cannot be
// decoded yields an empty collection and an error wrapping ErrCorruptData; the raw
// value is first copied to "<key>.corrupt" so it can be recovered by hand.
func (r *TransactionRepository) Load(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := r.blobs.Get(ctx, r.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []model.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	transactions, decodeErr := Decode(data)
	if decodeErr == nil {
		return transactions, nil
	}

	backupKey := r.key + corruptSuffix
	if putErr := r.blobs.Put(ctx, backupKey, data); putErr != nil {
		r.logger.Error("failed to back up corrupt transaction data",
			"key", r.key,
			"backup_key", backupKey,
			"error", putErr)
	} else {
		r.logger.Warn("stored transactions could not be decoded; raw data backed up",
			"key", r.key,
			"backup_key", backupKey,
			"bytes", len(data),
			"error", decodeErr)
	}
	return []model.Transaction{}, decodeErr
}

// Encode serializes a collection to its persisted form. An empty or nil
// collection encodes as "[]".
func Encode(transactions []model.Transaction) ([]byte, error) {
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	data, err := json.Marshal(transactions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transactions: %w", err)
	}
	return data, nil
}

// Decode parses the persisted form. Decoding errors wrap ErrCorruptData.
func Decode(data []byte) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}

	seen := make(map[string]struct{}, len(transactions))
	for i, txn := range transactions {
		if txn.ID == "" {
			return nil, fmt.Errorf("%w: transaction at index %d has no id", ErrCorruptData, i)
		}
		if _, dup := seen[txn.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrCorruptData, txn.ID)
		}
		seen[txn.ID] = struct{}{}
	}
	return transactions, nil
}
