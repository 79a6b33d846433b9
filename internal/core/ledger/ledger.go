// Package ledger persists the market's state entries in a key-value store
// and exposes them as the view the transaction engine runs against.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
	"github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv"
)

// entryPrefix namespaces state entries within the store, leaving room for
// bookkeeping keys alongside them.
const entryPrefix = 'e'

const defaultCacheSize = 16384

// Ledger is a kv-backed LedgerView with a read cache. The RWMutex guards
// individual operations and the cache; whole-transaction atomicity comes
// from the node's submit loop, which applies one transaction at a time.
type Ledger struct {
	mu    sync.RWMutex
	db    kv.DB
	cache *lru.Cache[[32]byte, []byte]
}

// Open wraps an already-open key-value store.
func Open(db kv.DB) (*Ledger, error) {
	cache, err := lru.New[[32]byte, []byte](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Ledger{db: db, cache: cache}, nil
}

func storageKey(k keylet.Keylet) []byte {
	key := make([]byte, 1+len(k.Key))
	key[0] = entryPrefix
	copy(key[1:], k.Key[:])
	return key
}

func (l *Ledger) read(k keylet.Keylet) ([]byte, error) {
	if data, ok := l.cache.Get(k.Key); ok {
		return data, nil
	}

	data, err := l.db.Read(context.Background(), storageKey(k))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s entry: %w", k.Type, err)
	}
	l.cache.Add(k.Key, data)
	return data, nil
}

// Read returns the entry's serialized form, or nil if absent.
func (l *Ledger) Read(k keylet.Keylet) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.read(k)
}

// Exists reports whether the entry is present.
func (l *Ledger) Exists(k keylet.Keylet) (bool, error) {
	data, err := l.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// Insert writes a new entry; it fails if one already exists.
func (l *Ledger) Insert(k keylet.Keylet, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.read(k)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", tx.ErrEntryExists, k.Type)
	}

	if err := l.db.Write(context.Background(), storageKey(k), data); err != nil {
		return err
	}
	l.cache.Add(k.Key, data)
	return nil
}

// Update overwrites an existing entry; it fails if none exists.
func (l *Ledger) Update(k keylet.Keylet, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.read(k)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", tx.ErrEntryNotFound, k.Type)
	}

	if err := l.db.Write(context.Background(), storageKey(k), data); err != nil {
		return err
	}
	l.cache.Add(k.Key, data)
	return nil
}

// Erase removes an existing entry; it fails if none exists.
func (l *Ledger) Erase(k keylet.Keylet) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.read(k)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", tx.ErrEntryNotFound, k.Type)
	}

	if err := l.db.Delete(context.Background(), storageKey(k)); err != nil {
		return err
	}
	l.cache.Remove(k.Key)
	return nil
}

// Close closes the underlying store.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Purge()
	return l.db.Close()
}
