// Package leveldb implements the kv.DB interface on top of goleveldb.
// It is the fallback backend for platforms where pebble is unsuitable.
package leveldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv"
)

func init() {
	kv.RegisterBackend("leveldb", func(path string) (kv.DB, error) {
		return Open(path)
	})
}

// DB wraps a goleveldb database.
type DB struct {
	db *leveldb.DB
}

// Open opens (or creates) a leveldb database at the given path.
func Open(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb at %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, kv.ErrDBClosed
	}
	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, kv.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return kv.ErrDBClosed
	}
	return l.db.Put(key, value, nil)
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return kv.ErrDBClosed
	}
	return l.db.Delete(key, nil)
}

func (l *DB) Batch(ctx context.Context, ops []kv.BatchOperation) error {
	if l.db == nil {
		return kv.ErrDBClosed
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case kv.BatchPut:
			batch.Put(op.Key, op.Value)
		case kv.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("%w: unknown operation type %d", kv.ErrBatchOperationFailed, op.Type)
		}
	}
	return l.db.Write(batch, nil)
}

func (l *DB) Close() error {
	if l.db == nil {
		return kv.ErrDBClosed
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// Iterator wraps a goleveldb iterator.
type Iterator struct {
	iter iterator.Iterator
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (kv.Iterator, error) {
	if l.db == nil {
		return nil, kv.ErrDBClosed
	}
	return &Iterator{iter: l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)}, nil
}

func (it *Iterator) Next() bool    { return it.iter.Next() }
func (it *Iterator) Key() []byte   { return append([]byte(nil), it.iter.Key()...) }
func (it *Iterator) Value() []byte { return append([]byte(nil), it.iter.Value()...) }
func (it *Iterator) Error() error  { return it.iter.Error() }
func (it *Iterator) Close() error  { it.iter.Release(); return it.iter.Error() }
