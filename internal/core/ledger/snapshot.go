package ledger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv"
)

// Snapshots are lz4-compressed streams of length-prefixed key/value
// records, bounded to the entry keyspace.
var snapshotMagic = []byte("MKSNAP1\n")

// WriteSnapshot streams every state entry to w as a compressed snapshot.
func (l *Ledger) WriteSnapshot(ctx context.Context, w io.Writer) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, err := w.Write(snapshotMagic); err != nil {
		return err
	}

	zw := lz4.NewWriter(w)

	start := []byte{entryPrefix}
	end := []byte{entryPrefix + 1}
	iter, err := l.db.Iterator(ctx, start, end)
	if err != nil {
		return err
	}
	defer iter.Close()

	var lenBuf [4]byte
	writeChunk := func(b []byte) error {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
		if _, err := zw.Write(lenBuf[:]); err != nil {
			return err
		}
		_, err := zw.Write(b)
		return err
	}

	for iter.Next() {
		if err := writeChunk(iter.Key()); err != nil {
			return err
		}
		if err := writeChunk(iter.Value()); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return err
	}
	return zw.Close()
}

// RestoreSnapshot loads entries from a snapshot stream into the store.
// Existing entries with the same keys are overwritten.
func (l *Ledger) RestoreSnapshot(ctx context.Context, r io.Reader) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("read snapshot header: %w", err)
	}
	if string(magic) != string(snapshotMagic) {
		return errors.New("not a snapshot stream")
	}

	zr := lz4.NewReader(r)

	readChunk := func() ([]byte, error) {
		var lenBuf [4]byte
		if _, err := io.ReadFull(zr, lenBuf[:]); err != nil {
			return nil, err
		}
		b := make([]byte, binary.BigEndian.Uint32(lenBuf[:]))
		if _, err := io.ReadFull(zr, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	var ops []kv.BatchOperation
	for {
		key, err := readChunk()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read snapshot key: %w", err)
		}
		value, err := readChunk()
		if err != nil {
			return fmt.Errorf("read snapshot value: %w", err)
		}
		ops = append(ops, kv.BatchOperation{Type: kv.BatchPut, Key: key, Value: value})
	}

	if err := l.db.Batch(ctx, ops); err != nil {
		return err
	}
	l.cache.Purge()
	return nil
}
