package tx

import (
	"encoding/hex"
	"fmt"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

func hexEncode(b []byte) string { return hex.EncodeToString(b) }

// memView is a plain in-memory LedgerView used as the base of engine and
// state-table tests.
type memView struct {
	entries map[[32]byte][]byte
}

func newMemView() *memView {
	return &memView{entries: make(map[[32]byte][]byte)}
}

func (v *memView) Read(k keylet.Keylet) ([]byte, error) {
	data, ok := v.entries[k.Key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (v *memView) Exists(k keylet.Keylet) (bool, error) {
	_, ok := v.entries[k.Key]
	return ok, nil
}

func (v *memView) Insert(k keylet.Keylet, data []byte) error {
	if _, ok := v.entries[k.Key]; ok {
		return fmt.Errorf("%w: %s", ErrEntryExists, k.Type)
	}
	v.entries[k.Key] = append([]byte(nil), data...)
	return nil
}

func (v *memView) Update(k keylet.Keylet, data []byte) error {
	if _, ok := v.entries[k.Key]; !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, k.Type)
	}
	v.entries[k.Key] = append([]byte(nil), data...)
	return nil
}

func (v *memView) Erase(k keylet.Keylet) error {
	if _, ok := v.entries[k.Key]; !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, k.Type)
	}
	delete(v.entries, k.Key)
	return nil
}
