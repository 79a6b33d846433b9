package testing

import (
	"fmt"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
)

// View is an in-memory LedgerView for tests.
type View struct {
	entries map[[32]byte][]byte
}

// NewView creates an empty view.
func NewView() *View {
	return &View{entries: make(map[[32]byte][]byte)}
}

func (v *View) Read(k keylet.Keylet) ([]byte, error) {
	data, ok := v.entries[k.Key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (v *View) Exists(k keylet.Keylet) (bool, error) {
	_, ok := v.entries[k.Key]
	return ok, nil
}

func (v *View) Insert(k keylet.Keylet, data []byte) error {
	if _, ok := v.entries[k.Key]; ok {
		return fmt.Errorf("%w: %s", tx.ErrEntryExists, k.Type)
	}
	v.entries[k.Key] = append([]byte(nil), data...)
	return nil
}

func (v *View) Update(k keylet.Keylet, data []byte) error {
	if _, ok := v.entries[k.Key]; !ok {
		return fmt.Errorf("%w: %s", tx.ErrEntryNotFound, k.Type)
	}
	v.entries[k.Key] = append([]byte(nil), data...)
	return nil
}

func (v *View) Erase(k keylet.Keylet) error {
	if _, ok := v.entries[k.Key]; !ok {
		return fmt.Errorf("%w: %s", tx.ErrEntryNotFound, k.Type)
	}
	delete(v.entries, k.Key)
	return nil
}
