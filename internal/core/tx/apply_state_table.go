package tx

import (
	"encoding/hex"
	"fmt"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

type trackedAction int

const (
	actionCache trackedAction = iota // read through, unmodified
	actionInsert
	actionModify
	actionErase
)

type trackedEntry struct {
	keylet keylet.Keylet
	action trackedAction
	data   []byte
	// existed records whether the entry was present in the base view when
	// first touched, so insert-then-erase collapses to a no-op.
	existed bool
}

// ApplyStateTable buffers every state change a transaction makes. Nothing
// reaches the base view until Apply, so a failed transaction leaves no
// trace.
type ApplyStateTable struct {
	base  LedgerView
	items map[[32]byte]*trackedEntry
}

// NewApplyStateTable creates an empty staging table over the base view.
func NewApplyStateTable(base LedgerView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*trackedEntry),
	}
}

func (t *ApplyStateTable) load(k keylet.Keylet) (*trackedEntry, error) {
	if item, ok := t.items[k.Key]; ok {
		return item, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}
	item := &trackedEntry{
		keylet:  k,
		action:  actionCache,
		data:    data,
		existed: data != nil,
	}
	t.items[k.Key] = item
	return item, nil
}

func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	item, err := t.load(k)
	if err != nil {
		return nil, err
	}
	if item.action == actionErase {
		return nil, nil
	}
	return item.data, nil
}

func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	data, err := t.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	item, err := t.load(k)
	if err != nil {
		return err
	}
	if item.action != actionErase && item.data != nil {
		return fmt.Errorf("%w: %s %x", ErrEntryExists, k.Type, k.Key[:8])
	}

	item.data = data
	if item.existed {
		// Erased earlier in this same transaction; re-creating it is a
		// modification of the base entry.
		item.action = actionModify
	} else {
		item.action = actionInsert
	}
	return nil
}

func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	item, err := t.load(k)
	if err != nil {
		return err
	}
	if item.action == actionErase || item.data == nil {
		return fmt.Errorf("%w: %s %x", ErrEntryNotFound, k.Type, k.Key[:8])
	}

	item.data = data
	if item.action != actionInsert {
		item.action = actionModify
	}
	return nil
}

func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	item, err := t.load(k)
	if err != nil {
		return err
	}
	if item.action == actionErase || item.data == nil {
		return fmt.Errorf("%w: %s %x", ErrEntryNotFound, k.Type, k.Key[:8])
	}

	item.data = nil
	if item.existed {
		item.action = actionErase
	} else {
		// Created and erased within the same transaction.
		item.action = actionCache
	}
	return nil
}

// Apply commits the buffered changes to the base view and returns the list
// of affected entries.
func (t *ApplyStateTable) Apply() ([]ChangedEntry, error) {
	var changes []ChangedEntry

	for _, item := range t.items {
		var action string
		var err error

		switch item.action {
		case actionCache:
			continue
		case actionInsert:
			action = "created"
			err = t.base.Insert(item.keylet, item.data)
		case actionModify:
			action = "modified"
			err = t.base.Update(item.keylet, item.data)
		case actionErase:
			action = "deleted"
			err = t.base.Erase(item.keylet)
		}
		if err != nil {
			return nil, fmt.Errorf("apply staged %s: %w", item.keylet.Type, err)
		}

		changes = append(changes, ChangedEntry{
			Action:    action,
			EntryType: item.keylet.Type.String(),
			Key:       hex.EncodeToString(item.keylet.Key[:]),
		})
	}
	return changes, nil
}
