package tx

import (
	"errors"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

var (
	// ErrEntryExists is returned when inserting over an existing entry
	ErrEntryExists = errors.New("ledger entry already exists")

	// ErrEntryNotFound is returned when updating or erasing a missing entry
	ErrEntryNotFound = errors.New("ledger entry not found")
)

// LedgerView is the read/write surface transactions run against. Read
// returns (nil, nil) for an absent entry; Insert fails on an existing one
// and Update or Erase fail on a missing one.
type LedgerView interface {
	Read(k keylet.Keylet) ([]byte, error)
	Exists(k keylet.Keylet) (bool, error)
	Insert(k keylet.Keylet, data []byte) error
	Update(k keylet.Keylet, data []byte) error
	Erase(k keylet.Keylet) error
}
