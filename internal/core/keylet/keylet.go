// Package keylet computes the 256-bit addresses of ledger state entries.
// Every entry kind owns a one-byte space identifier that is hashed together
// with the entry's identifying fields, so entries of different kinds can
// never collide even when their fields do.
package keylet

import (
	"encoding/binary"

	crypto "github.com/Gravikko/nft-marketplace-sub000/internal/crypto/common"
)

// EntryType identifies the kind of ledger entry a keylet addresses.
type EntryType uint16

const (
	TypeAccountRoot EntryType = iota + 1
	TypeCollection
	TypeToken
	TypeNonceFlag
	TypeCancelFlag
	TypeAuction
	TypeMarketState
)

// String returns the canonical entry type name.
func (t EntryType) String() string {
	switch t {
	case TypeAccountRoot:
		return "AccountRoot"
	case TypeCollection:
		return "Collection"
	case TypeToken:
		return "Token"
	case TypeNonceFlag:
		return "NonceFlag"
	case TypeCancelFlag:
		return "CancelFlag"
	case TypeAuction:
		return "Auction"
	case TypeMarketState:
		return "MarketState"
	default:
		return "Unknown"
	}
}

// Space identifiers for keylet generation.
const (
	spaceAccount    uint16 = 'a' // Account root
	spaceCollection uint16 = 'c' // Registered collection
	spaceToken      uint16 = 't' // Token within a collection
	spaceNonce      uint16 = 'n' // Consumed intent nonce flag
	spaceCancel     uint16 = 'x' // Cancelled intent hash flag
	spaceAuction    uint16 = 'u' // Auction record
	spaceMarket     uint16 = 'm' // Market state (singleton)
)

// Keylet represents an addressable location in the ledger state.
type Keylet struct {
	Type EntryType
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

// Account returns the keylet for an account root entry.
func Account(accountID [20]byte) Keylet {
	return Keylet{
		Type: TypeAccountRoot,
		Key:  indexHash(spaceAccount, accountID[:]),
	}
}

// Collection returns the keylet for a registered collection.
func Collection(collectionID uint64) Keylet {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, collectionID)
	return Keylet{
		Type: TypeCollection,
		Key:  indexHash(spaceCollection, buf),
	}
}

// Token returns the keylet for a token within a collection.
func Token(collectionID, tokenID uint64) Keylet {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], collectionID)
	binary.BigEndian.PutUint64(buf[8:], tokenID)
	return Keylet{
		Type: TypeToken,
		Key:  indexHash(spaceToken, buf),
	}
}

// Nonce returns the keylet for a signer-scoped consumed-nonce flag.
func Nonce(signer [20]byte, nonce uint64) Keylet {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, nonce)
	return Keylet{
		Type: TypeNonceFlag,
		Key:  indexHash(spaceNonce, signer[:], buf),
	}
}

// CancelFlag returns the keylet for a cancelled intent-hash flag.
func CancelFlag(intentHash [32]byte) Keylet {
	return Keylet{
		Type: TypeCancelFlag,
		Key:  indexHash(spaceCancel, intentHash[:]),
	}
}

// Auction returns the keylet for an auction record.
func Auction(auctionID uint64) Keylet {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, auctionID)
	return Keylet{
		Type: TypeAuction,
		Key:  indexHash(spaceAuction, buf),
	}
}

// MarketState returns the keylet for the singleton market state entry.
func MarketState() Keylet {
	return Keylet{
		Type: TypeMarketState,
		Key:  indexHash(spaceMarket),
	}
}
