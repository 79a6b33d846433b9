// Package address derives and renders ledger account identifiers.
//
// An account ID is the RIPEMD-160 digest of the SHA-512-half of the
// account's public key (including the one-byte key type prefix). Addresses
// are rendered as uppercase hex with a fixed "MK" prefix so they cannot be
// confused with raw hashes or token identifiers.
package address

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/decred/dcrd/crypto/ripemd160"

	crypto "github.com/Gravikko/nft-marketplace-sub000/internal/crypto/common"
)

// Prefix distinguishes account addresses from other hex-rendered values.
const Prefix = "MK"

var (
	// ErrInvalidAddress is returned when an address string cannot be decoded
	ErrInvalidAddress = errors.New("invalid account address")

	// ErrInvalidPublicKey is returned when a public key is too short to
	// derive an account from
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// AccountID is a 20-byte account identifier.
type AccountID = [20]byte

// FromPubKey derives the account ID for a prefixed public key.
func FromPubKey(pubKey []byte) (AccountID, error) {
	var id AccountID
	if len(pubKey) < 32 {
		return id, ErrInvalidPublicKey
	}

	inner := crypto.Sha512Half(pubKey)
	h := ripemd160.New()
	h.Write(inner[:])
	copy(id[:], h.Sum(nil))
	return id, nil
}

// Encode renders an account ID as an address string.
func Encode(id AccountID) string {
	return Prefix + strings.ToUpper(hex.EncodeToString(id[:]))
}

// Decode parses an address string back into an account ID.
func Decode(addr string) (AccountID, error) {
	var id AccountID
	if !strings.HasPrefix(addr, Prefix) {
		return id, ErrInvalidAddress
	}
	raw, err := hex.DecodeString(strings.ToLower(strings.TrimPrefix(addr, Prefix)))
	if err != nil || len(raw) != 20 {
		return id, ErrInvalidAddress
	}
	copy(id[:], raw)
	return id, nil
}
