package testing

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/crypto/algorithms/ed25519"
	"github.com/Gravikko/nft-marketplace-sub000/internal/crypto/algorithms/secp256k1"
)

// Account is a funded test identity with a real keypair.
type Account struct {
	Name    string
	ID      [20]byte
	Address string
	PubKey  []byte
	PrivKey []byte

	// sequence of the last successfully applied transaction.
	sequence uint32
}

// NewAccount generates a secp256k1 test account.
func NewAccount(t *testing.T, name string) *Account {
	t.Helper()

	priv, pub, err := secp256k1.GenerateKeypair()
	require.NoError(t, err)
	return accountFromKeys(t, name, priv, pub)
}

// NewEd25519Account generates an Ed25519 test account.
func NewEd25519Account(t *testing.T, name string) *Account {
	t.Helper()

	priv, pub, err := ed25519.GenerateKeypair()
	require.NoError(t, err)
	return accountFromKeys(t, name, priv, pub)
}

func accountFromKeys(t *testing.T, name string, priv, pub []byte) *Account {
	t.Helper()

	id, err := address.FromPubKey(pub)
	require.NoError(t, err)
	return &Account{
		Name:    name,
		ID:      id,
		Address: address.Encode(id),
		PubKey:  pub,
		PrivKey: priv,
	}
}

// NextSequence returns the sequence the account's next transaction must
// carry.
func (a *Account) NextSequence() uint32 { return a.sequence + 1 }

// PubKeyHex returns the prefixed public key in hex, the form intent
// payloads carry.
func (a *Account) PubKeyHex() string { return hex.EncodeToString(a.PubKey) }
