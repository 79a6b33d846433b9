package tx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/crypto/algorithms/ed25519"
	"github.com/Gravikko/nft-marketplace-sub000/internal/crypto/algorithms/secp256k1"
)

func signedTestTx(t *testing.T, priv, pub []byte) *AuctionBid {
	t.Helper()

	signer, err := address.FromPubKey(pub)
	require.NoError(t, err)

	bid := NewAuctionBid(address.Encode(signer))
	bid.Sequence = 1
	bid.AuctionID = 42
	bid.Payment = 1000
	require.NoError(t, SignTransaction(bid, pub, priv))
	return bid
}

func TestSignAndVerifySecp256k1(t *testing.T) {
	priv, pub, err := secp256k1.GenerateKeypair()
	require.NoError(t, err)

	bid := signedTestTx(t, priv, pub)
	require.NoError(t, VerifySignature(bid))
}

func TestSignAndVerifyEd25519(t *testing.T) {
	priv, pub, err := ed25519.GenerateKeypair()
	require.NoError(t, err)

	bid := signedTestTx(t, priv, pub)
	require.NoError(t, VerifySignature(bid))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	priv, pub, err := secp256k1.GenerateKeypair()
	require.NoError(t, err)

	bid := signedTestTx(t, priv, pub)
	bid.Payment = 2000
	require.Error(t, VerifySignature(bid))
}

func TestVerifyRejectsWrongAccount(t *testing.T) {
	priv, pub, err := secp256k1.GenerateKeypair()
	require.NoError(t, err)

	bid := signedTestTx(t, priv, pub)
	bid.Account = address.Encode([20]byte{9, 9, 9})
	require.ErrorIs(t, VerifySignature(bid), ErrBadSignature)
}

func TestVerifyRejectsUnsigned(t *testing.T) {
	bid := NewAuctionBid(address.Encode([20]byte{1}))
	require.ErrorIs(t, VerifySignature(bid), ErrMissingSignature)
}

func TestSignatureExcludedFromSigningHash(t *testing.T) {
	priv, pub, err := secp256k1.GenerateKeypair()
	require.NoError(t, err)

	bid := signedTestTx(t, priv, pub)
	before, err := SigningHash(bid)
	require.NoError(t, err)

	bid.TxnSignature = "deadbeef"
	after, err := SigningHash(bid)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestOrderHashDeterministic(t *testing.T) {
	seller := address.Encode([20]byte{1})
	a := &Order{Seller: seller, CollectionID: 1, TokenID: 2, Price: 100, Nonce: 7, Expiry: 999}
	b := &Order{Seller: seller, CollectionID: 1, TokenID: 2, Price: 100, Nonce: 7, Expiry: 999}

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	require.Equal(t, ha, hb)

	b.Nonce = 8
	hb, err = b.Hash()
	require.NoError(t, err)
	require.NotEqual(t, ha, hb)
}

func TestOrderAndOfferHashesDisjoint(t *testing.T) {
	// The same field values must never collide across intent kinds.
	who := address.Encode([20]byte{1})
	order := &Order{Seller: who, CollectionID: 1, TokenID: 2, Price: 100, Nonce: 7, Expiry: 999}
	offer := &Offer{Buyer: who, CollectionID: 1, TokenID: 2, Price: 100, Nonce: 7, Expiry: 999}

	ho, err := order.Hash()
	require.NoError(t, err)
	hf, err := offer.Hash()
	require.NoError(t, err)
	require.NotEqual(t, ho, hf)
}

func TestIntentSignatureVerification(t *testing.T) {
	priv, pub, err := secp256k1.GenerateKeypair()
	require.NoError(t, err)
	seller, err := address.FromPubKey(pub)
	require.NoError(t, err)

	order := &Order{
		Seller:       address.Encode(seller),
		CollectionID: 1,
		TokenID:      2,
		Price:        100,
		Nonce:        7,
		Expiry:       999,
	}
	sig, err := SignOrder(order, pub, priv)
	require.NoError(t, err)

	hash, err := order.Hash()
	require.NoError(t, err)
	require.NoError(t, verifyIntent(hash, order.Seller, hexEncode(pub), sig))

	// A different principal must be rejected even with a valid signature.
	other := address.Encode([20]byte{5})
	require.Error(t, verifyIntent(hash, other, hexEncode(pub), sig))
}

func TestTransactionIDChangesWithSignature(t *testing.T) {
	priv, pub, err := secp256k1.GenerateKeypair()
	require.NoError(t, err)

	bid := signedTestTx(t, priv, pub)
	id1, err := TransactionID(bid)
	require.NoError(t, err)

	bid2 := signedTestTx(t, priv, pub)
	bid2.Payment = 2000
	require.NoError(t, SignTransaction(bid2, pub, priv))
	id2, err := TransactionID(bid2)
	require.NoError(t, err)

	require.NotEqual(t, id1, id2)
}
