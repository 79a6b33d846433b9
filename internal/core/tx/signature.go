package tx

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/crypto/algorithms/ed25519"
	"github.com/Gravikko/nft-marketplace-sub000/internal/crypto/algorithms/secp256k1"
	crypto "github.com/Gravikko/nft-marketplace-sub000/internal/crypto/common"
)

// Domain prefixes keep the hashes of different signed artifacts disjoint:
// a signature over one kind of payload can never be replayed as another.
var (
	prefixTxSign      = []byte{'T', 'X', 'N', 0}
	prefixTxID        = []byte{'T', 'I', 'D', 0}
	prefixOrderIntent = []byte{'O', 'R', 'D', 0}
	prefixOfferIntent = []byte{'O', 'F', 'R', 0}
)

var (
	ErrMissingSignature = errors.New("transaction carries no signature")
	ErrBadSignature     = errors.New("signature verification failed")
	ErrUnknownAlgorithm = errors.New("unknown signing key prefix")
)

// signingPayload encodes the transaction without its signature field. The
// canonical CBOR encoding makes the payload deterministic, so signer and
// verifier always hash the same bytes.
func signingPayload(t Transaction) ([]byte, error) {
	var buf []byte
	if err := codec.NewEncoderBytes(&buf, cborHandle).Encode(t); err != nil {
		return nil, fmt.Errorf("encode signing payload: %w", err)
	}
	return buf, nil
}

// SigningHash returns the digest a transaction signature covers.
func SigningHash(t Transaction) ([32]byte, error) {
	payload, err := signingPayload(t)
	if err != nil {
		return [32]byte{}, err
	}
	return crypto.Sha512Half(prefixTxSign, payload), nil
}

// TransactionID returns the identifying hash of a signed transaction.
func TransactionID(t Transaction) ([32]byte, error) {
	payload, err := signingPayload(t)
	if err != nil {
		return [32]byte{}, err
	}
	sig, err := hex.DecodeString(t.GetCommon().TxnSignature)
	if err != nil {
		return [32]byte{}, fmt.Errorf("decode signature: %w", err)
	}
	return crypto.Sha512Half(prefixTxID, payload, sig), nil
}

// SignTransaction fills in SigningPubKey and TxnSignature using the given
// keypair. The public key must carry its algorithm prefix byte.
func SignTransaction(t Transaction, pubKey, privKey []byte) error {
	common := t.GetCommon()
	common.SigningPubKey = hex.EncodeToString(pubKey)

	digest, err := SigningHash(t)
	if err != nil {
		return err
	}

	sig, err := signDigest(digest, pubKey, privKey)
	if err != nil {
		return err
	}
	common.TxnSignature = hex.EncodeToString(sig)
	return nil
}

// VerifySignature checks the transaction signature and that the signing key
// belongs to the declared account.
func VerifySignature(t Transaction) error {
	common := t.GetCommon()
	if common.SigningPubKey == "" || common.TxnSignature == "" {
		return ErrMissingSignature
	}

	pubKey, err := hex.DecodeString(common.SigningPubKey)
	if err != nil {
		return fmt.Errorf("decode signing key: %w", err)
	}
	sig, err := hex.DecodeString(common.TxnSignature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	signer, err := address.FromPubKey(pubKey)
	if err != nil {
		return err
	}
	if address.Encode(signer) != common.Account {
		return fmt.Errorf("%w: signing key does not match account", ErrBadSignature)
	}

	digest, err := SigningHash(t)
	if err != nil {
		return err
	}
	return verifyDigest(digest, pubKey, sig)
}

func signDigest(digest [32]byte, pubKey, privKey []byte) ([]byte, error) {
	if len(pubKey) == 0 {
		return nil, ErrUnknownAlgorithm
	}
	switch pubKey[0] {
	case secp256k1.KeyPrefix:
		return secp256k1.Sign(digest, privKey)
	case ed25519.KeyPrefix:
		return ed25519.Sign(digest, privKey)
	default:
		return nil, ErrUnknownAlgorithm
	}
}

func verifyDigest(digest [32]byte, pubKey, sig []byte) error {
	if len(pubKey) == 0 {
		return ErrUnknownAlgorithm
	}
	var ok bool
	switch pubKey[0] {
	case secp256k1.KeyPrefix:
		ok = secp256k1.Verify(digest, pubKey, sig)
	case ed25519.KeyPrefix:
		ok = ed25519.Verify(digest, pubKey, sig)
	default:
		return ErrUnknownAlgorithm
	}
	if !ok {
		return ErrBadSignature
	}
	return nil
}

// Order is a seller's signed intent to sell a token at a fixed price.
type Order struct {
	Seller       string `json:"Seller"`
	CollectionID uint64 `json:"CollectionID"`
	TokenID      uint64 `json:"TokenID"`
	Price        uint64 `json:"Price"`
	Nonce        uint64 `json:"Nonce"`
	Expiry       uint64 `json:"Expiry"` // unix seconds
}

// Offer is a buyer's signed intent to buy a token at a fixed price, funded
// from the buyer's credit balance.
type Offer struct {
	Buyer        string `json:"Buyer"`
	CollectionID uint64 `json:"CollectionID"`
	TokenID      uint64 `json:"TokenID"`
	Price        uint64 `json:"Price"`
	Nonce        uint64 `json:"Nonce"`
	Expiry       uint64 `json:"Expiry"`
}

func intentHash(prefix []byte, principal [20]byte, fields ...uint64) [32]byte {
	buf := make([]byte, 8*len(fields))
	for i, f := range fields {
		binary.BigEndian.PutUint64(buf[8*i:], f)
	}
	return crypto.Sha512Half(prefix, principal[:], buf)
}

// Hash returns the content hash identifying the order. Identical field
// values always produce the same hash.
func (o *Order) Hash() ([32]byte, error) {
	seller, err := address.Decode(o.Seller)
	if err != nil {
		return [32]byte{}, err
	}
	return intentHash(prefixOrderIntent, seller, o.CollectionID, o.TokenID, o.Price, o.Nonce, o.Expiry), nil
}

// Hash returns the content hash identifying the offer.
func (o *Offer) Hash() ([32]byte, error) {
	buyer, err := address.Decode(o.Buyer)
	if err != nil {
		return [32]byte{}, err
	}
	return intentHash(prefixOfferIntent, buyer, o.CollectionID, o.TokenID, o.Price, o.Nonce, o.Expiry), nil
}

// SignOrder produces the intent signature a seller attaches to an order.
func SignOrder(o *Order, pubKey, privKey []byte) (string, error) {
	digest, err := o.Hash()
	if err != nil {
		return "", err
	}
	sig, err := signDigest(digest, pubKey, privKey)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}

// SignOffer produces the intent signature a buyer attaches to an offer.
func SignOffer(o *Offer, pubKey, privKey []byte) (string, error) {
	digest, err := o.Hash()
	if err != nil {
		return "", err
	}
	sig, err := signDigest(digest, pubKey, privKey)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}

// verifyIntent checks that sigHex over digest was produced by the key pair
// behind the principal address.
func verifyIntent(digest [32]byte, principal string, pubKeyHex, sigHex string) error {
	if pubKeyHex == "" || sigHex == "" {
		return ErrMissingSignature
	}
	pubKey, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return fmt.Errorf("decode intent key: %w", err)
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return fmt.Errorf("decode intent signature: %w", err)
	}

	signer, err := address.FromPubKey(pubKey)
	if err != nil {
		return err
	}
	if address.Encode(signer) != principal {
		return fmt.Errorf("%w: intent key does not match principal", ErrBadSignature)
	}
	return verifyDigest(digest, pubKey, sig)
}
