// Package secp256k1 provides signing, verification and public key recovery
// over the secp256k1 curve. Signatures are produced in the 65-byte compact
// recoverable form so a verifier can derive the signer's public key from
// the signature alone.
package secp256k1

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// KeyPrefix is the key-type byte prepended to secp256k1 public keys.
const KeyPrefix byte = 0x00

// CompactSigLen is the length of a compact recoverable signature.
const CompactSigLen = 65

var (
	// ErrInvalidPrivateKey is returned for private keys of the wrong length
	ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")

	// ErrInvalidSignature is returned for signatures of the wrong length or
	// signatures that do not recover to a valid public key
	ErrInvalidSignature = errors.New("invalid secp256k1 signature")
)

// GenerateKeypair creates a fresh keypair. The returned public key is
// compressed and carries the key-type prefix.
func GenerateKeypair() (priv []byte, pub []byte, err error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, err
	}
	priv = key.Serialize()
	pub = append([]byte{KeyPrefix}, key.PubKey().SerializeCompressed()...)
	return priv, pub, nil
}

// Sign produces a compact recoverable signature over a 32-byte digest.
func Sign(digest [32]byte, privKey []byte) ([]byte, error) {
	if len(privKey) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	key := secp256k1.PrivKeyFromBytes(privKey)
	return ecdsa.SignCompact(key, digest[:], true), nil
}

// RecoverPubKey recovers the prefixed compressed public key that produced
// the given compact signature over the digest.
func RecoverPubKey(digest [32]byte, sig []byte) ([]byte, error) {
	if len(sig) != CompactSigLen {
		return nil, ErrInvalidSignature
	}
	pub, _, err := ecdsa.RecoverCompact(sig, digest[:])
	if err != nil {
		return nil, ErrInvalidSignature
	}
	return append([]byte{KeyPrefix}, pub.SerializeCompressed()...), nil
}

// Verify reports whether sig is a valid signature over digest by the holder
// of the prefixed public key.
func Verify(digest [32]byte, pubKey, sig []byte) bool {
	recovered, err := RecoverPubKey(digest, sig)
	if err != nil {
		return false
	}
	if len(recovered) != len(pubKey) {
		return false
	}
	for i := range recovered {
		if recovered[i] != pubKey[i] {
			return false
		}
	}
	return true
}
