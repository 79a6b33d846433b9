// Package ed25519 wraps the standard library Ed25519 implementation with
// the key-type prefix convention used for ledger signing keys. Ed25519 does
// not support public key recovery, so signers must present their public key
// alongside the signature.
package ed25519

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
)

// KeyPrefix is the key-type byte prepended to Ed25519 public keys.
const KeyPrefix byte = 0xED

// SigLen is the length of an Ed25519 signature.
const SigLen = ed25519.SignatureSize

var (
	// ErrInvalidPrivateKey is returned for private keys of the wrong length
	ErrInvalidPrivateKey = errors.New("invalid ed25519 private key")

	// ErrInvalidPublicKey is returned for public keys of the wrong length
	ErrInvalidPublicKey = errors.New("invalid ed25519 public key")
)

// GenerateKeypair creates a fresh keypair. The returned public key carries
// the key-type prefix; the private key is the 64-byte expanded form.
func GenerateKeypair() (priv []byte, pub []byte, err error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return private, append([]byte{KeyPrefix}, public...), nil
}

// Sign signs a 32-byte digest.
func Sign(digest [32]byte, privKey []byte) ([]byte, error) {
	if len(privKey) != ed25519.PrivateKeySize {
		return nil, ErrInvalidPrivateKey
	}
	return ed25519.Sign(ed25519.PrivateKey(privKey), digest[:]), nil
}

// Verify reports whether sig is a valid signature over digest by the holder
// of the prefixed public key.
func Verify(digest [32]byte, pubKey, sig []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize+1 || pubKey[0] != KeyPrefix {
		return false
	}
	if len(sig) != SigLen {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey[1:]), digest[:], sig)
}
