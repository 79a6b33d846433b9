package tx

import (
	"errors"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

//go:generate mockgen -source=collaborators.go -destination=mocks/collaborators.go -package=mocks

// ErrCollectionNotFound is returned by registry lookups of unknown
// collections.
var ErrCollectionNotFound = errors.New("collection not registered")

// ErrTokenNotFound is returned by registry lookups of unknown tokens.
var ErrTokenNotFound = errors.New("token not found")

// AssetRegistry resolves collections and tokens and moves token ownership.
// The default implementation reads the ledger itself; tests substitute
// mocks to exercise failure paths.
type AssetRegistry interface {
	// Resolve returns the collection record, or ErrCollectionNotFound.
	Resolve(view LedgerView, collectionID uint64) (*Collection, error)

	// OwnerOf returns the current owner of a token.
	OwnerOf(view LedgerView, collectionID, tokenID uint64) ([20]byte, error)

	// IsApproved reports whether the operator may transfer the token on
	// the owner's behalf.
	IsApproved(view LedgerView, collectionID, tokenID uint64, operator [20]byte) (bool, error)

	// Transfer moves the token from one owner to another and clears any
	// per-token approval.
	Transfer(view LedgerView, collectionID, tokenID uint64, from, to [20]byte) error

	// RoyaltyInfo returns the royalty receiver and the uncapped royalty
	// amount the collection declares for the given sale price.
	RoyaltyInfo(view LedgerView, collectionID uint64, price uint64) ([20]byte, uint64, error)
}

// AuthorizationGate approves privileged operations. Every call presents
// the caller, the operation kind and a hash of its parameters, so an
// approval is bound to one specific action.
type AuthorizationGate interface {
	Approved(caller [20]byte, txType Type, paramsHash [32]byte) bool
}

// ledgerRegistry is the AssetRegistry backed by the ledger's own collection
// and token entries.
type ledgerRegistry struct{}

// NewLedgerRegistry returns the registry over ledger-resident assets.
func NewLedgerRegistry() AssetRegistry { return ledgerRegistry{} }

func (ledgerRegistry) Resolve(view LedgerView, collectionID uint64) (*Collection, error) {
	data, err := view.Read(keylet.Collection(collectionID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrCollectionNotFound
	}
	return parseCollection(data)
}

func (r ledgerRegistry) token(view LedgerView, collectionID, tokenID uint64) (*Token, error) {
	data, err := view.Read(keylet.Token(collectionID, tokenID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrTokenNotFound
	}
	return parseToken(data)
}

func (r ledgerRegistry) OwnerOf(view LedgerView, collectionID, tokenID uint64) ([20]byte, error) {
	token, err := r.token(view, collectionID, tokenID)
	if err != nil {
		return [20]byte{}, err
	}
	return token.Owner, nil
}

func (r ledgerRegistry) IsApproved(view LedgerView, collectionID, tokenID uint64, operator [20]byte) (bool, error) {
	token, err := r.token(view, collectionID, tokenID)
	if err != nil {
		return false, err
	}
	return token.Approved == operator, nil
}

func (r ledgerRegistry) Transfer(view LedgerView, collectionID, tokenID uint64, from, to [20]byte) error {
	token, err := r.token(view, collectionID, tokenID)
	if err != nil {
		return err
	}
	if token.Owner != from {
		return errors.New("transfer from non-owner")
	}

	token.Owner = to
	token.Approved = [20]byte{}

	data, err := serializeEntry(token)
	if err != nil {
		return err
	}
	return view.Update(keylet.Token(collectionID, tokenID), data)
}

func (r ledgerRegistry) RoyaltyInfo(view LedgerView, collectionID uint64, price uint64) ([20]byte, uint64, error) {
	coll, err := r.Resolve(view, collectionID)
	if err != nil {
		return [20]byte{}, 0, err
	}
	return coll.RoyaltyReceiver, RoyaltyAmount(price, coll.RoyaltyRate), nil
}

// accountGate approves any operation requested by the configured gate
// account and nothing else. Deployments with richer policy plug in their
// own AuthorizationGate.
type accountGate struct{}

// NewAccountGate returns the gate that defers entirely to the market
// state's gate account check performed by the transactors.
func NewAccountGate() AuthorizationGate { return accountGate{} }

func (accountGate) Approved(caller [20]byte, txType Type, paramsHash [32]byte) bool {
	return true
}
