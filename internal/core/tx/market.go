package tx

import (
	"errors"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
)

var (
	errZeroAmount     = errors.New("amount must be positive")
	errBadDestination = errors.New("malformed destination address")
	errBadOperator    = errors.New("malformed operator address")
	errBadReceiver    = errors.New("malformed receiver address")
)

// MarketConfigSet updates the market configuration. Only the gate account
// may submit it, and the gate collaborator must witness the exact call.
// Nil fields keep their current value.
type MarketConfigSet struct {
	BaseTx
	Active             *bool   `json:"Active,omitempty"`
	FeeRate            *uint32 `json:"FeeRate,omitempty"`
	FeeReceiver        string  `json:"FeeReceiver,omitempty"`
	GateAccount        string  `json:"GateAccount,omitempty"`
	MinDuration        *uint64 `json:"MinDuration,omitempty"`
	MaxDuration        *uint64 `json:"MaxDuration,omitempty"`
	MinBidIncrementPct *uint32 `json:"MinBidIncrementPct,omitempty"`
	ExtensionWindow    *uint64 `json:"ExtensionWindow,omitempty"`
}

// NewMarketConfigSet creates an empty MarketConfigSet for the given caller.
func NewMarketConfigSet(account string) *MarketConfigSet {
	return &MarketConfigSet{BaseTx: newBaseTx(TypeMarketConfigSet, account)}
}

func (t *MarketConfigSet) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if t.FeeReceiver != "" {
		if _, err := address.Decode(t.FeeReceiver); err != nil {
			return errBadReceiver
		}
	}
	if t.GateAccount != "" {
		if _, err := address.Decode(t.GateAccount); err != nil {
			return errBadReceiver
		}
	}
	return nil
}

// FeeSweep pays the market account's balance in excess of the escrowed bid
// total, which is the accumulated platform fees, to a destination. Gated
// the same way as configuration changes.
type FeeSweep struct {
	BaseTx
	Destination string `json:"Destination"`
}

// NewFeeSweep creates an empty FeeSweep for the given caller.
func NewFeeSweep(account string) *FeeSweep {
	return &FeeSweep{BaseTx: newBaseTx(TypeFeeSweep, account)}
}

func (t *FeeSweep) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if _, err := address.Decode(t.Destination); err != nil {
		return errBadDestination
	}
	return nil
}

// CollectionCreate registers a new collection with its royalty terms. The
// caller becomes the creator and sole minter.
type CollectionCreate struct {
	BaseTx
	RoyaltyReceiver string `json:"RoyaltyReceiver"`
	RoyaltyRate     uint32 `json:"RoyaltyRate"` // basis points
	FloorPrice      uint64 `json:"FloorPrice"`
}

// NewCollectionCreate creates an empty CollectionCreate for the given
// caller.
func NewCollectionCreate(account string) *CollectionCreate {
	return &CollectionCreate{BaseTx: newBaseTx(TypeCollectionCreate, account)}
}

func (t *CollectionCreate) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if _, err := address.Decode(t.RoyaltyReceiver); err != nil {
		return errBadReceiver
	}
	return nil
}

// TokenMint mints the next token of a collection to the caller. Creator
// only.
type TokenMint struct {
	BaseTx
	CollectionID uint64 `json:"CollectionID"`
}

// NewTokenMint creates an empty TokenMint for the given caller.
func NewTokenMint(account string) *TokenMint {
	return &TokenMint{BaseTx: newBaseTx(TypeTokenMint, account)}
}

func (t *TokenMint) Validate() error { return t.validateCommon() }

// TokenApprove designates an operator allowed to transfer the caller's
// token. An empty operator clears the approval.
type TokenApprove struct {
	BaseTx
	CollectionID uint64 `json:"CollectionID"`
	TokenID      uint64 `json:"TokenID"`
	Operator     string `json:"Operator,omitempty"`
}

// NewTokenApprove creates an empty TokenApprove for the given caller.
func NewTokenApprove(account string) *TokenApprove {
	return &TokenApprove{BaseTx: newBaseTx(TypeTokenApprove, account)}
}

func (t *TokenApprove) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if t.Operator != "" {
		if _, err := address.Decode(t.Operator); err != nil {
			return errBadOperator
		}
	}
	return nil
}

// CreditDeposit converts part of the caller's native balance into credit
// balance, the currency offers settle in.
type CreditDeposit struct {
	BaseTx
	Amount uint64 `json:"Amount"`
}

// NewCreditDeposit creates an empty CreditDeposit for the given caller.
func NewCreditDeposit(account string) *CreditDeposit {
	return &CreditDeposit{BaseTx: newBaseTx(TypeCreditDeposit, account)}
}

func (t *CreditDeposit) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if t.Amount == 0 {
		return errZeroAmount
	}
	return nil
}

// CreditApprove grants an operator an allowance over the caller's credit
// balance. A zero amount revokes it.
type CreditApprove struct {
	BaseTx
	Operator string `json:"Operator"`
	Amount   uint64 `json:"Amount"`
}

// NewCreditApprove creates an empty CreditApprove for the given caller.
func NewCreditApprove(account string) *CreditApprove {
	return &CreditApprove{BaseTx: newBaseTx(TypeCreditApprove, account)}
}

func (t *CreditApprove) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if _, err := address.Decode(t.Operator); err != nil {
		return errBadOperator
	}
	return nil
}
