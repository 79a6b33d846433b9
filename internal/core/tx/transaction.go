package tx

import (
	"errors"
	"fmt"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
)

// Type identifies a transaction kind.
type Type uint16

const (
	TypeOrderExecute Type = iota + 1
	TypeOfferExecute
	TypeOrderCancel
	TypeOfferCancel
	TypeAuctionCreate
	TypeAuctionBid
	TypeAuctionFinalize
	TypeAuctionCancel
	TypeAuctionBidWithdraw
	TypeFeeSweep
	TypeMarketConfigSet
	TypeCollectionCreate
	TypeTokenMint
	TypeTokenApprove
	TypeCreditDeposit
	TypeCreditApprove
)

var typeNames = map[Type]string{
	TypeOrderExecute:       "OrderExecute",
	TypeOfferExecute:       "OfferExecute",
	TypeOrderCancel:        "OrderCancel",
	TypeOfferCancel:        "OfferCancel",
	TypeAuctionCreate:      "AuctionCreate",
	TypeAuctionBid:         "AuctionBid",
	TypeAuctionFinalize:    "AuctionFinalize",
	TypeAuctionCancel:      "AuctionCancel",
	TypeAuctionBidWithdraw: "AuctionBidWithdraw",
	TypeFeeSweep:           "FeeSweep",
	TypeMarketConfigSet:    "MarketConfigSet",
	TypeCollectionCreate:   "CollectionCreate",
	TypeTokenMint:          "TokenMint",
	TypeTokenApprove:       "TokenApprove",
	TypeCreditDeposit:      "CreditDeposit",
	TypeCreditApprove:      "CreditApprove",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint16(t))
}

// TypeFromName looks up a transaction type by its canonical name.
func TypeFromName(name string) (Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}

// Common holds the fields every transaction carries. Account is the caller's
// address; Sequence must be exactly one above the account's current sequence.
type Common struct {
	Account         string `json:"Account"`
	TransactionType string `json:"TransactionType"`
	Sequence        uint32 `json:"Sequence,omitempty"`
	SigningPubKey   string `json:"SigningPubKey,omitempty"`
	TxnSignature    string `json:"TxnSignature,omitempty" codec:"-"`
}

// Transaction is the interface every transaction type implements.
type Transaction interface {
	TxType() Type
	GetCommon() *Common

	// Validate performs the static checks that need no ledger state.
	Validate() error

	// Apply executes the transaction against the staged ledger view.
	Apply(ctx *ApplyContext) Result
}

// BaseTx embeds the common fields and pins the transaction type.
type BaseTx struct {
	Common
	txType Type
}

func newBaseTx(t Type, account string) BaseTx {
	return BaseTx{
		Common: Common{Account: account, TransactionType: t.String()},
		txType: t,
	}
}

func (b *BaseTx) TxType() Type       { return b.txType }
func (b *BaseTx) GetCommon() *Common { return &b.Common }

var (
	errMissingAccount = errors.New("missing Account field")
	errBadAccount     = errors.New("malformed Account address")
	errTypeMismatch   = errors.New("TransactionType does not match payload")
)

// validateCommon checks the fields shared by all transactions.
func (b *BaseTx) validateCommon() error {
	if b.Account == "" {
		return errMissingAccount
	}
	if _, err := address.Decode(b.Account); err != nil {
		return errBadAccount
	}
	if b.TransactionType != "" && b.TransactionType != b.txType.String() {
		return errTypeMismatch
	}
	return nil
}

// AccountID decodes the caller address. validateCommon must have passed.
func (b *BaseTx) AccountID() [20]byte {
	id, _ := address.Decode(b.Account)
	return id
}
