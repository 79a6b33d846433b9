package tx

import (
	"errors"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
)

var (
	errZeroPrice     = errors.New("intent price must be positive")
	errZeroExpiry    = errors.New("intent expiry must be set")
	errBadPrincipal  = errors.New("malformed intent principal address")
	errMissingIntent = errors.New("missing intent signature fields")
)

// OrderExecute settles a seller's signed sell order. The caller is the
// buyer and pays Payment from their native balance; any amount above the
// order price is left untouched.
type OrderExecute struct {
	BaseTx
	Order           Order  `json:"Order"`
	IntentPubKey    string `json:"IntentPubKey"`
	IntentSignature string `json:"IntentSignature"`
	Payment         uint64 `json:"Payment"`
}

// NewOrderExecute creates an empty OrderExecute for the given caller.
func NewOrderExecute(account string) *OrderExecute {
	return &OrderExecute{BaseTx: newBaseTx(TypeOrderExecute, account)}
}

func (t *OrderExecute) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if t.Order.Price == 0 {
		return errZeroPrice
	}
	if t.Order.Expiry == 0 {
		return errZeroExpiry
	}
	if _, err := address.Decode(t.Order.Seller); err != nil {
		return errBadPrincipal
	}
	if t.IntentPubKey == "" || t.IntentSignature == "" {
		return errMissingIntent
	}
	return nil
}

// OfferExecute settles a buyer's signed buy offer. The caller is the
// token's current owner; the price is paid from the buyer's credit balance
// within the allowance granted to the market account.
type OfferExecute struct {
	BaseTx
	Offer           Offer  `json:"Offer"`
	IntentPubKey    string `json:"IntentPubKey"`
	IntentSignature string `json:"IntentSignature"`
}

// NewOfferExecute creates an empty OfferExecute for the given caller.
func NewOfferExecute(account string) *OfferExecute {
	return &OfferExecute{BaseTx: newBaseTx(TypeOfferExecute, account)}
}

func (t *OfferExecute) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if t.Offer.Price == 0 {
		return errZeroPrice
	}
	if t.Offer.Expiry == 0 {
		return errZeroExpiry
	}
	if _, err := address.Decode(t.Offer.Buyer); err != nil {
		return errBadPrincipal
	}
	if t.IntentPubKey == "" || t.IntentSignature == "" {
		return errMissingIntent
	}
	return nil
}

// OrderCancel permanently retires an order by its content hash. Only the
// order's seller may cancel, and the intent signature must verify so a
// forged payload cannot block a real one.
type OrderCancel struct {
	BaseTx
	Order           Order  `json:"Order"`
	IntentPubKey    string `json:"IntentPubKey"`
	IntentSignature string `json:"IntentSignature"`
}

// NewOrderCancel creates an empty OrderCancel for the given caller.
func NewOrderCancel(account string) *OrderCancel {
	return &OrderCancel{BaseTx: newBaseTx(TypeOrderCancel, account)}
}

func (t *OrderCancel) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if _, err := address.Decode(t.Order.Seller); err != nil {
		return errBadPrincipal
	}
	if t.IntentPubKey == "" || t.IntentSignature == "" {
		return errMissingIntent
	}
	return nil
}

// OfferCancel permanently retires an offer by its content hash.
type OfferCancel struct {
	BaseTx
	Offer           Offer  `json:"Offer"`
	IntentPubKey    string `json:"IntentPubKey"`
	IntentSignature string `json:"IntentSignature"`
}

// NewOfferCancel creates an empty OfferCancel for the given caller.
func NewOfferCancel(account string) *OfferCancel {
	return &OfferCancel{BaseTx: newBaseTx(TypeOfferCancel, account)}
}

func (t *OfferCancel) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if _, err := address.Decode(t.Offer.Buyer); err != nil {
		return errBadPrincipal
	}
	if t.IntentPubKey == "" || t.IntentSignature == "" {
		return errMissingIntent
	}
	return nil
}
