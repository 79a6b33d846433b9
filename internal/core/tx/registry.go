package tx

import (
	"encoding/json"
	"fmt"
)

var txFactories = map[Type]func() Transaction{
	TypeOrderExecute:       func() Transaction { return NewOrderExecute("") },
	TypeOfferExecute:       func() Transaction { return NewOfferExecute("") },
	TypeOrderCancel:        func() Transaction { return NewOrderCancel("") },
	TypeOfferCancel:        func() Transaction { return NewOfferCancel("") },
	TypeAuctionCreate:      func() Transaction { return NewAuctionCreate("") },
	TypeAuctionBid:         func() Transaction { return NewAuctionBid("") },
	TypeAuctionFinalize:    func() Transaction { return NewAuctionFinalize("") },
	TypeAuctionCancel:      func() Transaction { return NewAuctionCancel("") },
	TypeAuctionBidWithdraw: func() Transaction { return NewAuctionBidWithdraw("") },
	TypeFeeSweep:           func() Transaction { return NewFeeSweep("") },
	TypeMarketConfigSet:    func() Transaction { return NewMarketConfigSet("") },
	TypeCollectionCreate:   func() Transaction { return NewCollectionCreate("") },
	TypeTokenMint:          func() Transaction { return NewTokenMint("") },
	TypeTokenApprove:       func() Transaction { return NewTokenApprove("") },
	TypeCreditDeposit:      func() Transaction { return NewCreditDeposit("") },
	TypeCreditApprove:      func() Transaction { return NewCreditApprove("") },
}

// NewTransaction returns an empty transaction of the given type.
func NewTransaction(t Type) (Transaction, bool) {
	factory, ok := txFactories[t]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// FromJSON decodes a transaction from its JSON form, dispatching on the
// TransactionType field.
func FromJSON(data []byte) (Transaction, error) {
	var peek struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}

	txType, ok := TypeFromName(peek.TransactionType)
	if !ok {
		return nil, fmt.Errorf("unknown transaction type %q", peek.TransactionType)
	}

	t, _ := NewTransaction(txType)
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", peek.TransactionType, err)
	}
	return t, nil
}
