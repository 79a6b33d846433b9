package tx

import (
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

// Bootstrap writes the genesis market state entry. It fails if the view
// already holds one.
func Bootstrap(view LedgerView, ms *MarketState) error {
	data, err := serializeEntry(ms)
	if err != nil {
		return err
	}
	return view.Insert(keylet.MarketState(), data)
}

// Bootstrapped reports whether the view already holds a market state entry.
func Bootstrapped(view LedgerView) (bool, error) {
	return view.Exists(keylet.MarketState())
}

// FundAccount credits an account's native and credit balances directly,
// creating the entry if needed. Used at genesis and in tests; regular
// balance movement goes through transactions.
func FundAccount(view LedgerView, id [20]byte, balance, credit uint64) error {
	k := keylet.Account(id)
	data, err := view.Read(k)
	if err != nil {
		return err
	}

	if data == nil {
		fresh, err := serializeEntry(&AccountRoot{Account: id, Balance: balance, CreditBalance: credit})
		if err != nil {
			return err
		}
		return view.Insert(k, fresh)
	}

	acct, err := parseAccountRoot(data)
	if err != nil {
		return err
	}
	acct.Balance += balance
	acct.CreditBalance += credit
	updated, err := serializeEntry(acct)
	if err != nil {
		return err
	}
	return view.Update(k, updated)
}
