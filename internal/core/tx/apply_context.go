package tx

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

// ApplyContext carries everything a transactor needs while applying: the
// staged view, the resolved caller, the engine configuration and the
// metadata being accumulated.
type ApplyContext struct {
	View     LedgerView
	Caller   [20]byte
	Config   EngineConfig
	Registry AssetRegistry
	Gate     AuthorizationGate
	Metadata *Metadata
}

// Emit records an event in the transaction metadata.
func (ctx *ApplyContext) Emit(name string, attrs map[string]string) {
	ctx.Metadata.emit(name, attrs)
}

// loadAccount reads an account root, or nil when the account has no entry
// yet.
func (ctx *ApplyContext) loadAccount(id [20]byte) (*AccountRoot, error) {
	data, err := ctx.View.Read(keylet.Account(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return parseAccountRoot(data)
}

func (ctx *ApplyContext) storeAccount(acct *AccountRoot, isNew bool) error {
	data, err := serializeEntry(acct)
	if err != nil {
		return err
	}
	k := keylet.Account(acct.Account)
	if isNew {
		return ctx.View.Insert(k, data)
	}
	return ctx.View.Update(k, data)
}

// credit adds amount to an account's native balance, creating the account
// entry if needed.
func (ctx *ApplyContext) credit(id [20]byte, amount uint64) error {
	acct, err := ctx.loadAccount(id)
	if err != nil {
		return err
	}
	isNew := acct == nil
	if isNew {
		acct = &AccountRoot{Account: id}
	}
	acct.Balance += amount
	return ctx.storeAccount(acct, isNew)
}

// debit removes amount from an account's native balance. The caller has
// already checked the balance; an underflow here is an internal error.
func (ctx *ApplyContext) debit(id [20]byte, amount uint64) error {
	acct, err := ctx.loadAccount(id)
	if err != nil {
		return err
	}
	if acct == nil || acct.Balance < amount {
		return fmt.Errorf("debit %d from %s: insufficient balance", amount, address.Encode(id))
	}
	acct.Balance -= amount
	return ctx.storeAccount(acct, false)
}

// creditCredit adds amount to an account's credit balance.
func (ctx *ApplyContext) creditCredit(id [20]byte, amount uint64) error {
	acct, err := ctx.loadAccount(id)
	if err != nil {
		return err
	}
	isNew := acct == nil
	if isNew {
		acct = &AccountRoot{Account: id}
	}
	acct.CreditBalance += amount
	return ctx.storeAccount(acct, isNew)
}

// loadMarketState reads the singleton market state entry.
func (ctx *ApplyContext) loadMarketState() (*MarketState, error) {
	data, err := ctx.View.Read(keylet.MarketState())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("market state entry missing")
	}
	return parseMarketState(data)
}

func (ctx *ApplyContext) storeMarketState(ms *MarketState) error {
	data, err := serializeEntry(ms)
	if err != nil {
		return err
	}
	return ctx.View.Update(keylet.MarketState(), data)
}

// consumeNonce writes the signer-scoped nonce flag. Fails if already set.
func (ctx *ApplyContext) consumeNonce(signer [20]byte, nonce uint64) error {
	data, err := serializeEntry(&NonceFlag{Signer: signer, Nonce: nonce})
	if err != nil {
		return err
	}
	if err := ctx.View.Insert(keylet.Nonce(signer, nonce), data); err != nil {
		return err
	}
	ctx.Emit(EventNonceConsumed, map[string]string{
		"signer": address.Encode(signer),
		"nonce":  strconv.FormatUint(nonce, 10),
	})
	return nil
}

func (ctx *ApplyContext) nonceUsed(signer [20]byte, nonce uint64) (bool, error) {
	return ctx.View.Exists(keylet.Nonce(signer, nonce))
}

func (ctx *ApplyContext) hashCancelled(intentHash [32]byte) (bool, error) {
	return ctx.View.Exists(keylet.CancelFlag(intentHash))
}

func (ctx *ApplyContext) cancelHash(intentHash [32]byte) error {
	data, err := serializeEntry(&CancelFlag{IntentHash: intentHash})
	if err != nil {
		return err
	}
	if err := ctx.View.Insert(keylet.CancelFlag(intentHash), data); err != nil {
		return err
	}
	ctx.Emit(EventIntentCancelled, map[string]string{
		"intentHash": hex.EncodeToString(intentHash[:]),
	})
	return nil
}

func formatAmount(v uint64) string { return strconv.FormatUint(v, 10) }
func formatID(v uint64) string     { return strconv.FormatUint(v, 10) }
