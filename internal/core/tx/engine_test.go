package tx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

func seedMarketState(t *testing.T, v *memView, ms *MarketState) {
	t.Helper()
	data, err := serializeEntry(ms)
	require.NoError(t, err)
	require.NoError(t, v.Insert(keylet.MarketState(), data))
}

func seedAccount(t *testing.T, v *memView, id [20]byte, balance uint64) {
	t.Helper()
	data, err := serializeEntry(&AccountRoot{Account: id, Balance: balance})
	require.NoError(t, err)
	require.NoError(t, v.Insert(keylet.Account(id), data))
}

func newTestEngine(t *testing.T, v *memView) *Engine {
	t.Helper()
	return NewEngine(v, EngineConfig{
		CloseTime:                 1000,
		MarketAccount:             [20]byte{0xFF},
		SkipSignatureVerification: true,
	}, nil, nil)
}

func TestEngineSequenceEnforcement(t *testing.T) {
	v := newMemView()
	gate := [20]byte{1}
	caller := [20]byte{2}
	seedMarketState(t, v, DefaultMarketState(gate, gate))
	seedAccount(t, v, caller, 1000)

	engine := newTestEngine(t, v)

	deposit := NewCreditDeposit(address.Encode(caller))
	deposit.Amount = 100

	deposit.Sequence = 2
	res := engine.Apply(deposit)
	require.Equal(t, ResBadSequence, res.Result)
	require.False(t, res.Applied)

	deposit.Sequence = 1
	res = engine.Apply(deposit)
	require.Equal(t, ResSuccess, res.Result)
	require.True(t, res.Applied)

	// Replaying the same sequence must fail.
	res = engine.Apply(deposit)
	require.Equal(t, ResBadSequence, res.Result)

	acct, err := QueryAccount(v, caller)
	require.NoError(t, err)
	require.Equal(t, uint32(1), acct.Sequence)
	require.Equal(t, uint64(900), acct.Balance)
	require.Equal(t, uint64(100), acct.CreditBalance)
}

func TestEngineUnknownAccount(t *testing.T) {
	v := newMemView()
	seedMarketState(t, v, DefaultMarketState([20]byte{1}, [20]byte{1}))

	engine := newTestEngine(t, v)
	deposit := NewCreditDeposit(address.Encode([20]byte{9}))
	deposit.Amount = 1
	deposit.Sequence = 1

	res := engine.Apply(deposit)
	require.Equal(t, ResNoAccount, res.Result)
}

func TestEngineMalformedTransaction(t *testing.T) {
	v := newMemView()
	engine := newTestEngine(t, v)

	deposit := NewCreditDeposit("not-an-address")
	deposit.Amount = 1
	res := engine.Apply(deposit)
	require.Equal(t, ResMalformed, res.Result)

	deposit = NewCreditDeposit(address.Encode([20]byte{1}))
	deposit.Amount = 0 // zero amount is malformed
	res = engine.Apply(deposit)
	require.Equal(t, ResMalformed, res.Result)
}

func TestEngineFailureLeavesNoTrace(t *testing.T) {
	v := newMemView()
	caller := [20]byte{2}
	seedMarketState(t, v, DefaultMarketState([20]byte{1}, [20]byte{1}))
	seedAccount(t, v, caller, 50)

	engine := newTestEngine(t, v)

	deposit := NewCreditDeposit(address.Encode(caller))
	deposit.Amount = 100 // more than the balance
	deposit.Sequence = 1

	res := engine.Apply(deposit)
	require.Equal(t, ResInsufficientFunds, res.Result)
	require.False(t, res.Applied)

	// Neither the balance nor the sequence moved.
	acct, err := QueryAccount(v, caller)
	require.NoError(t, err)
	require.Equal(t, uint64(50), acct.Balance)
	require.Equal(t, uint32(0), acct.Sequence)
}

func TestEngineRejectsUnsignedWhenVerifying(t *testing.T) {
	v := newMemView()
	caller := [20]byte{2}
	seedMarketState(t, v, DefaultMarketState([20]byte{1}, [20]byte{1}))
	seedAccount(t, v, caller, 1000)

	engine := NewEngine(v, EngineConfig{CloseTime: 1000}, nil, nil)

	deposit := NewCreditDeposit(address.Encode(caller))
	deposit.Amount = 1
	deposit.Sequence = 1

	res := engine.Apply(deposit)
	require.Equal(t, ResBadSignature, res.Result)
}
