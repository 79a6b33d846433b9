package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
	te "github.com/Gravikko/nft-marketplace-sub000/internal/testing"
)

// saleFixture is a market with one registered collection, one minted token
// approved for the market, and a funded buyer.
type saleFixture struct {
	env     *te.Env
	seller  *te.Account // also the collection creator
	buyer   *te.Account
	royalty *te.Account
	cid     uint64
	tid     uint64
}

func newSaleFixture(t *testing.T) *saleFixture {
	env := te.NewEnv(t)

	f := &saleFixture{
		env:     env,
		seller:  env.FundedAccount("seller", 1_000_000, 0),
		buyer:   env.FundedAccount("buyer", 1_000_000, 0),
		royalty: env.FundedAccount("royalty", 0, 0),
	}
	f.cid = env.CreateCollection(f.seller, f.royalty, 500, 1) // 5% royalty, floor 1
	f.tid = env.MintToken(f.seller, f.cid)
	env.ApproveMarket(f.seller, f.cid, f.tid)
	return f
}

func (f *saleFixture) orderExecute(order tx.Order, sig string, payment uint64) *tx.OrderExecute {
	exec := tx.NewOrderExecute(f.buyer.Address)
	exec.Order = order
	exec.IntentPubKey = f.seller.PubKeyHex()
	exec.IntentSignature = sig
	exec.Payment = payment
	return exec
}

func TestOrderExecuteSettlementSplit(t *testing.T) {
	f := newSaleFixture(t)
	env := f.env

	order, sig := env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)

	sellerBefore := env.Balance(f.seller)
	buyerBefore := env.Balance(f.buyer)

	// Overpay on purpose; only the price may move.
	res := env.Submit(f.buyer, f.orderExecute(order, sig, 1500))
	te.RequireSuccess(t, res)

	// Price 1000, royalty 5% = 50, fee 2.5% = 25, proceeds 925.
	require.Equal(t, sellerBefore+925, env.Balance(f.seller))
	require.Equal(t, buyerBefore-1000, env.Balance(f.buyer))
	require.Equal(t, uint64(50), env.Balance(f.royalty))
	require.Equal(t, uint64(25), env.Balance(env.FeeReceiver))
	require.Equal(t, f.buyer.ID, env.TokenOwner(f.cid, f.tid))

	ev := te.RequireEvent(t, res, tx.EventOrderExecuted)
	require.Equal(t, "500", ev.Attrs["refund"])
	te.RequireEvent(t, res, tx.EventNonceConsumed)
}

func TestOrderReplayRejected(t *testing.T) {
	f := newSaleFixture(t)
	env := f.env

	order, sig := env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)
	te.RequireSuccess(t, env.Submit(f.buyer, f.orderExecute(order, sig, 1000)))

	// Same intent again: the nonce flag blocks it before any ownership
	// check runs.
	te.RequireFail(t, env.Submit(f.buyer, f.orderExecute(order, sig, 1000)), tx.ResNonceUsed)
}

func TestOrderCancelIsTerminal(t *testing.T) {
	f := newSaleFixture(t)
	env := f.env

	order, sig := env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)

	cancel := tx.NewOrderCancel(f.seller.Address)
	cancel.Order = order
	cancel.IntentPubKey = f.seller.PubKeyHex()
	cancel.IntentSignature = sig
	res := env.Submit(f.seller, cancel)
	te.RequireSuccess(t, res)
	te.RequireEvent(t, res, tx.EventIntentCancelled)

	// Executing the cancelled intent fails forever.
	te.RequireFail(t, env.Submit(f.buyer, f.orderExecute(order, sig, 1000)), tx.ResHashCancelled)

	// Cancelling twice fails too.
	cancel2 := tx.NewOrderCancel(f.seller.Address)
	cancel2.Order = order
	cancel2.IntentPubKey = f.seller.PubKeyHex()
	cancel2.IntentSignature = sig
	te.RequireFail(t, env.Submit(f.seller, cancel2), tx.ResHashCancelled)
}

func TestOrderCancelOnlyByPrincipal(t *testing.T) {
	f := newSaleFixture(t)
	env := f.env

	order, sig := env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)

	cancel := tx.NewOrderCancel(f.buyer.Address)
	cancel.Order = order
	cancel.IntentPubKey = f.seller.PubKeyHex()
	cancel.IntentSignature = sig
	te.RequireFail(t, env.Submit(f.buyer, cancel), tx.ResNoPermission)
}

func TestOrderCancelAfterExecutionRejected(t *testing.T) {
	f := newSaleFixture(t)
	env := f.env

	order, sig := env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)
	te.RequireSuccess(t, env.Submit(f.buyer, f.orderExecute(order, sig, 1000)))

	cancel := tx.NewOrderCancel(f.seller.Address)
	cancel.Order = order
	cancel.IntentPubKey = f.seller.PubKeyHex()
	cancel.IntentSignature = sig
	te.RequireFail(t, env.Submit(f.seller, cancel), tx.ResNonceUsed)
}

func TestOrderFailureModes(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		f := newSaleFixture(t)
		order, sig := f.env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, f.env.Clock.Now()+10)
		f.env.Advance(11)
		te.RequireFail(t, f.env.Submit(f.buyer, f.orderExecute(order, sig, 1000)), tx.ResExpired)
	})

	t.Run("below floor", func(t *testing.T) {
		env := te.NewEnv(t)
		seller := env.FundedAccount("seller", 1_000_000, 0)
		buyer := env.FundedAccount("buyer", 1_000_000, 0)
		cid := env.CreateCollection(seller, seller, 0, 500) // floor 500
		tid := env.MintToken(seller, cid)
		env.ApproveMarket(seller, cid, tid)

		order, sig := env.SignedOrder(seller, cid, tid, 100, 1, env.Clock.Now()+3600)
		exec := tx.NewOrderExecute(buyer.Address)
		exec.Order = order
		exec.IntentPubKey = seller.PubKeyHex()
		exec.IntentSignature = sig
		exec.Payment = 100
		te.RequireFail(t, env.Submit(buyer, exec), tx.ResIncorrectPrice)
	})

	t.Run("unknown collection", func(t *testing.T) {
		f := newSaleFixture(t)
		order, sig := f.env.SignedOrder(f.seller, 999, f.tid, 1000, 1, f.env.Clock.Now()+3600)
		te.RequireFail(t, f.env.Submit(f.buyer, f.orderExecute(order, sig, 1000)), tx.ResCollectionNotFound)
	})

	t.Run("self trade", func(t *testing.T) {
		f := newSaleFixture(t)
		order, sig := f.env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, f.env.Clock.Now()+3600)
		exec := tx.NewOrderExecute(f.seller.Address)
		exec.Order = order
		exec.IntentPubKey = f.seller.PubKeyHex()
		exec.IntentSignature = sig
		exec.Payment = 1000
		te.RequireFail(t, f.env.Submit(f.seller, exec), tx.ResSelfTrade)
	})

	t.Run("payment below price", func(t *testing.T) {
		f := newSaleFixture(t)
		order, sig := f.env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, f.env.Clock.Now()+3600)
		te.RequireFail(t, f.env.Submit(f.buyer, f.orderExecute(order, sig, 999)), tx.ResInsufficientPayment)
	})

	t.Run("forged intent signature", func(t *testing.T) {
		f := newSaleFixture(t)
		order := tx.Order{
			Seller:       f.seller.Address,
			CollectionID: f.cid,
			TokenID:      f.tid,
			Price:        1000,
			Nonce:        1,
			Expiry:       f.env.Clock.Now() + 3600,
		}
		// The buyer signs the intent with their own key.
		sig, err := tx.SignOrder(&order, f.buyer.PubKey, f.buyer.PrivKey)
		require.NoError(t, err)

		exec := tx.NewOrderExecute(f.buyer.Address)
		exec.Order = order
		exec.IntentPubKey = f.buyer.PubKeyHex()
		exec.IntentSignature = sig
		exec.Payment = 1000
		te.RequireFail(t, f.env.Submit(f.buyer, exec), tx.ResBadSignature)
	})

	t.Run("market not approved for token", func(t *testing.T) {
		env := te.NewEnv(t)
		seller := env.FundedAccount("seller", 1_000_000, 0)
		buyer := env.FundedAccount("buyer", 1_000_000, 0)
		cid := env.CreateCollection(seller, seller, 0, 1)
		tid := env.MintToken(seller, cid)
		// No ApproveMarket.

		order, sig := env.SignedOrder(seller, cid, tid, 1000, 1, env.Clock.Now()+3600)
		exec := tx.NewOrderExecute(buyer.Address)
		exec.Order = order
		exec.IntentPubKey = seller.PubKeyHex()
		exec.IntentSignature = sig
		exec.Payment = 1000
		te.RequireFail(t, env.Submit(buyer, exec), tx.ResNotApproved)
	})

	t.Run("market inactive", func(t *testing.T) {
		f := newSaleFixture(t)
		env := f.env

		off := false
		set := tx.NewMarketConfigSet(env.Gate.Address)
		set.Active = &off
		te.RequireSuccess(t, env.Submit(env.Gate, set))

		order, sig := env.SignedOrder(f.seller, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)
		te.RequireFail(t, env.Submit(f.buyer, f.orderExecute(order, sig, 1000)), tx.ResMarketInactive)
	})
}

func TestOfferExecuteSettlesInCredit(t *testing.T) {
	f := newSaleFixture(t)
	env := f.env

	// Fund the buyer's credit balance and grant the market an allowance.
	deposit := tx.NewCreditDeposit(f.buyer.Address)
	deposit.Amount = 2000
	te.RequireSuccess(t, env.Submit(f.buyer, deposit))

	approve := tx.NewCreditApprove(f.buyer.Address)
	approve.Operator = marketAddress()
	approve.Amount = 2000
	te.RequireSuccess(t, env.Submit(f.buyer, approve))

	offer, sig := env.SignedOffer(f.buyer, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)

	exec := tx.NewOfferExecute(f.seller.Address)
	exec.Offer = offer
	exec.IntentPubKey = f.buyer.PubKeyHex()
	exec.IntentSignature = sig

	res := env.Submit(f.seller, exec)
	te.RequireSuccess(t, res)
	te.RequireEvent(t, res, tx.EventOfferExecuted)

	require.Equal(t, f.buyer.ID, env.TokenOwner(f.cid, f.tid))
	require.Equal(t, uint64(1000), env.CreditBalance(f.buyer))
	require.Equal(t, uint64(925), env.CreditBalance(f.seller))
	require.Equal(t, uint64(50), env.CreditBalance(f.royalty))
	require.Equal(t, uint64(25), env.CreditBalance(env.FeeReceiver))

	// The allowance shrank by the price.
	acct, err := tx.QueryAccount(env.View, f.buyer.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), acct.AllowanceFor(te.MarketAccount))
}

func TestOfferExecuteFailureModes(t *testing.T) {
	t.Run("insufficient credit", func(t *testing.T) {
		f := newSaleFixture(t)
		env := f.env

		offer, sig := env.SignedOffer(f.buyer, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)
		exec := tx.NewOfferExecute(f.seller.Address)
		exec.Offer = offer
		exec.IntentPubKey = f.buyer.PubKeyHex()
		exec.IntentSignature = sig
		te.RequireFail(t, env.Submit(f.seller, exec), tx.ResInsufficientPayment)
	})

	t.Run("insufficient allowance", func(t *testing.T) {
		f := newSaleFixture(t)
		env := f.env

		deposit := tx.NewCreditDeposit(f.buyer.Address)
		deposit.Amount = 2000
		te.RequireSuccess(t, env.Submit(f.buyer, deposit))
		// No allowance granted.

		offer, sig := env.SignedOffer(f.buyer, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)
		exec := tx.NewOfferExecute(f.seller.Address)
		exec.Offer = offer
		exec.IntentPubKey = f.buyer.PubKeyHex()
		exec.IntentSignature = sig
		te.RequireFail(t, env.Submit(f.seller, exec), tx.ResInsufficientAllowance)
	})

	t.Run("caller does not own token", func(t *testing.T) {
		f := newSaleFixture(t)
		env := f.env
		other := env.FundedAccount("other", 1_000_000, 0)

		offer, sig := env.SignedOffer(f.buyer, f.cid, f.tid, 1000, 1, env.Clock.Now()+3600)
		exec := tx.NewOfferExecute(other.Address)
		exec.Offer = offer
		exec.IntentPubKey = f.buyer.PubKeyHex()
		exec.IntentSignature = sig
		te.RequireFail(t, env.Submit(other, exec), tx.ResNotOwner)
	})
}

func TestOfferPrecheck(t *testing.T) {
	f := newSaleFixture(t)
	env := f.env

	// Buyer has no credit yet.
	res := tx.OfferPrecheck(env.View, te.MarketAccount, f.buyer.ID, f.cid, f.tid, 1000)
	require.Equal(t, tx.ResInsufficientPayment, res)

	deposit := tx.NewCreditDeposit(f.buyer.Address)
	deposit.Amount = 2000
	te.RequireSuccess(t, env.Submit(f.buyer, deposit))
	approve := tx.NewCreditApprove(f.buyer.Address)
	approve.Operator = marketAddress()
	approve.Amount = 2000
	te.RequireSuccess(t, env.Submit(f.buyer, approve))

	require.Equal(t, tx.ResSuccess,
		tx.OfferPrecheck(env.View, te.MarketAccount, f.buyer.ID, f.cid, f.tid, 1000))

	// The token's owner cannot be the offer's buyer.
	require.Equal(t, tx.ResInvalidOfferOperation,
		tx.OfferPrecheck(env.View, te.MarketAccount, f.seller.ID, f.cid, f.tid, 1000))

	require.Equal(t, tx.ResCollectionNotFound,
		tx.OfferPrecheck(env.View, te.MarketAccount, f.buyer.ID, 999, f.tid, 1000))
	require.Equal(t, tx.ResIncorrectPrice,
		tx.OfferPrecheck(env.View, te.MarketAccount, f.buyer.ID, f.cid, f.tid, 0))
}
