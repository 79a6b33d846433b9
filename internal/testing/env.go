// Package testing provides a self-contained market environment for tests:
// an in-memory ledger, a manual clock, funded accounts with real keypairs
// and a submit helper that signs and sequences transactions.
package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
	crypto "github.com/Gravikko/nft-marketplace-sub000/internal/crypto/common"
)

// MarketAccount is the custody account used by test environments.
var MarketAccount = func() [20]byte {
	var id [20]byte
	h := crypto.Sha512Half([]byte("market.custody"))
	copy(id[:], h[:20])
	return id
}()

const startTime uint64 = 1_700_000_000

// Env wires an engine, a view and a clock together for one test.
type Env struct {
	T      *testing.T
	View   *View
	Engine *tx.Engine
	Clock  *ManualClock

	Gate        *Account
	FeeReceiver *Account
}

// Option adjusts the environment during construction.
type Option func(*options)

type options struct {
	registry tx.AssetRegistry
	gate     tx.AuthorizationGate
	market   *tx.MarketState
}

// WithRegistry substitutes the asset registry collaborator.
func WithRegistry(r tx.AssetRegistry) Option {
	return func(o *options) { o.registry = r }
}

// WithGate substitutes the authorization gate collaborator.
func WithGate(g tx.AuthorizationGate) Option {
	return func(o *options) { o.gate = g }
}

// WithMarketState replaces the genesis market state. GateAccount and
// FeeReceiver are still overwritten with the env's accounts.
func WithMarketState(ms *tx.MarketState) Option {
	return func(o *options) { o.market = ms }
}

// NewEnv builds an environment with a bootstrapped market, a gate account
// and a fee receiver.
func NewEnv(t *testing.T, opts ...Option) *Env {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	env := &Env{
		T:           t,
		View:        NewView(),
		Clock:       NewManualClock(startTime),
		Gate:        NewAccount(t, "gate"),
		FeeReceiver: NewAccount(t, "fees"),
	}

	ms := o.market
	if ms == nil {
		ms = tx.DefaultMarketState(env.Gate.ID, env.FeeReceiver.ID)
	} else {
		ms.GateAccount = env.Gate.ID
		ms.FeeReceiver = env.FeeReceiver.ID
	}
	require.NoError(t, tx.Bootstrap(env.View, ms))
	require.NoError(t, tx.FundAccount(env.View, env.Gate.ID, 1_000_000, 0))

	env.Engine = tx.NewEngine(env.View, tx.EngineConfig{
		CloseTime:     env.Clock.Now(),
		MarketAccount: MarketAccount,
	}, o.registry, o.gate)
	return env
}

// FundedAccount creates an account with the given native and credit
// balances.
func (e *Env) FundedAccount(name string, balance, credit uint64) *Account {
	e.T.Helper()

	acct := NewAccount(e.T, name)
	require.NoError(e.T, tx.FundAccount(e.View, acct.ID, balance, credit))
	return acct
}

// Advance moves ledger time forward by d seconds.
func (e *Env) Advance(d uint64) {
	e.Clock.Advance(d)
	e.Engine.SetCloseTime(e.Clock.Now())
}

// Submit signs t with the account's key, assigns the next sequence and
// applies it. The account's sequence advances only when the ledger's did.
func (e *Env) Submit(acct *Account, t tx.Transaction) tx.ApplyResult {
	e.T.Helper()

	t.GetCommon().Sequence = acct.sequence + 1
	require.NoError(e.T, tx.SignTransaction(t, acct.PubKey, acct.PrivKey))

	res := e.Engine.Apply(t)
	if res.Applied {
		acct.sequence++
	}
	return res
}

// Balance returns the account's native balance.
func (e *Env) Balance(acct *Account) uint64 {
	e.T.Helper()

	root, err := tx.QueryAccount(e.View, acct.ID)
	require.NoError(e.T, err)
	if root == nil {
		return 0
	}
	return root.Balance
}

// CreditBalance returns the account's credit balance.
func (e *Env) CreditBalance(acct *Account) uint64 {
	e.T.Helper()

	root, err := tx.QueryAccount(e.View, acct.ID)
	require.NoError(e.T, err)
	if root == nil {
		return 0
	}
	return root.CreditBalance
}

// MarketState returns the current market state.
func (e *Env) MarketState() *tx.MarketState {
	e.T.Helper()

	ms, err := tx.QueryMarketState(e.View)
	require.NoError(e.T, err)
	require.NotNil(e.T, ms)
	return ms
}

// Auction returns the auction record, or nil.
func (e *Env) Auction(id uint64) *tx.Auction {
	e.T.Helper()

	a, err := tx.QueryAuction(e.View, id)
	require.NoError(e.T, err)
	return a
}

// SignedOrder builds and signs a sell order for the seller.
func (e *Env) SignedOrder(seller *Account, collectionID, tokenID, price, nonce, expiry uint64) (tx.Order, string) {
	e.T.Helper()

	order := tx.Order{
		Seller:       seller.Address,
		CollectionID: collectionID,
		TokenID:      tokenID,
		Price:        price,
		Nonce:        nonce,
		Expiry:       expiry,
	}
	sig, err := tx.SignOrder(&order, seller.PubKey, seller.PrivKey)
	require.NoError(e.T, err)
	return order, sig
}

// SignedOffer builds and signs a buy offer for the buyer.
func (e *Env) SignedOffer(buyer *Account, collectionID, tokenID, price, nonce, expiry uint64) (tx.Offer, string) {
	e.T.Helper()

	offer := tx.Offer{
		Buyer:        buyer.Address,
		CollectionID: collectionID,
		TokenID:      tokenID,
		Price:        price,
		Nonce:        nonce,
		Expiry:       expiry,
	}
	sig, err := tx.SignOffer(&offer, buyer.PubKey, buyer.PrivKey)
	require.NoError(e.T, err)
	return offer, sig
}

// CreateCollection registers a collection owned by creator and returns its
// id.
func (e *Env) CreateCollection(creator *Account, royaltyReceiver *Account, royaltyRate uint32, floorPrice uint64) uint64 {
	e.T.Helper()

	ms := e.MarketState()
	id := ms.NextCollectionID

	create := tx.NewCollectionCreate(creator.Address)
	create.RoyaltyReceiver = royaltyReceiver.Address
	create.RoyaltyRate = royaltyRate
	create.FloorPrice = floorPrice
	RequireSuccess(e.T, e.Submit(creator, create))
	return id
}

// MintToken mints the next token of the collection to its creator and
// returns the token id.
func (e *Env) MintToken(creator *Account, collectionID uint64) uint64 {
	e.T.Helper()

	coll, err := tx.QueryCollection(e.View, collectionID)
	require.NoError(e.T, err)
	require.NotNil(e.T, coll)
	tokenID := coll.NextTokenID

	mint := tx.NewTokenMint(creator.Address)
	mint.CollectionID = collectionID
	RequireSuccess(e.T, e.Submit(creator, mint))
	return tokenID
}

// ApproveMarket approves the market custody account as the token's
// operator.
func (e *Env) ApproveMarket(owner *Account, collectionID, tokenID uint64) {
	e.T.Helper()

	approve := tx.NewTokenApprove(owner.Address)
	approve.CollectionID = collectionID
	approve.TokenID = tokenID
	approve.Operator = addressOf(MarketAccount)
	RequireSuccess(e.T, e.Submit(owner, approve))
}

// TokenOwner returns the token's current owner account id.
func (e *Env) TokenOwner(collectionID, tokenID uint64) [20]byte {
	e.T.Helper()

	token, err := tx.QueryToken(e.View, collectionID, tokenID)
	require.NoError(e.T, err)
	require.NotNil(e.T, token)
	return token.Owner
}
