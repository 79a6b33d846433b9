package tx

import (
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

// Read-only state queries used by the RPC layer. All of them run against a
// LedgerView and never mutate it.

// QueryMarketState returns the market configuration and bookkeeping entry.
func QueryMarketState(view LedgerView) (*MarketState, error) {
	data, err := view.Read(keylet.MarketState())
	if err != nil || data == nil {
		return nil, err
	}
	return parseMarketState(data)
}

// QueryAccount returns an account root, or nil if the account has no entry.
func QueryAccount(view LedgerView, id [20]byte) (*AccountRoot, error) {
	data, err := view.Read(keylet.Account(id))
	if err != nil || data == nil {
		return nil, err
	}
	return parseAccountRoot(data)
}

// QueryCollection returns a collection record, or nil.
func QueryCollection(view LedgerView, collectionID uint64) (*Collection, error) {
	data, err := view.Read(keylet.Collection(collectionID))
	if err != nil || data == nil {
		return nil, err
	}
	return parseCollection(data)
}

// QueryToken returns a token record, or nil.
func QueryToken(view LedgerView, collectionID, tokenID uint64) (*Token, error) {
	data, err := view.Read(keylet.Token(collectionID, tokenID))
	if err != nil || data == nil {
		return nil, err
	}
	return parseToken(data)
}

// QueryNonceUsed reports whether a signer-scoped nonce has been consumed.
func QueryNonceUsed(view LedgerView, signer [20]byte, nonce uint64) (bool, error) {
	return view.Exists(keylet.Nonce(signer, nonce))
}

// QueryHashCancelled reports whether an intent hash has been cancelled.
func QueryHashCancelled(view LedgerView, intentHash [32]byte) (bool, error) {
	return view.Exists(keylet.CancelFlag(intentHash))
}

// QueryAuction returns an auction record, or nil.
func QueryAuction(view LedgerView, auctionID uint64) (*Auction, error) {
	data, err := view.Read(keylet.Auction(auctionID))
	if err != nil || data == nil {
		return nil, err
	}
	return parseAuction(data)
}

// QueryBidAmount returns a bidder's cumulative bid on an auction.
func QueryBidAmount(view LedgerView, auctionID uint64, bidder [20]byte) (uint64, error) {
	auction, err := QueryAuction(view, auctionID)
	if err != nil || auction == nil {
		return 0, err
	}
	if idx := auction.BidIndex(bidder); idx >= 0 {
		return auction.Bids[idx].Amount, nil
	}
	return 0, nil
}

// NextMinimumBid returns the total a new highest bid must reach on the
// auction.
func NextMinimumBid(auction *Auction, ms *MarketState) uint64 {
	hi := auction.HighestBid()
	if hi < 0 {
		return auction.MinimumBid
	}
	highest := auction.Bids[hi].Amount
	return highest + bidIncrement(highest, ms.MinBidIncrementPct)
}

// OfferPrecheck reports whether an offer with the given terms could settle
// right now: the collection must exist, the price must meet the floor, the
// buyer must not already own the token, and the buyer's credit and
// allowance must cover the price.
func OfferPrecheck(view LedgerView, marketAccount, buyer [20]byte, collectionID, tokenID, price uint64) Result {
	coll, err := QueryCollection(view, collectionID)
	if err != nil {
		return ResInternal
	}
	if coll == nil {
		return ResCollectionNotFound
	}
	if price < coll.FloorPrice {
		return ResIncorrectPrice
	}

	token, err := QueryToken(view, collectionID, tokenID)
	if err != nil {
		return ResInternal
	}
	if token == nil {
		return ResObjectNotFound
	}
	if token.Owner == buyer {
		return ResInvalidOfferOperation
	}

	acct, err := QueryAccount(view, buyer)
	if err != nil {
		return ResInternal
	}
	if acct == nil || acct.CreditBalance < price || acct.AllowanceFor(marketAccount) < price {
		return ResInsufficientPayment
	}
	return ResSuccess
}
