package tx

import (
	"errors"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

func (ctx *ApplyContext) loadAuction(id uint64) (*Auction, error) {
	data, err := ctx.View.Read(keylet.Auction(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return parseAuction(data)
}

func (ctx *ApplyContext) storeAuction(a *Auction, isNew bool) error {
	data, err := serializeEntry(a)
	if err != nil {
		return err
	}
	k := keylet.Auction(a.AuctionID)
	if isNew {
		return ctx.View.Insert(k, data)
	}
	return ctx.View.Update(k, data)
}

// bidIncrement computes floor(highest * pct / 100) without overflow.
func bidIncrement(highest uint64, pct uint32) uint64 {
	q := highest / 100
	r := highest % 100
	return q*uint64(pct) + r*uint64(pct)/100
}

func (t *AuctionCreate) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}
	if !ms.Active {
		return ResMarketInactive
	}

	if t.Duration < ms.MinDuration || t.Duration > ms.MaxDuration {
		return ResBadDuration
	}

	coll, err := ctx.Registry.Resolve(ctx.View, t.CollectionID)
	if errors.Is(err, ErrCollectionNotFound) {
		return ResCollectionNotFound
	}
	if err != nil {
		return ResInternal
	}
	if t.MinimumBid < coll.FloorPrice {
		return ResBadMinimumBid
	}

	owner, err := ctx.Registry.OwnerOf(ctx.View, t.CollectionID, t.TokenID)
	if errors.Is(err, ErrTokenNotFound) {
		return ResObjectNotFound
	}
	if err != nil {
		return ResInternal
	}
	if owner != ctx.Caller {
		return ResNotOwner
	}

	approved, err := ctx.Registry.IsApproved(ctx.View, t.CollectionID, t.TokenID, ctx.Config.MarketAccount)
	if err != nil {
		return ResInternal
	}
	if !approved {
		return ResNotApproved
	}

	// Escrow the token with the market for the auction's lifetime.
	if err := ctx.Registry.Transfer(ctx.View, t.CollectionID, t.TokenID, ctx.Caller, ctx.Config.MarketAccount); err != nil {
		return ResInternal
	}

	id := ms.NextAuctionID
	ms.NextAuctionID++
	if err := ctx.storeMarketState(ms); err != nil {
		return ResInternal
	}

	auction := &Auction{
		AuctionID:    id,
		Seller:       ctx.Caller,
		CollectionID: t.CollectionID,
		TokenID:      t.TokenID,
		MinimumBid:   t.MinimumBid,
		Deadline:     ctx.Config.CloseTime + t.Duration,
	}
	if err := ctx.storeAuction(auction, true); err != nil {
		return ResInternal
	}

	ctx.Emit(EventAuctionCreated, map[string]string{
		"auction":    formatID(id),
		"seller":     address.Encode(ctx.Caller),
		"collection": formatID(t.CollectionID),
		"token":      formatID(t.TokenID),
		"minimumBid": formatAmount(t.MinimumBid),
		"deadline":   formatAmount(auction.Deadline),
	})
	return ResSuccess
}

func (t *AuctionBid) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}
	if !ms.Active {
		return ResMarketInactive
	}

	auction, err := ctx.loadAuction(t.AuctionID)
	if err != nil {
		return ResInternal
	}
	if auction == nil {
		return ResObjectNotFound
	}
	if auction.Finished {
		return ResAuctionFinished
	}
	if ctx.Config.CloseTime >= auction.Deadline {
		return ResAuctionEnded
	}
	if ctx.Caller == auction.Seller {
		return ResSelfTrade
	}

	var prior uint64
	idx := auction.BidIndex(ctx.Caller)
	if idx >= 0 {
		prior = auction.Bids[idx].Amount
	}

	// The first bid must reach the auction floor. Later bids must reach
	// the rising threshold, net of the caller's own prior contribution.
	required := auction.MinimumBid
	if hi := auction.HighestBid(); hi >= 0 {
		highest := auction.Bids[hi].Amount
		threshold := highest + bidIncrement(highest, ms.MinBidIncrementPct)
		if threshold <= prior {
			return ResInternal
		}
		required = threshold - prior
	}
	if t.Payment < required {
		return ResInsufficientPayment
	}

	bidder, err := ctx.loadAccount(ctx.Caller)
	if err != nil {
		return ResInternal
	}
	if bidder.Balance < t.Payment {
		return ResInsufficientFunds
	}

	if err := ctx.debit(ctx.Caller, t.Payment); err != nil {
		return ResInternal
	}
	if err := ctx.credit(ctx.Config.MarketAccount, t.Payment); err != nil {
		return ResInternal
	}
	ms.EscrowedTotal += t.Payment
	if err := ctx.storeMarketState(ms); err != nil {
		return ResInternal
	}

	newTotal := prior + t.Payment
	if idx >= 0 {
		auction.Bids[idx].Amount = newTotal
	} else {
		auction.Bids = append(auction.Bids, BidEntry{Bidder: ctx.Caller, Amount: newTotal})
	}

	// The deadline extends only when the caller's aggregate is strictly
	// above every other bid. An equal amount never displaces the earlier
	// entry and never extends.
	strictMax := true
	for i := range auction.Bids {
		if auction.Bids[i].Bidder != ctx.Caller && auction.Bids[i].Amount >= newTotal {
			strictMax = false
			break
		}
	}
	extended := false
	if strictMax {
		auction.Deadline += ms.ExtensionWindow
		extended = true
	}

	if err := ctx.storeAuction(auction, false); err != nil {
		return ResInternal
	}

	attrs := map[string]string{
		"auction":  formatID(t.AuctionID),
		"bidder":   address.Encode(ctx.Caller),
		"payment":  formatAmount(t.Payment),
		"total":    formatAmount(newTotal),
		"deadline": formatAmount(auction.Deadline),
	}
	if extended {
		attrs["extended"] = "true"
	}
	ctx.Emit(EventBidPlaced, attrs)
	return ResSuccess
}

func (t *AuctionFinalize) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}

	auction, err := ctx.loadAuction(t.AuctionID)
	if err != nil {
		return ResInternal
	}
	if auction == nil {
		return ResObjectNotFound
	}
	if auction.Finished {
		return ResAuctionFinished
	}
	if ctx.Config.CloseTime < auction.Deadline {
		return ResAuctionNotEnded
	}

	attrs := map[string]string{
		"auction": formatID(t.AuctionID),
		"seller":  address.Encode(auction.Seller),
	}

	if len(auction.Bids) == 0 {
		if err := ctx.Registry.Transfer(ctx.View, auction.CollectionID, auction.TokenID, ctx.Config.MarketAccount, auction.Seller); err != nil {
			return ResInternal
		}
		if err := ctx.View.Erase(keylet.Auction(t.AuctionID)); err != nil {
			return ResInternal
		}
		ctx.Emit(EventAuctionEnded, attrs)
		return ResSuccess
	}

	win := auction.HighestBid()
	winner := auction.Bids[win].Bidder
	amount := auction.Bids[win].Amount

	// The winning entry leaves the bid list before any funds move, so the
	// winner can never also withdraw it as a losing bid.
	auction.RemoveBid(win)
	auction.Finished = true

	if err := ctx.Registry.Transfer(ctx.View, auction.CollectionID, auction.TokenID, ctx.Config.MarketAccount, winner); err != nil {
		return ResInternal
	}

	royaltyReceiver, declared, err := ctx.Registry.RoyaltyInfo(ctx.View, auction.CollectionID, amount)
	if err != nil {
		return ResInternal
	}
	s := ComputeSettlement(amount, declared, ms.FeeRate)

	if err := ctx.debit(ctx.Config.MarketAccount, amount); err != nil {
		return ResPaymentFailed
	}
	if err := ctx.credit(auction.Seller, s.Proceeds); err != nil {
		return ResPaymentFailed
	}
	if s.Royalty > 0 {
		if err := ctx.credit(royaltyReceiver, s.Royalty); err != nil {
			return ResPaymentFailed
		}
	}
	if s.Fee > 0 {
		if err := ctx.credit(ms.FeeReceiver, s.Fee); err != nil {
			return ResPaymentFailed
		}
	}

	ms.EscrowedTotal -= amount
	if err := ctx.storeMarketState(ms); err != nil {
		return ResInternal
	}

	// Losing bids stay on the finished record until their owners withdraw
	// them; the record goes away with the last one.
	if len(auction.Bids) == 0 {
		if err := ctx.View.Erase(keylet.Auction(t.AuctionID)); err != nil {
			return ResInternal
		}
	} else {
		if err := ctx.storeAuction(auction, false); err != nil {
			return ResInternal
		}
	}

	attrs["winner"] = address.Encode(winner)
	attrs["amount"] = formatAmount(amount)
	attrs["proceeds"] = formatAmount(s.Proceeds)
	attrs["royalty"] = formatAmount(s.Royalty)
	attrs["fee"] = formatAmount(s.Fee)
	ctx.Emit(EventAuctionEnded, attrs)
	return ResSuccess
}

func (t *AuctionCancel) Apply(ctx *ApplyContext) Result {
	auction, err := ctx.loadAuction(t.AuctionID)
	if err != nil {
		return ResInternal
	}
	if auction == nil {
		return ResObjectNotFound
	}
	if auction.Finished {
		return ResAuctionFinished
	}
	if ctx.Caller != auction.Seller {
		return ResNoPermission
	}
	if len(auction.Bids) > 0 {
		return ResAuctionHasBids
	}
	if ctx.Config.CloseTime >= auction.Deadline {
		return ResAuctionEnded
	}

	if err := ctx.Registry.Transfer(ctx.View, auction.CollectionID, auction.TokenID, ctx.Config.MarketAccount, auction.Seller); err != nil {
		return ResInternal
	}
	if err := ctx.View.Erase(keylet.Auction(t.AuctionID)); err != nil {
		return ResInternal
	}

	ctx.Emit(EventAuctionCancelled, map[string]string{
		"auction": formatID(t.AuctionID),
		"seller":  address.Encode(ctx.Caller),
	})
	return ResSuccess
}

func (t *AuctionBidWithdraw) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}

	auction, err := ctx.loadAuction(t.AuctionID)
	if err != nil {
		return ResInternal
	}
	// A missing record means every bid is already gone, including any the
	// caller once had.
	if auction == nil {
		return ResUserBidNotFound
	}
	if !auction.Finished {
		return ResAuctionNotEnded
	}

	idx := auction.BidIndex(ctx.Caller)
	if idx < 0 {
		return ResUserBidNotFound
	}
	amount := auction.Bids[idx].Amount

	// Remove the entry before paying out, so a repeated withdraw finds
	// nothing.
	auction.RemoveBid(idx)
	if len(auction.Bids) == 0 {
		if err := ctx.View.Erase(keylet.Auction(t.AuctionID)); err != nil {
			return ResInternal
		}
	} else {
		if err := ctx.storeAuction(auction, false); err != nil {
			return ResInternal
		}
	}

	if err := ctx.debit(ctx.Config.MarketAccount, amount); err != nil {
		return ResPaymentFailed
	}
	if err := ctx.credit(ctx.Caller, amount); err != nil {
		return ResPaymentFailed
	}
	ms.EscrowedTotal -= amount
	if err := ctx.storeMarketState(ms); err != nil {
		return ResInternal
	}

	ctx.Emit(EventBidWithdrawn, map[string]string{
		"auction": formatID(t.AuctionID),
		"bidder":  address.Encode(ctx.Caller),
		"amount":  formatAmount(amount),
	})
	return ResSuccess
}
