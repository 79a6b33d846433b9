package tx

import (
	"encoding/hex"
	"errors"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
)

func (t *OrderExecute) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}
	if !ms.Active {
		return ResMarketInactive
	}

	order := &t.Order
	seller, _ := address.Decode(order.Seller)

	if ctx.Config.CloseTime > order.Expiry {
		return ResExpired
	}

	coll, err := ctx.Registry.Resolve(ctx.View, order.CollectionID)
	if errors.Is(err, ErrCollectionNotFound) {
		return ResCollectionNotFound
	}
	if err != nil {
		return ResInternal
	}
	if order.Price < coll.FloorPrice {
		return ResIncorrectPrice
	}

	used, err := ctx.nonceUsed(seller, order.Nonce)
	if err != nil {
		return ResInternal
	}
	if used {
		return ResNonceUsed
	}

	hash, err := order.Hash()
	if err != nil {
		return ResMalformed
	}
	cancelled, err := ctx.hashCancelled(hash)
	if err != nil {
		return ResInternal
	}
	if cancelled {
		return ResHashCancelled
	}

	if err := verifyIntent(hash, order.Seller, t.IntentPubKey, t.IntentSignature); err != nil {
		return ResBadSignature
	}

	if ctx.Caller == seller {
		return ResSelfTrade
	}

	owner, err := ctx.Registry.OwnerOf(ctx.View, order.CollectionID, order.TokenID)
	if errors.Is(err, ErrTokenNotFound) {
		return ResObjectNotFound
	}
	if err != nil {
		return ResInternal
	}
	if owner != seller {
		return ResNotOwner
	}

	approved, err := ctx.Registry.IsApproved(ctx.View, order.CollectionID, order.TokenID, ctx.Config.MarketAccount)
	if err != nil {
		return ResInternal
	}
	if !approved {
		return ResNotApproved
	}

	if t.Payment < order.Price {
		return ResInsufficientPayment
	}
	buyer, err := ctx.loadAccount(ctx.Caller)
	if err != nil {
		return ResInternal
	}
	if buyer.Balance < t.Payment {
		return ResInsufficientFunds
	}

	// All checks passed; stage the effects. The nonce flag goes in first
	// so no path can settle the same order twice.
	if err := ctx.consumeNonce(seller, order.Nonce); err != nil {
		return ResInternal
	}
	if err := ctx.Registry.Transfer(ctx.View, order.CollectionID, order.TokenID, seller, ctx.Caller); err != nil {
		return ResInternal
	}

	royaltyReceiver, declared, err := ctx.Registry.RoyaltyInfo(ctx.View, order.CollectionID, order.Price)
	if err != nil {
		return ResInternal
	}
	s := ComputeSettlement(order.Price, declared, ms.FeeRate)

	// Only the price itself moves; any payment above it stays with the
	// buyer.
	if err := ctx.debit(ctx.Caller, order.Price); err != nil {
		return ResPaymentFailed
	}
	if err := ctx.credit(seller, s.Proceeds); err != nil {
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

	ctx.Emit(EventOrderExecuted, map[string]string{
		"orderHash":  hex.EncodeToString(hash[:]),
		"seller":     order.Seller,
		"buyer":      address.Encode(ctx.Caller),
		"collection": formatID(order.CollectionID),
		"token":      formatID(order.TokenID),
		"price":      formatAmount(order.Price),
		"proceeds":   formatAmount(s.Proceeds),
		"royalty":    formatAmount(s.Royalty),
		"fee":        formatAmount(s.Fee),
		"refund":     formatAmount(t.Payment - order.Price),
	})
	return ResSuccess
}

func (t *OfferExecute) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}
	if !ms.Active {
		return ResMarketInactive
	}

	offer := &t.Offer
	buyer, _ := address.Decode(offer.Buyer)

	if ctx.Config.CloseTime > offer.Expiry {
		return ResExpired
	}

	coll, err := ctx.Registry.Resolve(ctx.View, offer.CollectionID)
	if errors.Is(err, ErrCollectionNotFound) {
		return ResCollectionNotFound
	}
	if err != nil {
		return ResInternal
	}
	if offer.Price < coll.FloorPrice {
		return ResIncorrectPrice
	}

	used, err := ctx.nonceUsed(buyer, offer.Nonce)
	if err != nil {
		return ResInternal
	}
	if used {
		return ResNonceUsed
	}

	hash, err := offer.Hash()
	if err != nil {
		return ResMalformed
	}
	cancelled, err := ctx.hashCancelled(hash)
	if err != nil {
		return ResInternal
	}
	if cancelled {
		return ResHashCancelled
	}

	if err := verifyIntent(hash, offer.Buyer, t.IntentPubKey, t.IntentSignature); err != nil {
		return ResBadSignature
	}

	// A buyer accepting their own offer means they already own the token.
	if ctx.Caller == buyer {
		return ResInvalidOfferOperation
	}

	owner, err := ctx.Registry.OwnerOf(ctx.View, offer.CollectionID, offer.TokenID)
	if errors.Is(err, ErrTokenNotFound) {
		return ResObjectNotFound
	}
	if err != nil {
		return ResInternal
	}
	if owner != ctx.Caller {
		return ResNotOwner
	}

	approved, err := ctx.Registry.IsApproved(ctx.View, offer.CollectionID, offer.TokenID, ctx.Config.MarketAccount)
	if err != nil {
		return ResInternal
	}
	if !approved {
		return ResNotApproved
	}

	buyerAcct, err := ctx.loadAccount(buyer)
	if err != nil {
		return ResInternal
	}
	if buyerAcct == nil || buyerAcct.CreditBalance < offer.Price {
		return ResInsufficientPayment
	}
	allowance := buyerAcct.AllowanceFor(ctx.Config.MarketAccount)
	if allowance < offer.Price {
		return ResInsufficientAllowance
	}

	if err := ctx.consumeNonce(buyer, offer.Nonce); err != nil {
		return ResInternal
	}
	if err := ctx.Registry.Transfer(ctx.View, offer.CollectionID, offer.TokenID, ctx.Caller, buyer); err != nil {
		return ResInternal
	}

	royaltyReceiver, declared, err := ctx.Registry.RoyaltyInfo(ctx.View, offer.CollectionID, offer.Price)
	if err != nil {
		return ResInternal
	}
	s := ComputeSettlement(offer.Price, declared, ms.FeeRate)

	// Debit the buyer before paying anyone out, in case a payee is the
	// buyer themselves.
	buyerAcct.CreditBalance -= offer.Price
	buyerAcct.SetAllowance(ctx.Config.MarketAccount, allowance-offer.Price)
	if err := ctx.storeAccount(buyerAcct, false); err != nil {
		return ResPaymentFailed
	}
	if err := ctx.creditCredit(ctx.Caller, s.Proceeds); err != nil {
		return ResPaymentFailed
	}
	if s.Royalty > 0 {
		if err := ctx.creditCredit(royaltyReceiver, s.Royalty); err != nil {
			return ResPaymentFailed
		}
	}
	if s.Fee > 0 {
		if err := ctx.creditCredit(ms.FeeReceiver, s.Fee); err != nil {
			return ResPaymentFailed
		}
	}

	ctx.Emit(EventOfferExecuted, map[string]string{
		"offerHash":  hex.EncodeToString(hash[:]),
		"buyer":      offer.Buyer,
		"seller":     address.Encode(ctx.Caller),
		"collection": formatID(offer.CollectionID),
		"token":      formatID(offer.TokenID),
		"price":      formatAmount(offer.Price),
		"proceeds":   formatAmount(s.Proceeds),
		"royalty":    formatAmount(s.Royalty),
		"fee":        formatAmount(s.Fee),
	})
	return ResSuccess
}

// cancelIntent is the shared path of OrderCancel and OfferCancel: only the
// intent's principal may cancel, the signature must verify, and a consumed
// or already-cancelled intent cannot be cancelled again.
func cancelIntent(ctx *ApplyContext, principal string, nonce uint64, hash [32]byte, pubKey, sig string) Result {
	principalID, _ := address.Decode(principal)
	if ctx.Caller != principalID {
		return ResNoPermission
	}

	if err := verifyIntent(hash, principal, pubKey, sig); err != nil {
		return ResBadSignature
	}

	used, err := ctx.nonceUsed(principalID, nonce)
	if err != nil {
		return ResInternal
	}
	if used {
		return ResNonceUsed
	}

	cancelled, err := ctx.hashCancelled(hash)
	if err != nil {
		return ResInternal
	}
	if cancelled {
		return ResHashCancelled
	}

	if err := ctx.cancelHash(hash); err != nil {
		return ResInternal
	}
	return ResSuccess
}

func (t *OrderCancel) Apply(ctx *ApplyContext) Result {
	hash, err := t.Order.Hash()
	if err != nil {
		return ResMalformed
	}
	return cancelIntent(ctx, t.Order.Seller, t.Order.Nonce, hash, t.IntentPubKey, t.IntentSignature)
}

func (t *OfferCancel) Apply(ctx *ApplyContext) Result {
	hash, err := t.Offer.Hash()
	if err != nil {
		return ResMalformed
	}
	return cancelIntent(ctx, t.Offer.Buyer, t.Offer.Nonce, hash, t.IntentPubKey, t.IntentSignature)
}
