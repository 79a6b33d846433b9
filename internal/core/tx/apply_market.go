package tx

import (
	"errors"
	"strconv"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
)

// gateCheck enforces the two-part privilege rule: the caller must be the
// configured gate account, and the gate collaborator must witness this
// exact call by its parameter hash.
func gateCheck(ctx *ApplyContext, ms *MarketState, t Transaction) Result {
	if ctx.Caller != ms.GateAccount {
		return ResNoPermission
	}
	paramsHash, err := SigningHash(t)
	if err != nil {
		return ResInternal
	}
	if !ctx.Gate.Approved(ctx.Caller, t.TxType(), paramsHash) {
		return ResNoPermission
	}
	return ResSuccess
}

func (t *MarketConfigSet) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}
	if r := gateCheck(ctx, ms, t); !r.Success() {
		return r
	}

	attrs := map[string]string{}

	if t.Active != nil {
		ms.Active = *t.Active
		attrs["active"] = strconv.FormatBool(ms.Active)
	}
	if t.FeeRate != nil {
		if *t.FeeRate > ms.MaxFeeRate {
			return ResBadFeeRate
		}
		ms.FeeRate = *t.FeeRate
		attrs["feeRate"] = strconv.FormatUint(uint64(ms.FeeRate), 10)
	}
	if t.FeeReceiver != "" {
		ms.FeeReceiver, _ = address.Decode(t.FeeReceiver)
		attrs["feeReceiver"] = t.FeeReceiver
	}
	if t.GateAccount != "" {
		ms.GateAccount, _ = address.Decode(t.GateAccount)
		attrs["gateAccount"] = t.GateAccount
	}
	if t.MinDuration != nil {
		ms.MinDuration = *t.MinDuration
		attrs["minDuration"] = formatAmount(ms.MinDuration)
	}
	if t.MaxDuration != nil {
		ms.MaxDuration = *t.MaxDuration
		attrs["maxDuration"] = formatAmount(ms.MaxDuration)
	}
	if ms.MinDuration > ms.MaxDuration {
		return ResBadDuration
	}
	if t.MinBidIncrementPct != nil {
		ms.MinBidIncrementPct = *t.MinBidIncrementPct
		attrs["minBidIncrementPct"] = strconv.FormatUint(uint64(ms.MinBidIncrementPct), 10)
	}
	if t.ExtensionWindow != nil {
		ms.ExtensionWindow = *t.ExtensionWindow
		attrs["extensionWindow"] = formatAmount(ms.ExtensionWindow)
	}

	if err := ctx.storeMarketState(ms); err != nil {
		return ResInternal
	}
	ctx.Emit(EventConfigUpdated, attrs)
	return ResSuccess
}

func (t *FeeSweep) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}
	if r := gateCheck(ctx, ms, t); !r.Success() {
		return r
	}

	market, err := ctx.loadAccount(ctx.Config.MarketAccount)
	if err != nil {
		return ResInternal
	}
	var balance uint64
	if market != nil {
		balance = market.Balance
	}
	if balance < ms.EscrowedTotal {
		return ResInternal
	}
	excess := balance - ms.EscrowedTotal
	if excess == 0 {
		return ResPaymentFailed
	}

	destination, _ := address.Decode(t.Destination)
	if err := ctx.debit(ctx.Config.MarketAccount, excess); err != nil {
		return ResPaymentFailed
	}
	if err := ctx.credit(destination, excess); err != nil {
		return ResPaymentFailed
	}

	ctx.Emit(EventFeesWithdrawn, map[string]string{
		"destination": t.Destination,
		"amount":      formatAmount(excess),
	})
	return ResSuccess
}

func (t *CollectionCreate) Apply(ctx *ApplyContext) Result {
	ms, err := ctx.loadMarketState()
	if err != nil {
		return ResInternal
	}
	if !ms.Active {
		return ResMarketInactive
	}
	if t.RoyaltyRate > ms.MaxRoyaltyRate {
		return ResBadRoyaltyRate
	}

	id := ms.NextCollectionID
	ms.NextCollectionID++
	if err := ctx.storeMarketState(ms); err != nil {
		return ResInternal
	}

	receiver, _ := address.Decode(t.RoyaltyReceiver)
	coll := &Collection{
		CollectionID:    id,
		Creator:         ctx.Caller,
		RoyaltyReceiver: receiver,
		RoyaltyRate:     t.RoyaltyRate,
		FloorPrice:      t.FloorPrice,
		NextTokenID:     1,
	}
	data, err := serializeEntry(coll)
	if err != nil {
		return ResInternal
	}
	if err := ctx.View.Insert(keylet.Collection(id), data); err != nil {
		return ResInternal
	}

	ctx.Emit(EventCollectionCreated, map[string]string{
		"collection":  formatID(id),
		"creator":     address.Encode(ctx.Caller),
		"royaltyRate": strconv.FormatUint(uint64(t.RoyaltyRate), 10),
		"floorPrice":  formatAmount(t.FloorPrice),
	})
	return ResSuccess
}

func (t *TokenMint) Apply(ctx *ApplyContext) Result {
	coll, err := ctx.Registry.Resolve(ctx.View, t.CollectionID)
	if errors.Is(err, ErrCollectionNotFound) {
		return ResCollectionNotFound
	}
	if err != nil {
		return ResInternal
	}
	if ctx.Caller != coll.Creator {
		return ResNoPermission
	}

	tokenID := coll.NextTokenID
	coll.NextTokenID++
	collData, err := serializeEntry(coll)
	if err != nil {
		return ResInternal
	}
	if err := ctx.View.Update(keylet.Collection(t.CollectionID), collData); err != nil {
		return ResInternal
	}

	token := &Token{
		CollectionID: t.CollectionID,
		TokenID:      tokenID,
		Owner:        ctx.Caller,
	}
	data, err := serializeEntry(token)
	if err != nil {
		return ResInternal
	}
	if err := ctx.View.Insert(keylet.Token(t.CollectionID, tokenID), data); err != nil {
		return ResInternal
	}

	ctx.Emit(EventTokenMinted, map[string]string{
		"collection": formatID(t.CollectionID),
		"token":      formatID(tokenID),
		"owner":      address.Encode(ctx.Caller),
	})
	return ResSuccess
}

func (t *TokenApprove) Apply(ctx *ApplyContext) Result {
	data, err := ctx.View.Read(keylet.Token(t.CollectionID, t.TokenID))
	if err != nil {
		return ResInternal
	}
	if data == nil {
		return ResObjectNotFound
	}
	token, err := parseToken(data)
	if err != nil {
		return ResInternal
	}
	if token.Owner != ctx.Caller {
		return ResNotOwner
	}

	if t.Operator == "" {
		token.Approved = [20]byte{}
	} else {
		token.Approved, _ = address.Decode(t.Operator)
	}

	updated, err := serializeEntry(token)
	if err != nil {
		return ResInternal
	}
	if err := ctx.View.Update(keylet.Token(t.CollectionID, t.TokenID), updated); err != nil {
		return ResInternal
	}

	ctx.Emit(EventTokenApproved, map[string]string{
		"collection": formatID(t.CollectionID),
		"token":      formatID(t.TokenID),
		"operator":   t.Operator,
	})
	return ResSuccess
}

func (t *CreditDeposit) Apply(ctx *ApplyContext) Result {
	acct, err := ctx.loadAccount(ctx.Caller)
	if err != nil {
		return ResInternal
	}
	if acct.Balance < t.Amount {
		return ResInsufficientFunds
	}

	acct.Balance -= t.Amount
	acct.CreditBalance += t.Amount
	if err := ctx.storeAccount(acct, false); err != nil {
		return ResInternal
	}

	ctx.Emit(EventCreditDeposited, map[string]string{
		"account": address.Encode(ctx.Caller),
		"amount":  formatAmount(t.Amount),
	})
	return ResSuccess
}

func (t *CreditApprove) Apply(ctx *ApplyContext) Result {
	acct, err := ctx.loadAccount(ctx.Caller)
	if err != nil {
		return ResInternal
	}

	operator, _ := address.Decode(t.Operator)
	acct.SetAllowance(operator, t.Amount)
	if err := ctx.storeAccount(acct, false); err != nil {
		return ResInternal
	}

	ctx.Emit(EventCreditApproved, map[string]string{
		"account":  address.Encode(ctx.Caller),
		"operator": t.Operator,
		"amount":   formatAmount(t.Amount),
	})
	return ResSuccess
}
