package tx

import "errors"

var (
	errZeroDuration = errors.New("auction duration must be positive")
	errZeroBid      = errors.New("bid payment must be positive")
	errZeroMinimum  = errors.New("auction minimum bid must be positive")
)

// AuctionCreate escrows the caller's token with the market and opens a
// time-boxed auction for it.
type AuctionCreate struct {
	BaseTx
	CollectionID uint64 `json:"CollectionID"`
	TokenID      uint64 `json:"TokenID"`
	Duration     uint64 `json:"Duration"` // seconds
	MinimumBid   uint64 `json:"MinimumBid"`
}

// NewAuctionCreate creates an empty AuctionCreate for the given caller.
func NewAuctionCreate(account string) *AuctionCreate {
	return &AuctionCreate{BaseTx: newBaseTx(TypeAuctionCreate, account)}
}

func (t *AuctionCreate) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if t.Duration == 0 {
		return errZeroDuration
	}
	if t.MinimumBid == 0 {
		return errZeroMinimum
	}
	return nil
}

// AuctionBid escrows Payment with the market and adds it to the caller's
// cumulative bid on the auction.
type AuctionBid struct {
	BaseTx
	AuctionID uint64 `json:"AuctionID"`
	Payment   uint64 `json:"Payment"`
}

// NewAuctionBid creates an empty AuctionBid for the given caller.
func NewAuctionBid(account string) *AuctionBid {
	return &AuctionBid{BaseTx: newBaseTx(TypeAuctionBid, account)}
}

func (t *AuctionBid) Validate() error {
	if err := t.validateCommon(); err != nil {
		return err
	}
	if t.Payment == 0 {
		return errZeroBid
	}
	return nil
}

// AuctionFinalize settles an auction whose deadline has passed. Anyone may
// call it; with bids the token goes to the winner and the winning amount is
// split between seller, royalty receiver and fee receiver, otherwise the
// token returns to the seller.
type AuctionFinalize struct {
	BaseTx
	AuctionID uint64 `json:"AuctionID"`
}

// NewAuctionFinalize creates an empty AuctionFinalize for the given caller.
func NewAuctionFinalize(account string) *AuctionFinalize {
	return &AuctionFinalize{BaseTx: newBaseTx(TypeAuctionFinalize, account)}
}

func (t *AuctionFinalize) Validate() error { return t.validateCommon() }

// AuctionCancel lets the seller withdraw a still-running auction that has
// attracted no bids.
type AuctionCancel struct {
	BaseTx
	AuctionID uint64 `json:"AuctionID"`
}

// NewAuctionCancel creates an empty AuctionCancel for the given caller.
func NewAuctionCancel(account string) *AuctionCancel {
	return &AuctionCancel{BaseTx: newBaseTx(TypeAuctionCancel, account)}
}

func (t *AuctionCancel) Validate() error { return t.validateCommon() }

// AuctionBidWithdraw refunds the caller's losing bid after an auction has
// been finalized. Each bidder can withdraw exactly once; the record is
// erased when the last bid leaves.
type AuctionBidWithdraw struct {
	BaseTx
	AuctionID uint64 `json:"AuctionID"`
}

// NewAuctionBidWithdraw creates an empty AuctionBidWithdraw for the given
// caller.
func NewAuctionBidWithdraw(account string) *AuctionBidWithdraw {
	return &AuctionBidWithdraw{BaseTx: newBaseTx(TypeAuctionBidWithdraw, account)}
}

func (t *AuctionBidWithdraw) Validate() error { return t.validateCommon() }
