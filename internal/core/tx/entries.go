package tx

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

// Ledger entries are serialized as canonical CBOR so that re-encoding an
// unchanged entry always yields identical bytes.
var cborHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	return h
}()

func serializeEntry(v interface{}) ([]byte, error) {
	var buf []byte
	if err := codec.NewEncoderBytes(&buf, cborHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("serialize ledger entry: %w", err)
	}
	return buf, nil
}

func parseEntry(data []byte, v interface{}) error {
	if err := codec.NewDecoderBytes(data, cborHandle).Decode(v); err != nil {
		return fmt.Errorf("parse ledger entry: %w", err)
	}
	return nil
}

// AccountRoot holds the per-account state: the native balance, the credit
// balance used to fund offers, spending allowances granted to operators,
// and the transaction sequence.
type AccountRoot struct {
	Account       [20]byte    `codec:"1"`
	Balance       uint64      `codec:"2"`
	CreditBalance uint64      `codec:"3"`
	Allowances    []Allowance `codec:"4"`
	Sequence      uint32      `codec:"5"`
}

// Allowance authorizes an operator to spend up to Amount of the owner's
// credit balance.
type Allowance struct {
	Operator [20]byte `codec:"1"`
	Amount   uint64   `codec:"2"`
}

// AllowanceFor returns the amount the given operator may spend.
func (a *AccountRoot) AllowanceFor(operator [20]byte) uint64 {
	for i := range a.Allowances {
		if a.Allowances[i].Operator == operator {
			return a.Allowances[i].Amount
		}
	}
	return 0
}

// SetAllowance replaces the operator's allowance. A zero amount removes the
// entry.
func (a *AccountRoot) SetAllowance(operator [20]byte, amount uint64) {
	for i := range a.Allowances {
		if a.Allowances[i].Operator == operator {
			if amount == 0 {
				last := len(a.Allowances) - 1
				a.Allowances[i] = a.Allowances[last]
				a.Allowances = a.Allowances[:last]
				return
			}
			a.Allowances[i].Amount = amount
			return
		}
	}
	if amount != 0 {
		a.Allowances = append(a.Allowances, Allowance{Operator: operator, Amount: amount})
	}
}

// Collection describes a registered token collection and its royalty terms.
type Collection struct {
	CollectionID    uint64   `codec:"1"`
	Creator         [20]byte `codec:"2"`
	RoyaltyReceiver [20]byte `codec:"3"`
	RoyaltyRate     uint32   `codec:"4"` // basis points of the sale price
	FloorPrice      uint64   `codec:"5"`
	NextTokenID     uint64   `codec:"6"`
}

// Token is a single token within a collection. Approved designates an
// operator allowed to transfer it on the owner's behalf; the zero value
// means no approval.
type Token struct {
	CollectionID uint64   `codec:"1"`
	TokenID      uint64   `codec:"2"`
	Owner        [20]byte `codec:"3"`
	Approved     [20]byte `codec:"4"`
}

// NonceFlag marks a signer-scoped intent nonce as consumed. The entry is
// write-once: it is never updated or erased.
type NonceFlag struct {
	Signer [20]byte `codec:"1"`
	Nonce  uint64   `codec:"2"`
}

// CancelFlag marks an intent hash as cancelled. Write-once, like NonceFlag.
type CancelFlag struct {
	IntentHash [32]byte `codec:"1"`
}

// BidEntry is one bidder's cumulative bid within an auction.
type BidEntry struct {
	Bidder [20]byte `codec:"1"`
	Amount uint64   `codec:"2"`
}

// Auction is a live or finished auction record. Bids keeps insertion order;
// removal swaps the removed entry with the last one.
type Auction struct {
	AuctionID    uint64     `codec:"1"`
	Seller       [20]byte   `codec:"2"`
	CollectionID uint64     `codec:"3"`
	TokenID      uint64     `codec:"4"`
	MinimumBid   uint64     `codec:"5"`
	Deadline     uint64     `codec:"6"` // unix seconds
	Finished     bool       `codec:"7"`
	Bids         []BidEntry `codec:"8"`
}

// BidIndex returns the position of the bidder's entry, or -1.
func (a *Auction) BidIndex(bidder [20]byte) int {
	for i := range a.Bids {
		if a.Bids[i].Bidder == bidder {
			return i
		}
	}
	return -1
}

// HighestBid returns the index of the winning entry: the first entry in
// insertion order whose amount equals the maximum. Returns -1 when there
// are no bids.
func (a *Auction) HighestBid() int {
	best := -1
	var bestAmount uint64
	for i := range a.Bids {
		if best == -1 || a.Bids[i].Amount > bestAmount {
			best = i
			bestAmount = a.Bids[i].Amount
		}
	}
	return best
}

// RemoveBid removes the entry at index i by swapping it with the last one.
func (a *Auction) RemoveBid(i int) {
	last := len(a.Bids) - 1
	a.Bids[i] = a.Bids[last]
	a.Bids = a.Bids[:last]
}

// MarketState is the singleton configuration and bookkeeping entry of the
// marketplace.
type MarketState struct {
	Active             bool     `codec:"1"`
	FeeRate            uint32   `codec:"2"` // basis points
	FeeReceiver        [20]byte `codec:"3"`
	GateAccount        [20]byte `codec:"4"`
	EscrowedTotal      uint64   `codec:"5"`
	NextCollectionID   uint64   `codec:"6"`
	NextAuctionID      uint64   `codec:"7"`
	MinDuration        uint64   `codec:"8"`  // seconds
	MaxDuration        uint64   `codec:"9"`  // seconds
	MinBidIncrementPct uint32   `codec:"10"` // percent over the highest bid
	ExtensionWindow    uint64   `codec:"11"` // seconds added on a new highest bid
	MaxFeeRate         uint32   `codec:"12"`
	MaxRoyaltyRate     uint32   `codec:"13"`
}

// DefaultMarketState returns the genesis market configuration with the
// given operators wired in.
func DefaultMarketState(gate, feeReceiver [20]byte) *MarketState {
	return &MarketState{
		Active:             true,
		FeeRate:            250,
		FeeReceiver:        feeReceiver,
		GateAccount:        gate,
		NextCollectionID:   1,
		NextAuctionID:      1,
		MinDuration:        60,
		MaxDuration:        30 * 24 * 3600,
		MinBidIncrementPct: 5,
		ExtensionWindow:    600,
		MaxFeeRate:         2000,
		MaxRoyaltyRate:     RoyaltyCapRate,
	}
}

func parseAccountRoot(data []byte) (*AccountRoot, error) {
	e := new(AccountRoot)
	return e, parseEntry(data, e)
}

func parseCollection(data []byte) (*Collection, error) {
	e := new(Collection)
	return e, parseEntry(data, e)
}

func parseToken(data []byte) (*Token, error) {
	e := new(Token)
	return e, parseEntry(data, e)
}

func parseAuction(data []byte) (*Auction, error) {
	e := new(Auction)
	return e, parseEntry(data, e)
}

func parseMarketState(data []byte) (*MarketState, error) {
	e := new(MarketState)
	return e, parseEntry(data, e)
}
