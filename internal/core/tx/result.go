package tx

import "fmt"

// Result is the outcome code of applying a transaction. Codes are grouped
// into numeric bands so the category of a failure can be recovered from the
// code alone.
type Result int

const (
	// Success.
	ResSuccess Result = 0

	// Validation failures (100-199): the transaction is intrinsically
	// ill-formed and can never succeed regardless of ledger state.
	ResMalformed             Result = 100
	ResIncorrectPrice        Result = 101
	ResExpired               Result = 102
	ResInvalidOfferOperation Result = 103
	ResBadDuration           Result = 104
	ResBadMinimumBid         Result = 105
	ResSelfTrade             Result = 106
	ResBadFeeRate            Result = 107
	ResBadRoyaltyRate        Result = 108
	ResBadAmount             Result = 109

	// Authorization failures (200-299): a signature or permission check
	// failed for the current actors.
	ResBadSignature Result = 200
	ResNotOwner     Result = 201
	ResNotApproved  Result = 202
	ResNoPermission Result = 203

	// State conflicts (300-399): the transaction is well-formed but the
	// current ledger state forbids it.
	ResNonceUsed          Result = 300
	ResHashCancelled      Result = 301
	ResAuctionFinished    Result = 302
	ResUserBidNotFound    Result = 303
	ResBadSequence        Result = 304
	ResObjectNotFound     Result = 305
	ResCollectionNotFound Result = 306
	ResMarketInactive     Result = 307
	ResNoAccount          Result = 308
	ResAuctionHasBids     Result = 309
	ResAuctionNotEnded    Result = 310
	ResAuctionEnded       Result = 311
	ResDuplicateEntry     Result = 312

	// Transfer failures (400-499): a balance, allowance or payment could
	// not cover the required amount.
	ResInsufficientPayment   Result = 400
	ResInsufficientFunds     Result = 401
	ResPaymentFailed         Result = 402
	ResInsufficientAllowance Result = 403

	// Internal failures (500+): storage or invariant errors. These should
	// never surface during normal operation.
	ResInternal Result = 500
)

// Category classifies a result code.
type Category int

const (
	CategorySuccess Category = iota
	CategoryValidation
	CategoryAuthorization
	CategoryStateConflict
	CategoryTransfer
	CategoryInternal
)

func (c Category) String() string {
	switch c {
	case CategorySuccess:
		return "Success"
	case CategoryValidation:
		return "Validation"
	case CategoryAuthorization:
		return "Authorization"
	case CategoryStateConflict:
		return "StateConflict"
	case CategoryTransfer:
		return "Transfer"
	default:
		return "Internal"
	}
}

// Category returns the band a result code belongs to.
func (r Result) Category() Category {
	switch {
	case r == ResSuccess:
		return CategorySuccess
	case r >= 100 && r < 200:
		return CategoryValidation
	case r >= 200 && r < 300:
		return CategoryAuthorization
	case r >= 300 && r < 400:
		return CategoryStateConflict
	case r >= 400 && r < 500:
		return CategoryTransfer
	default:
		return CategoryInternal
	}
}

// Success reports whether the result allows the transaction's effects to
// commit.
func (r Result) Success() bool { return r == ResSuccess }

var resultNames = map[Result]string{
	ResSuccess:               "Success",
	ResMalformed:             "Malformed",
	ResIncorrectPrice:        "IncorrectPrice",
	ResExpired:               "Expired",
	ResInvalidOfferOperation: "InvalidOfferOperation",
	ResBadDuration:           "BadDuration",
	ResBadMinimumBid:         "BadMinimumBid",
	ResSelfTrade:             "SelfTrade",
	ResBadFeeRate:            "BadFeeRate",
	ResBadRoyaltyRate:        "BadRoyaltyRate",
	ResBadAmount:             "BadAmount",
	ResBadSignature:          "BadSignature",
	ResNotOwner:              "NotOwner",
	ResNotApproved:           "NotApproved",
	ResNoPermission:          "NoPermission",
	ResNonceUsed:             "NonceAlreadyUsed",
	ResHashCancelled:         "HashCancelled",
	ResAuctionFinished:       "AuctionFinished",
	ResUserBidNotFound:       "UserBidNotFound",
	ResBadSequence:           "BadSequence",
	ResObjectNotFound:        "ObjectNotFound",
	ResCollectionNotFound:    "CollectionDoesNotExist",
	ResMarketInactive:        "MarketInactive",
	ResNoAccount:             "AccountNotFound",
	ResAuctionHasBids:        "AuctionHasBids",
	ResAuctionNotEnded:       "AuctionNotEnded",
	ResAuctionEnded:          "AuctionEnded",
	ResDuplicateEntry:        "DuplicateEntry",
	ResInsufficientPayment:   "InsufficientPayment",
	ResInsufficientFunds:     "InsufficientFunds",
	ResPaymentFailed:         "PaymentFailed",
	ResInsufficientAllowance: "InsufficientAllowance",
	ResInternal:              "InternalError",
}

var resultsByName = func() map[string]Result {
	m := make(map[string]Result, len(resultNames))
	for r, name := range resultNames {
		m[name] = r
	}
	return m
}()

// String returns the canonical name of the result code.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// ResultFromName looks up a result code by its canonical name.
func ResultFromName(name string) (Result, bool) {
	r, ok := resultsByName[name]
	return r, ok
}
