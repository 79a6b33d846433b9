package tx

// Rates are expressed in basis points of the sale price.
const (
	RateDivisor = 10000

	// RoyaltyCapRate caps the royalty actually paid out at 10% of the
	// sale price, whatever rate the collection declares.
	RoyaltyCapRate = 1000
)

// Settlement is the three-way split of a sale price. Proceeds, Royalty and
// Fee always sum to the price.
type Settlement struct {
	Proceeds uint64
	Royalty  uint64
	Fee      uint64
}

// mulDivRate computes floor(amount * rate / RateDivisor) without overflow.
// Splitting amount into quotient and remainder keeps every intermediate
// product within uint64 range and preserves the truncated result exactly.
func mulDivRate(amount uint64, rate uint32) uint64 {
	q := amount / RateDivisor
	r := amount % RateDivisor
	return q*uint64(rate) + r*uint64(rate)/RateDivisor
}

// ComputeSettlement splits a sale price between the seller, the royalty
// receiver and the fee receiver. The declared royalty is capped at
// RoyaltyCapRate of the price; the fee is feeRate of the price. Both use
// truncating division, so rounding dust stays with the seller.
func ComputeSettlement(price, declaredRoyalty uint64, feeRate uint32) Settlement {
	royalty := declaredRoyalty
	if cap := mulDivRate(price, RoyaltyCapRate); royalty > cap {
		royalty = cap
	}

	fee := mulDivRate(price, feeRate)

	// With feeRate bounded by MaxFeeRate and the royalty capped, the two
	// cuts can never exceed the price. Clamp anyway so the subtraction
	// below cannot wrap if a misconfigured rate slips through.
	if royalty+fee > price {
		fee = price - royalty
	}

	return Settlement{
		Proceeds: price - royalty - fee,
		Royalty:  royalty,
		Fee:      fee,
	}
}

// RoyaltyAmount returns the uncapped royalty a collection declares for a
// given price.
func RoyaltyAmount(price uint64, royaltyRate uint32) uint64 {
	return mulDivRate(price, royaltyRate)
}
