package tx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name            string
		price           uint64
		declaredRoyalty uint64
		feeRate         uint32
		want            Settlement
	}{
		{
			name:            "typical split",
			price:           1000,
			declaredRoyalty: 50,  // 5%
			feeRate:         250, // 2.5%
			want:            Settlement{Proceeds: 925, Royalty: 50, Fee: 25},
		},
		{
			name:            "royalty capped at ten percent",
			price:           1000,
			declaredRoyalty: 200, // 20%, above the cap
			feeRate:         250,
			want:            Settlement{Proceeds: 875, Royalty: 100, Fee: 25},
		},
		{
			name:            "no royalty no fee",
			price:           1000,
			declaredRoyalty: 0,
			feeRate:         0,
			want:            Settlement{Proceeds: 1000, Royalty: 0, Fee: 0},
		},
		{
			name:            "truncating division keeps dust with seller",
			price:           999,
			declaredRoyalty: 49, // floor(999*500/10000)
			feeRate:         250,
			want:            Settlement{Proceeds: 926, Royalty: 49, Fee: 24},
		},
		{
			name:            "price of one unit",
			price:           1,
			declaredRoyalty: 0,
			feeRate:         250,
			want:            Settlement{Proceeds: 1, Royalty: 0, Fee: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeSettlement(tc.price, tc.declaredRoyalty, tc.feeRate)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.price, got.Proceeds+got.Royalty+got.Fee,
				"split must conserve the price exactly")
		})
	}
}

func TestComputeSettlementConservation(t *testing.T) {
	// The three-way split must conserve the price for arbitrary inputs.
	prices := []uint64{1, 7, 99, 1000, 12345, 1 << 40, ^uint64(0) / 2}
	rates := []uint32{0, 1, 250, 999, 2000}
	royaltyRates := []uint32{0, 1, 500, 1000, 5000}

	for _, price := range prices {
		for _, feeRate := range rates {
			for _, royaltyRate := range royaltyRates {
				declared := RoyaltyAmount(price, royaltyRate)
				s := ComputeSettlement(price, declared, feeRate)
				require.Equal(t, price, s.Proceeds+s.Royalty+s.Fee)
				require.LessOrEqual(t, s.Royalty, mulDivRate(price, RoyaltyCapRate))
			}
		}
	}
}

func TestMulDivRateMatchesWideMultiply(t *testing.T) {
	// The overflow-safe form must equal floor(amount*rate/10000) wherever
	// the naive product still fits in a uint64.
	for _, amount := range []uint64{0, 1, 9999, 10000, 10001, 123456789} {
		for _, rate := range []uint32{0, 1, 250, 1000, 9999, 10000} {
			want := amount * uint64(rate) / RateDivisor
			require.Equal(t, want, mulDivRate(amount, rate), "amount=%d rate=%d", amount, rate)
		}
	}

	// Beyond the naive range it must not wrap.
	huge := ^uint64(0) - 3
	require.Equal(t, huge/RateDivisor*10000+huge%RateDivisor, mulDivRate(huge, 10000))
}

func TestBidIncrement(t *testing.T) {
	require.Equal(t, uint64(500), bidIncrement(10000, 5))
	require.Equal(t, uint64(525), bidIncrement(10500, 5))
	require.Equal(t, uint64(0), bidIncrement(19, 5)) // truncates to zero
	require.Equal(t, uint64(1), bidIncrement(100, 1))
}
