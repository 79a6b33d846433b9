package market

import (
	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	te "github.com/Gravikko/nft-marketplace-sub000/internal/testing"
)

func marketAddress() string { return address.Encode(te.MarketAccount) }
