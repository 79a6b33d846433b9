package keylet

import "testing"

func TestKeyletsAreDeterministic(t *testing.T) {
	var acct [20]byte
	acct[0] = 0xAB

	if Account(acct) != Account(acct) {
		t.Fatal("Account keylet not deterministic")
	}
	if Auction(7) != Auction(7) {
		t.Fatal("Auction keylet not deterministic")
	}
	if MarketState() != MarketState() {
		t.Fatal("MarketState keylet not deterministic")
	}
}

func TestSpacesDoNotCollide(t *testing.T) {
	// The same identifying bytes in different spaces must yield
	// different keys.
	var acct [20]byte
	seen := map[[32]byte]string{
		Account(acct).Key:    "account",
		Collection(0).Key:    "collection",
		Token(0, 0).Key:      "token",
		Nonce(acct, 0).Key:   "nonce",
		Auction(0).Key:       "auction",
		MarketState().Key:    "market",
		CancelFlag([32]byte{}).Key: "cancel",
	}
	if len(seen) != 7 {
		t.Fatalf("expected 7 distinct keys, got %d", len(seen))
	}
}

func TestNonceScopedPerSigner(t *testing.T) {
	var a, b [20]byte
	b[19] = 1

	if Nonce(a, 42) == Nonce(b, 42) {
		t.Fatal("nonce keylets must be signer-scoped")
	}
	if Nonce(a, 42) == Nonce(a, 43) {
		t.Fatal("nonce keylets must differ per nonce")
	}
}

func TestTokenKeyScopedPerCollection(t *testing.T) {
	if Token(1, 5) == Token(2, 5) {
		t.Fatal("token keylets must be collection-scoped")
	}
}
