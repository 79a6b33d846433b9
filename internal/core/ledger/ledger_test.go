package ledger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gravikko/nft-marketplace-sub000/internal/core/keylet"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/ledger"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
	"github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv"
	_ "github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv/pebble"
)

func openTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	db, err := kv.Open("pebble", t.TempDir())
	require.NoError(t, err)

	l, err := ledger.Open(db)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerViewSemantics(t *testing.T) {
	l := openTestLedger(t)
	k := keylet.Auction(1)

	// Absent entries read as nil without error.
	data, err := l.Read(k)
	require.NoError(t, err)
	require.Nil(t, data)

	require.ErrorIs(t, l.Update(k, []byte("x")), tx.ErrEntryNotFound)
	require.ErrorIs(t, l.Erase(k), tx.ErrEntryNotFound)

	require.NoError(t, l.Insert(k, []byte("a")))
	require.ErrorIs(t, l.Insert(k, []byte("b")), tx.ErrEntryExists)

	data, err = l.Read(k)
	require.NoError(t, err)
	require.Equal(t, []byte("a"), data)

	require.NoError(t, l.Update(k, []byte("b")))
	data, err = l.Read(k)
	require.NoError(t, err)
	require.Equal(t, []byte("b"), data)

	require.NoError(t, l.Erase(k))
	exists, err := l.Exists(k)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLedgerBackedEngine(t *testing.T) {
	l := openTestLedger(t)

	gate := [20]byte{1}
	require.NoError(t, tx.Bootstrap(l, tx.DefaultMarketState(gate, gate)))

	bootstrapped, err := tx.Bootstrapped(l)
	require.NoError(t, err)
	require.True(t, bootstrapped)

	ms, err := tx.QueryMarketState(l)
	require.NoError(t, err)
	require.True(t, ms.Active)
	require.Equal(t, gate, ms.GateAccount)
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := openTestLedger(t)

	gate := [20]byte{1}
	require.NoError(t, tx.Bootstrap(src, tx.DefaultMarketState(gate, gate)))
	require.NoError(t, tx.FundAccount(src, [20]byte{2}, 1000, 50))
	require.NoError(t, tx.FundAccount(src, [20]byte{3}, 7, 0))

	var buf bytes.Buffer
	require.NoError(t, src.WriteSnapshot(context.Background(), &buf))

	dst := openTestLedger(t)
	require.NoError(t, dst.RestoreSnapshot(context.Background(), &buf))

	acct, err := tx.QueryAccount(dst, [20]byte{2})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), acct.Balance)
	require.Equal(t, uint64(50), acct.CreditBalance)

	ms, err := tx.QueryMarketState(dst)
	require.NoError(t, err)
	require.Equal(t, gate, ms.GateAccount)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	l := openTestLedger(t)
	err := l.RestoreSnapshot(context.Background(), bytes.NewReader([]byte("not a snapshot at all")))
	require.Error(t, err)
}
