package testing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
)

func addressOf(id [20]byte) string { return address.Encode(id) }

// RequireSuccess fails the test unless the transaction applied.
func RequireSuccess(t *testing.T, res tx.ApplyResult) {
	t.Helper()
	require.Equal(t, tx.ResSuccess, res.Result, "expected success, got %s: %s", res.Result, res.Message)
	require.True(t, res.Applied)
}

// RequireFail fails the test unless the transaction failed with the given
// result code.
func RequireFail(t *testing.T, res tx.ApplyResult, want tx.Result) {
	t.Helper()
	require.Equal(t, want, res.Result, "expected %s, got %s: %s", want, res.Result, res.Message)
	require.False(t, res.Applied)
}

// RequireEvent fails the test unless the metadata contains an event with
// the given name; it returns the first match.
func RequireEvent(t *testing.T, res tx.ApplyResult, name string) tx.Event {
	t.Helper()
	require.NotNil(t, res.Metadata)
	for _, ev := range res.Metadata.Events {
		if ev.Name == name {
			return ev
		}
	}
	t.Fatalf("metadata has no %q event", name)
	return tx.Event{}
}

// RequireNoEvent fails the test if the metadata contains an event with the
// given name.
func RequireNoEvent(t *testing.T, res tx.ApplyResult, name string) {
	t.Helper()
	if res.Metadata == nil {
		return
	}
	for _, ev := range res.Metadata.Events {
		require.NotEqual(t, name, ev.Name)
	}
}
