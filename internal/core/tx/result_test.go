package tx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultCategories(t *testing.T) {
	require.Equal(t, CategorySuccess, ResSuccess.Category())
	require.Equal(t, CategoryValidation, ResIncorrectPrice.Category())
	require.Equal(t, CategoryAuthorization, ResBadSignature.Category())
	require.Equal(t, CategoryStateConflict, ResNonceUsed.Category())
	require.Equal(t, CategoryTransfer, ResInsufficientPayment.Category())
	require.Equal(t, CategoryInternal, ResInternal.Category())

	require.True(t, ResSuccess.Success())
	require.False(t, ResNonceUsed.Success())
}

func TestResultNamesRoundTrip(t *testing.T) {
	for code, name := range resultNames {
		got, ok := ResultFromName(name)
		require.True(t, ok, name)
		require.Equal(t, code, got)
	}

	_, ok := ResultFromName("NoSuchResult")
	require.False(t, ok)
}

func TestTypeNamesRoundTrip(t *testing.T) {
	for txType, name := range typeNames {
		got, ok := TypeFromName(name)
		require.True(t, ok, name)
		require.Equal(t, txType, got)
	}
	require.Equal(t, "OrderExecute", TypeOrderExecute.String())
}
