package address

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var id AccountID
	for i := range id {
		id[i] = byte(i * 7)
	}

	addr := Encode(id)
	require.True(t, len(addr) == len(Prefix)+40)

	decoded, err := Decode(addr)
	require.NoError(t, err)
	require.Equal(t, id, decoded)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tt := []struct {
		description string
		input       string
	}{
		{description: "missing prefix", input: "00112233445566778899aabbccddeeff00112233"},
		{description: "wrong length", input: Prefix + "0011223344"},
		{description: "not hex", input: Prefix + "zz112233445566778899aabbccddeeff00112233"},
		{description: "empty", input: ""},
	}

	for _, tc := range tt {
		t.Run(tc.description, func(t *testing.T) {
			_, err := Decode(tc.input)
			require.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestFromPubKeyDeterministic(t *testing.T) {
	pub := make([]byte, 33)
	pub[0] = 0x02
	for i := 1; i < len(pub); i++ {
		pub[i] = byte(i)
	}

	a, err := FromPubKey(pub)
	require.NoError(t, err)
	b, err := FromPubKey(pub)
	require.NoError(t, err)
	require.Equal(t, a, b)

	// A different key must map to a different account.
	pub[5] ^= 0xff
	c, err := FromPubKey(pub)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestFromPubKeyRejectsShortKey(t *testing.T) {
	_, err := FromPubKey([]byte{0x02, 0x01})
	require.ErrorIs(t, err, ErrInvalidPublicKey)
}
