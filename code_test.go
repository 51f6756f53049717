package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	hc, err := ParseCode("1101")
	require.NoError(t, err)
	require.Equal(t, MakeCode(4, 0xd), hc)
	require.Equal(t, `"1101"`, hc.String())
	require.True(t, hc.Bit(0))
	require.True(t, hc.Bit(1))
	require.False(t, hc.Bit(2))
	require.True(t, hc.Bit(3))

	hc, err = ParseCode("")
	require.NoError(t, err)
	require.Equal(t, Code{}, hc)
	require.Equal(t, `""`, hc.String())

	_, err = ParseCode("10x")
	require.Error(t, err)

	long := make([]byte, MaxCodeSize+1)
	for i := range long {
		long[i] = '1'
	}
	_, err = ParseCode(string(long))
	require.Error(t, err)
}

func TestCode_IsPrefixOf(t *testing.T) {
	mustParse := func(str string) Code {
		hc, err := ParseCode(str)
		require.NoError(t, err)
		return hc
	}

	require.True(t, mustParse("1").IsPrefixOf(mustParse("10")))
	require.True(t, mustParse("01").IsPrefixOf(mustParse("0111")))
	require.False(t, mustParse("01").IsPrefixOf(mustParse("01")))
	require.False(t, mustParse("10").IsPrefixOf(mustParse("1")))
	require.False(t, mustParse("00").IsPrefixOf(mustParse("0111")))
}

func TestCode_IsValid(t *testing.T) {
	require.False(t, Code{}.IsValid())
	require.True(t, MakeCode(1, 1).IsValid())
	require.False(t, MakeCode(1, 2).IsValid())
	require.True(t, MakeCode(MaxCodeSize, ^uint64(0)).IsValid())
	require.False(t, MakeCode(MaxCodeSize+1, 0).IsValid())
}

func TestCode_LexOrder(t *testing.T) {
	ordered := []string{"0", "00", "001", "01", "1", "10", "11", "111"}
	for i := 1; i < len(ordered); i++ {
		a, err := ParseCode(ordered[i-1])
		require.NoError(t, err)
		b, err := ParseCode(ordered[i])
		require.NoError(t, err)
		require.True(t, lexLess(a, b), "%s < %s", a, b)
		require.False(t, lexLess(b, a), "%s > %s", b, a)
	}
}
