package huffman

import (
	"bytes"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, data []byte) Artifact {
	t.Helper()
	a := Encode(data)
	actual, err := Decode(a)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, actual), "round trip mismatch for %q", data)
	return a
}

func TestCodec_Empty(t *testing.T) {
	a := roundTrip(t, []byte(""))
	require.Empty(t, a.Table)
	require.Zero(t, a.Payload.BitLength)
	require.Empty(t, a.Payload.Bytes)

	actual, err := Decode(Artifact{})
	require.NoError(t, err)
	require.Empty(t, actual)
}

func TestCodec_SingleSymbol(t *testing.T) {
	a := roundTrip(t, []byte("aaaa"))
	require.Equal(t, map[Code]Symbol{MakeCode(1, 0): 'a'}, a.Table)
	require.Equal(t, uint64(4), a.Payload.BitLength)
	require.Equal(t, []byte{0x00}, a.Payload.Bytes)

	for _, n := range []int{1, 7, 8, 9, 1000} {
		roundTrip(t, bytes.Repeat([]byte{0xff}, n))
	}
}

func TestCodec_Abracadabra(t *testing.T) {
	data := []byte("abracadabra")
	a := roundTrip(t, data)

	expect := map[Code]Symbol{}
	for str, symbol := range map[string]Symbol{"0": 'a', "100": 'c', "101": 'd', "110": 'b', "111": 'r'} {
		hc, err := ParseCode(str)
		require.NoError(t, err)
		expect[hc] = symbol
	}
	require.Equal(t, expect, a.Table)

	// 0 110 111 0 100 0 101 0 110 111 0
	require.Equal(t, uint64(23), a.Payload.BitLength)
	require.Equal(t, []byte{0x6e, 0x8a, 0xdc}, a.Payload.Bytes)

	// More frequent symbols never get longer codes.
	ft := Analyze(data)
	var e Encoder
	require.NoError(t, e.Init(ft))
	for _, x := range ft.Symbols() {
		for _, y := range ft.Symbols() {
			if ft.Count(x) > ft.Count(y) {
				require.LessOrEqual(t, e.Encode(x).Size, e.Encode(y).Size, "%q vs %q", x, y)
			}
		}
	}
}

func TestCodec_TruncatedPayload(t *testing.T) {
	data := []byte("abracadabr")
	a := Encode(data)

	var e Encoder
	require.NoError(t, e.Init(Analyze(data)))
	last := e.Encode(Symbol(data[len(data)-1]))
	require.Greater(t, last.Size, byte(1))

	a.Payload.BitLength--
	actual, err := Decode(a)
	require.ErrorIs(t, err, ErrMalformedArtifact)
	require.Nil(t, actual)
}

func TestCodec_InconsistentTable(t *testing.T) {
	a := Encode([]byte("abracadabra"))
	a.Table = map[Code]Symbol{
		MakeCode(1, 0): 'a',
		MakeCode(2, 0): 'b',
		MakeCode(2, 3): 'c',
	}
	_, err := Decode(a)
	require.ErrorIs(t, err, ErrInconsistentTable)
	require.ErrorIs(t, err, ErrMalformedArtifact)
}

func TestCodec_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	all := make([]byte, NumSymbols)
	for i := range all {
		all[i] = byte(i)
	}

	skewed := make([]byte, 5000)
	for i := range skewed {
		skewed[i] = byte(int(rng.ExpFloat64()*8) & 0xff)
	}

	random := make([]byte, 4096)
	rng.Read(random)

	inputs := [][]byte{
		[]byte("a"),
		[]byte("ab"),
		[]byte("hello, world"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		all,
		skewed,
		random,
	}
	for _, data := range inputs {
		roundTrip(t, data)
	}
}

func TestCodec_PrefixFreeAndBijective(t *testing.T) {
	inputs := []string{"abracadabra", "mississippi", "aaaaaaaab", "zyxwvutsrqponmlkjihgfedcba"}
	for _, str := range inputs {
		ft := Analyze([]byte(str))
		e, d, err := Derive(BuildTree(ft))
		require.NoError(t, err)
		require.Equal(t, ft.Len(), e.Len())
		require.Equal(t, ft.Len(), d.Len())

		for _, x := range ft.Symbols() {
			hx := e.Encode(x)
			require.True(t, hx.IsValid())

			back, found := d.Lookup(hx)
			require.True(t, found)
			require.Equal(t, x, back)

			for _, y := range ft.Symbols() {
				if x == y {
					continue
				}
				hy := e.Encode(y)
				require.NotEqual(t, hx, hy)
				require.False(t, hx.IsPrefixOf(hy), "%s is a prefix of %s", hx, hy)
			}
		}

		var check Decoder
		require.NoError(t, check.Init(d.Table()))
	}
}

// optimalCost computes the weighted length of an optimal prefix code by the
// textbook method: the sum of every merged weight.
func optimalCost(counts []uint64) uint64 {
	list := make([]uint64, 0, len(counts))
	for _, c := range counts {
		if c != 0 {
			list = append(list, c)
		}
	}
	var cost uint64
	for len(list) > 1 {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		sum := list[0] + list[1]
		cost += sum
		list = append(list[2:], sum)
	}
	return cost
}

func TestCodec_Optimality(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := make([]uint64, NumSymbols)
	for i := range random {
		random[i] = uint64(rng.Intn(1000))
	}

	distributions := map[string][]uint64{
		"uniform":   {10, 10, 10, 10, 10, 10, 10, 10},
		"dyadic":    {64, 32, 16, 8, 4, 2, 1, 1},
		"fibonacci": {1, 1, 2, 3, 5, 8, 13, 21, 34, 55},
		"classic":   {5, 9, 12, 13, 16, 45},
		"random":    random,
	}
	for name, counts := range distributions {
		t.Run(name, func(t *testing.T) {
			ft, err := MakeFrequencyTable(counts)
			require.NoError(t, err)
			var e Encoder
			require.NoError(t, e.Init(ft))

			actual := e.WeightedLength(ft)
			require.Equal(t, optimalCost(counts), actual)

			n := float64(ft.Total())
			h := ft.Entropy()
			require.GreaterOrEqual(t, float64(actual)+1e-9, h*n)
			require.Less(t, float64(actual), (h+1)*n)
		})
	}
}

func TestCodec_ConcurrentDecode(t *testing.T) {
	data := []byte("she sells sea shells by the sea shore")
	a := Encode(data)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	outs := make([][]byte, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = Decode(a)
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		require.Equal(t, data, outs[i])
	}
}

func TestComputeStats(t *testing.T) {
	data := []byte("abracadabra")
	s := ComputeStats(data, Encode(data))
	require.Equal(t, 11, s.InputBytes)
	require.Equal(t, 3, s.PackedBytes)
	require.Equal(t, uint64(23), s.BitLength)
	require.Equal(t, 5, s.DistinctSymbols)
	require.Equal(t, byte(1), s.ShortestCode)
	require.Equal(t, byte(3), s.LongestCode)
	require.InDelta(t, 23.0/11.0, s.BitsPerSymbol, 1e-12)
	require.LessOrEqual(t, s.Entropy, s.BitsPerSymbol)
	require.InDelta(t, 3.0/11.0, s.Ratio(), 1e-12)

	require.Zero(t, ComputeStats(nil, Encode(nil)).Ratio())
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("aaaa"))
	f.Add([]byte("abracadabra"))
	f.Fuzz(func(t *testing.T, data []byte) {
		a := Encode(data)
		actual, err := Decode(a)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, actual) {
			t.Fatalf("round trip mismatch: %q != %q", actual, data)
		}
	})
}
