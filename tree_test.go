package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func checkTree(t *testing.T, n *Node) {
	t.Helper()
	if n.IsLeaf() {
		return
	}
	require.NotNil(t, n.Left, "internal node must have a left child")
	sum := n.Left.Freq
	checkTree(t, n.Left)
	if n.Right != nil {
		sum += n.Right.Freq
		checkTree(t, n.Right)
	}
	require.Equal(t, sum, n.Freq)
}

func TestBuildTree_Empty(t *testing.T) {
	require.Nil(t, BuildTree(Analyze(nil)))
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	root := BuildTree(Analyze([]byte("aaaa")))
	require.NotNil(t, root)
	require.False(t, root.IsLeaf())
	require.Equal(t, uint64(4), root.Freq)
	require.NotNil(t, root.Left)
	require.True(t, root.Left.IsLeaf())
	require.Equal(t, Symbol('a'), root.Left.Symbol)
	require.Nil(t, root.Right)
}

func TestBuildTree(t *testing.T) {
	ft := Analyze([]byte("abracadabra"))
	root := BuildTree(ft)
	require.NotNil(t, root)
	require.Equal(t, ft.Total(), root.Freq)
	checkTree(t, root)

	// c and d (1 each) merge first, then b and r (2 each), then the two
	// synthetic nodes; a (5) ends up alone on the "0" side of the root.
	require.True(t, root.Left.IsLeaf())
	require.Equal(t, Symbol('a'), root.Left.Symbol)
	require.Equal(t, uint64(6), root.Right.Freq)
	require.Equal(t, Symbol('c'), root.Right.Left.Left.Symbol)
	require.Equal(t, Symbol('d'), root.Right.Left.Right.Symbol)
	require.Equal(t, Symbol('b'), root.Right.Right.Left.Symbol)
	require.Equal(t, Symbol('r'), root.Right.Right.Right.Symbol)
}

func TestBuildTree_Deterministic(t *testing.T) {
	ft := mustFrequencyTable([]uint64{4, 4, 4, 4, 4, 4, 4, 4, 2, 2, 1, 1})
	first := BuildTree(ft)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, BuildTree(ft))
	}
	checkTree(t, first)
}

func TestBuildTree_LargeFrequencies(t *testing.T) {
	half := ^uint64(0) / 2
	ft := mustFrequencyTable([]uint64{half, half, 1})
	root := BuildTree(ft)
	require.Equal(t, ft.Total(), root.Freq)
	checkTree(t, root)
}
