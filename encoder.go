package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Encoder maps each Symbol to its Huffman Code.
type Encoder struct {
	codes    [NumSymbols]Code
	numCodes int
	minSize  byte
	maxSize  byte
}

// Init initializes this Encoder with the Huffman code for the given
// frequencies.  Symbols with a frequency of 0 are not assigned a code.
//
// Init fails with ErrCodeTooLong if the frequencies are skewed enough that
// the tree is deeper than MaxCodeSize.  This cannot happen for any table
// produced by Analyze on an input of practical size.
func (e *Encoder) Init(ft FrequencyTable) error {
	encoder, _, err := Derive(BuildTree(ft))
	if err != nil {
		*e = Encoder{}
		return err
	}
	*e = encoder
	return nil
}

// Encode returns the Code for symbol.  The Code has Size 0 if the Symbol was
// not assigned a code.
func (e Encoder) Encode(symbol Symbol) Code {
	return e.codes[symbol]
}

// Has returns true iff symbol was assigned a code.
func (e Encoder) Has(symbol Symbol) bool {
	return e.codes[symbol].Size != 0
}

// Len returns the number of Symbols that were assigned a code.
func (e Encoder) Len() int {
	return e.numCodes
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, 0 for Symbols without a code.
func (e Encoder) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		out[symbol] = e.codes[symbol].Size
	}
	return out
}

// WeightedLength returns the total number of bits needed to encode an input
// with the given frequencies, i.e. the sum of count×size over all Symbols.
// The result saturates at the maximum uint64.
func (e Encoder) WeightedLength(ft FrequencyTable) uint64 {
	var sum uint64
	for symbol := 0; symbol < NumSymbols; symbol++ {
		bits := mulSaturating(ft.Count(Symbol(symbol)), uint64(e.codes[symbol].Size))
		sum = addSaturating(sum, bits)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if hc := e.codes[symbol]; hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Derive walks a Huffman tree and returns its codes in both directions.  The
// code of a leaf is the path from the root to that leaf, with "0" for each
// Left edge and "1" for each Right edge.  A nil root yields empty tables.
//
// Derive fails with ErrCodeTooLong if some leaf is deeper than MaxCodeSize.
func Derive(root *Node) (Encoder, Decoder, error) {
	var e Encoder
	d := Decoder{table: make(map[Code]Symbol)}
	if root == nil {
		return e, d, nil
	}
	if root.IsLeaf() {
		return Encoder{}, Decoder{}, fmt.Errorf("root of a Huffman tree must not be a leaf (symbol %d)", root.Symbol)
	}

	// Walk the tree with an explicit stack.  stackItem.x keeps track of
	// where we are:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		node *Node
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, log2uint32(NumSymbols)*2)
	var hasMinMax bool

	processChild := func(child *Node, hc Code) {
		if child == nil {
			return
		}
		if !child.IsLeaf() {
			stack = append(stack, stackItem{node: child, code: hc})
			return
		}

		e.codes[child.Symbol] = hc
		e.numCodes++
		d.table[hc] = child.Symbol

		size := hc.Size
		if !hasMinMax {
			hasMinMax = true
			e.minSize, e.maxSize = size, size
		} else if e.minSize > size {
			e.minSize = size
		} else if e.maxSize < size {
			e.maxSize = size
		}
	}

	stack = append(stack, stackItem{node: root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		if top.code.Size >= MaxCodeSize {
			return Encoder{}, Decoder{}, fmt.Errorf("%w: internal node at depth %d", ErrCodeTooLong, top.code.Size)
		}
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(top.node.Left, top.code.Append(false))
		case 1:
			processChild(top.node.Right, top.code.Append(true))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}

	assert.Assertf(len(d.table) == e.numCodes, "%d codes map to %d symbols", len(d.table), e.numCodes)
	d.minSize, d.maxSize = e.minSize, e.maxSize
	return e, d, nil
}
