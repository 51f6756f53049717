package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Decoder maps Huffman Codes back to Symbols.
type Decoder struct {
	table   map[Code]Symbol
	minSize byte
	maxSize byte
}

// Init initializes this Decoder from a code→symbol table.  The table is
// copied.
//
// Not all tables are valid prefix codes.  Init rejects, with
// ErrInconsistentTable, any table containing an empty or over-long code, two
// codes for the same Symbol, or a code that is a prefix of another code.  An
// empty table is permitted; it can only decode an empty bit string.
func (d *Decoder) Init(table map[Code]Symbol) error {
	*d = Decoder{table: make(map[Code]Symbol, len(table))}
	if len(table) == 0 {
		return nil
	}

	var seen [NumSymbols]bool
	keys := make(byCode, 0, len(table))
	for hc, symbol := range table {
		if !hc.IsValid() {
			return fmt.Errorf("%w: invalid code {Size: %d, Bits: %#x} for symbol %d", ErrInconsistentTable, hc.Size, hc.Bits, symbol)
		}
		if seen[symbol] {
			return fmt.Errorf("%w: symbol %d has more than one code", ErrInconsistentTable, symbol)
		}
		seen[symbol] = true
		keys = append(keys, hc)
	}

	// In lexical order, a code that is a prefix of any other code is a
	// prefix of the code immediately after it.
	sort.Slice(keys, func(i, j int) bool { return lexLess(keys[i], keys[j]) })
	for i := 1; i < len(keys); i++ {
		if keys[i-1].IsPrefixOf(keys[i]) {
			return fmt.Errorf("%w: code %s is a prefix of code %s", ErrInconsistentTable, keys[i-1], keys[i])
		}
	}

	d.minSize, d.maxSize = keys[0].Size, keys[0].Size
	for _, hc := range keys {
		if d.minSize > hc.Size {
			d.minSize = hc.Size
		}
		if d.maxSize < hc.Size {
			d.maxSize = hc.Size
		}
		d.table[hc] = table[hc]
	}
	return nil
}

// Lookup returns the Symbol for hc, if hc is a complete code.
func (d Decoder) Lookup(hc Code) (Symbol, bool) {
	symbol, found := d.table[hc]
	return symbol, found
}

// Table returns a copy of the code→symbol table.
func (d Decoder) Table() map[Code]Symbol {
	out := make(map[Code]Symbol, len(d.table))
	for hc, symbol := range d.table {
		out[hc] = symbol
	}
	return out
}

// Len returns the number of codes in the table.
func (d Decoder) Len() int {
	return len(d.table)
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// DecodePayload decodes every meaningful bit of p into Symbols.
//
// Bits are consumed one at a time into a candidate code; whenever the
// candidate is in the table, its Symbol is emitted and the candidate is
// reset.  Decoding fails with ErrMalformedArtifact if the candidate grows
// longer than the longest code, or if bits are left over at the end.
func (d Decoder) DecodePayload(p PackedPayload) ([]byte, error) {
	if p.BitLength == 0 {
		return []byte{}, nil
	}
	if len(d.table) == 0 {
		return nil, fmt.Errorf("%w: %d bits to decode but the code table is empty", ErrMalformedArtifact, p.BitLength)
	}

	br, err := NewBitReader(p)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, p.BitLength/uint64(d.minSize))
	var candidate Code
	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		candidate = candidate.Append(bit)
		if symbol, found := d.table[candidate]; found {
			out = append(out, byte(symbol))
			candidate = Code{}
			continue
		}
		if candidate.Size >= d.maxSize {
			start := br.Pos() - uint64(candidate.Size)
			return nil, fmt.Errorf("%w: bits %s at offset %d match no code", ErrMalformedArtifact, candidate, start)
		}
	}

	if candidate.Size != 0 {
		return nil, fmt.Errorf("%w: stream ends inside a code: %d dangling bits %s", ErrMalformedArtifact, candidate.Size, candidate)
	}
	return out, nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		fmt.Fprintf(&buf, "\tDecode(%s) = %d\n", hc, d.table[hc])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
