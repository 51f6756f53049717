package huffman

import (
	"fmt"
	"strconv"
)

// MaxCodeSize is the largest number of bits a Code can hold.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant of the low Size bits; all higher bits are zero.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is longer than %d bits", str, MaxCodeSize)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(false)
		case '1':
			hc = hc.Append(true)
		default:
			return Code{}, fmt.Errorf("invalid character %q in code %q", str[i], str)
		}
	}
	return hc, nil
}

// Append returns this Code with one more bit added at the end.  The caller
// must ensure that hc.Size < MaxCodeSize.
func (hc Code) Append(bit bool) Code {
	hc.Size++
	hc.Bits <<= 1
	if bit {
		hc.Bits |= 1
	}
	return hc
}

// Bit returns the i'th bit of this Code, counting from the first.
func (hc Code) Bit(i byte) bool {
	return (hc.Bits>>(hc.Size-1-i))&1 != 0
}

// IsPrefixOf returns true iff this Code is a proper prefix of other.
func (hc Code) IsPrefixOf(other Code) bool {
	if hc.Size >= other.Size {
		return false
	}
	return other.Bits>>(other.Size-hc.Size) == hc.Bits
}

// IsValid returns true iff this Code has a non-zero size no larger than
// MaxCodeSize and no stray bits above its size.
func (hc Code) IsValid() bool {
	if hc.Size == 0 || hc.Size > MaxCodeSize {
		return false
	}
	return hc.Size == MaxCodeSize || hc.Bits>>hc.Size == 0
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

// lexLess orders codes as bit strings: left-aligned value first, then the
// shorter code first.  A code that is a prefix of another sorts immediately
// before every code it prefixes.
func lexLess(a, b Code) bool {
	av, bv := a.Bits<<(MaxCodeSize-a.Size), b.Bits<<(MaxCodeSize-b.Size)
	if av != bv {
		return av < bv
	}
	return a.Size < b.Size
}
