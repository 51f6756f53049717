package huffman

import (
	"fmt"
	"math"
	mathbits "math/bits"
)

// FrequencyTable records the number of occurrences of each Symbol in some
// input.  Symbols that never occur have a count of zero and are considered
// absent from the table.
type FrequencyTable struct {
	counts   [NumSymbols]uint64
	total    uint64
	distinct int
}

// Analyze counts the occurrences of each Symbol in data.
func Analyze(data []byte) FrequencyTable {
	var ft FrequencyTable
	for _, b := range data {
		ft.counts[b]++
	}
	ft.recount()
	return ft
}

// MakeFrequencyTable constructs a FrequencyTable from a list of frequencies,
// one for each Symbol.  Any Symbol not represented in the list is assumed to
// have a frequency of 0.
//
// The list may not be longer than the alphabet, and the frequencies must sum
// to at most the maximum uint64.
func MakeFrequencyTable(frequencies []uint64) (FrequencyTable, error) {
	if len(frequencies) > NumSymbols {
		return FrequencyTable{}, fmt.Errorf("%w: %d frequencies for a %d-symbol alphabet", ErrInvalidFrequencies, len(frequencies), NumSymbols)
	}

	var ft FrequencyTable
	copy(ft.counts[:], frequencies)
	if !ft.recount() {
		return FrequencyTable{}, fmt.Errorf("%w: total frequency overflows uint64", ErrInvalidFrequencies)
	}
	return ft, nil
}

// recount recomputes total and distinct.  It returns false if the total
// overflows.
func (ft *FrequencyTable) recount() bool {
	ft.total = 0
	ft.distinct = 0
	for _, count := range ft.counts {
		if count == 0 {
			continue
		}
		var carry uint64
		ft.total, carry = mathbits.Add64(ft.total, count, 0)
		if carry != 0 {
			return false
		}
		ft.distinct++
	}
	return true
}

// Count returns the number of occurrences of symbol.
func (ft FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Total returns the sum of all counts, i.e. the length of the input.
func (ft FrequencyTable) Total() uint64 {
	return ft.total
}

// Len returns the number of distinct Symbols with a non-zero count.
func (ft FrequencyTable) Len() int {
	return ft.distinct
}

// Symbols returns the Symbols with a non-zero count in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ft.distinct)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if ft.counts[symbol] != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// Entropy returns the Shannon entropy of the distribution in bits per
// symbol.  No prefix code can average fewer bits per symbol than this.
func (ft FrequencyTable) Entropy() float64 {
	if ft.total == 0 {
		return 0
	}
	total := float64(ft.total)
	var h float64
	for _, count := range ft.counts {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}
