package huffman

// Stats summarizes how well an Artifact compresses its input.
type Stats struct {
	InputBytes      int
	PackedBytes     int
	BitLength       uint64
	DistinctSymbols int
	ShortestCode    byte
	LongestCode     byte

	// Entropy is the Shannon entropy of the input in bits per symbol.
	Entropy float64

	// BitsPerSymbol is the average code length actually achieved.
	BitsPerSymbol float64
}

// ComputeStats computes Stats for data and the Artifact it was encoded to.
func ComputeStats(data []byte, a Artifact) Stats {
	ft := Analyze(data)
	s := Stats{
		InputBytes:      len(data),
		PackedBytes:     len(a.Payload.Bytes),
		BitLength:       a.Payload.BitLength,
		DistinctSymbols: ft.Len(),
		Entropy:         ft.Entropy(),
	}
	for hc := range a.Table {
		if s.ShortestCode == 0 || s.ShortestCode > hc.Size {
			s.ShortestCode = hc.Size
		}
		if s.LongestCode < hc.Size {
			s.LongestCode = hc.Size
		}
	}
	if len(data) != 0 {
		s.BitsPerSymbol = float64(a.Payload.BitLength) / float64(len(data))
	}
	return s
}

// Ratio returns PackedBytes / InputBytes, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.PackedBytes) / float64(s.InputBytes)
}
