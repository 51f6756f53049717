package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// Artifact is the self-contained result of Encode: the code→symbol table
// and the packed bits.  An Artifact is treated as immutable once produced.
type Artifact struct {
	Table   map[Code]Symbol
	Payload PackedPayload
}

// Encode compresses data with a Huffman code built from data's own symbol
// frequencies.
//
// Empty input produces an Artifact with an empty table and a zero-length
// payload.
func Encode(data []byte) Artifact {
	if len(data) == 0 {
		return Artifact{Table: make(map[Code]Symbol)}
	}

	// A tree deeper than MaxCodeSize needs more than Fib(MaxCodeSize+2)
	// input bytes.
	e, d, err := Derive(BuildTree(Analyze(data)))
	assert.Assertf(err == nil, "%d input bytes: %v", len(data), err)

	bw := NewBitWriter()
	for _, b := range data {
		bw.WriteCode(e.Encode(Symbol(b)))
	}

	return Artifact{
		Table:   d.table,
		Payload: bw.Finish(),
	}
}

// Decode reverses Encode.  It uses only the table carried by the Artifact.
//
// Decode fails with ErrInconsistentTable if the table is not a prefix code,
// and with ErrMalformedArtifact if the payload does not resolve into whole
// codes.  No partial output is returned on failure.
func Decode(a Artifact) ([]byte, error) {
	if a.Payload.BitLength == 0 {
		return []byte{}, nil
	}

	var d Decoder
	if err := d.Init(a.Table); err != nil {
		return nil, err
	}
	return d.DecodePayload(a.Payload)
}
