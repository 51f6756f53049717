package huffman

import (
	"errors"
	"fmt"
)

// ErrMalformedArtifact is returned when an Artifact or PackedPayload cannot
// be decoded: the bit length exceeds the packed bytes, a bit sequence matches
// no code, or the stream ends in the middle of a code.
var ErrMalformedArtifact = errors.New("malformed Huffman artifact")

// ErrInvalidFrequencies is returned by MakeFrequencyTable for a list of
// frequencies that cannot describe any input.
var ErrInvalidFrequencies = errors.New("invalid frequency table")

// ErrCodeTooLong is returned when a Huffman tree is so deep that some code
// would exceed MaxCodeSize bits.
var ErrCodeTooLong = fmt.Errorf("Huffman code longer than %d bits", MaxCodeSize)

// ErrInconsistentTable is returned when a code→symbol table is not a valid
// prefix code: some code is empty, too long, a prefix of another code, or
// maps to the same Symbol as another code.
//
// ErrInconsistentTable wraps ErrMalformedArtifact.
var ErrInconsistentTable = fmt.Errorf("%w: inconsistent code table", ErrMalformedArtifact)
