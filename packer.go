package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// PackedPayload is a bit string packed into bytes, most significant bit
// first.  Only the first BitLength bits are meaningful; the remaining bits of
// the final byte are padding.
type PackedPayload struct {
	Bytes     []byte
	BitLength uint64
}

// PaddingBits returns the number of padding bits at the end of Bytes.
func (p PackedPayload) PaddingBits() uint64 {
	total := uint64(len(p.Bytes)) * 8
	if total < p.BitLength {
		return 0
	}
	return total - p.BitLength
}

// BitWriter accumulates bits into a PackedPayload.
type BitWriter struct {
	buf bytes.Buffer
	w   *bitio.Writer
	n   uint64
}

// NewBitWriter returns an empty BitWriter.
func NewBitWriter() *BitWriter {
	bw := &BitWriter{}
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

// WriteBit appends a single bit.
func (bw *BitWriter) WriteBit(bit bool) {
	err := bw.w.WriteBool(bit)
	assert.Assertf(err == nil, "in-memory bit write failed: %v", err)
	bw.n++
}

// WriteCode appends all bits of hc, first bit first.
func (bw *BitWriter) WriteCode(hc Code) {
	assert.Assertf(hc.Size <= MaxCodeSize, "code size %d > MaxCodeSize %d", hc.Size, MaxCodeSize)
	if hc.Size == 0 {
		return
	}
	err := bw.w.WriteBits(hc.Bits, hc.Size)
	assert.Assertf(err == nil, "in-memory bit write failed: %v", err)
	bw.n += uint64(hc.Size)
}

// Len returns the number of bits written so far.
func (bw *BitWriter) Len() uint64 {
	return bw.n
}

// Finish pads the final byte with zero bits and returns the packed result.
// The BitWriter must not be used afterward.
func (bw *BitWriter) Finish() PackedPayload {
	err := bw.w.Close()
	assert.Assertf(err == nil, "in-memory bit flush failed: %v", err)
	assert.Assertf(uint64(bw.buf.Len()) == bytesForBits(bw.n), "packed %d bytes for %d bits", bw.buf.Len(), bw.n)
	return PackedPayload{Bytes: bw.buf.Bytes(), BitLength: bw.n}
}

// BitReader reads back the meaningful bits of a PackedPayload.
type BitReader struct {
	r         *bitio.Reader
	pos       uint64
	remaining uint64
}

// NewBitReader returns a BitReader over p.  It fails with
// ErrMalformedArtifact if p.BitLength claims more bits than p.Bytes holds.
func NewBitReader(p PackedPayload) (*BitReader, error) {
	if available := uint64(len(p.Bytes)) * 8; p.BitLength > available {
		return nil, fmt.Errorf("%w: bit length %d exceeds the %d bits of a %d-byte payload", ErrMalformedArtifact, p.BitLength, available, len(p.Bytes))
	}
	return &BitReader{
		r:         bitio.NewReader(bytes.NewReader(p.Bytes)),
		remaining: p.BitLength,
	}, nil
}

// ReadBit returns the next bit.  It returns io.EOF once BitLength bits have
// been read, without looking at any padding.
func (br *BitReader) ReadBit() (bool, error) {
	if br.remaining == 0 {
		return false, io.EOF
	}
	bit, err := br.r.ReadBool()
	if err != nil {
		return false, fmt.Errorf("%w: read bit %d: %v", ErrMalformedArtifact, br.pos, err)
	}
	br.pos++
	br.remaining--
	return bit, nil
}

// Pos returns the number of bits read so far.
func (br *BitReader) Pos() uint64 {
	return br.pos
}

// Remaining returns the number of meaningful bits not yet read.
func (br *BitReader) Remaining() uint64 {
	return br.remaining
}

// Pack packs a bit string into bytes.
func Pack(bits []bool) PackedPayload {
	bw := NewBitWriter()
	for _, bit := range bits {
		bw.WriteBit(bit)
	}
	return bw.Finish()
}

// Unpack reverses Pack: it returns exactly the first p.BitLength bits of
// p.Bytes.
func Unpack(p PackedPayload) ([]bool, error) {
	br, err := NewBitReader(p)
	if err != nil {
		return nil, err
	}
	out := make([]bool, 0, p.BitLength)
	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, bit)
	}
}
