package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"

	huffman "github.com/chronos-tachyon/huffcodec"
)

// Magic is the first four bytes of every container.
const Magic = "HUFA"

// Version is the container format version written by Marshal.
const Version = 1

const (
	headerSize   = len(Magic) + 2
	checksumSize = 8

	// maxBodySize bounds the raw body length accepted by Unmarshal, so that a
	// corrupt header cannot trigger an enormous allocation.
	maxBodySize = 1 << 30
)

// Option configures Marshal.
type Option func(*options)

type options struct {
	compression Compression
}

// WithCompression compresses the container body with c.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// Marshal serializes a into a container.
func Marshal(a huffman.Artifact, opts ...Option) ([]byte, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	codec, err := codecFor(o.compression)
	if err != nil {
		return nil, err
	}

	raw := marshalBody(a)
	body, err := codec.compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress container body with %s: %w", o.compression, err)
	}
	compression := o.compression
	if len(body) == 0 || len(body) >= len(raw) {
		body, compression = raw, CompressionNone
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + binary.MaxVarintLen64 + len(body) + checksumSize)
	buf.WriteString(Magic)
	buf.WriteByte(Version)
	buf.WriteByte(byte(compression))
	buf.Write(binary.AppendUvarint(nil, uint64(len(raw))))
	buf.Write(body)
	buf.Write(binary.LittleEndian.AppendUint64(nil, xxhash.Sum64(buf.Bytes())))
	return buf.Bytes(), nil
}

// Unmarshal parses a container produced by Marshal.
func Unmarshal(data []byte) (huffman.Artifact, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return huffman.Artifact{}, ErrBadMagic
	}
	if len(data) < headerSize+1+checksumSize {
		return huffman.Artifact{}, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	content, trailer := data[:len(data)-checksumSize], data[len(data)-checksumSize:]
	if expect, actual := binary.LittleEndian.Uint64(trailer), xxhash.Sum64(content); expect != actual {
		return huffman.Artifact{}, fmt.Errorf("%w: stored %#016x, computed %#016x", ErrChecksumMismatch, expect, actual)
	}

	if v := content[len(Magic)]; v != Version {
		return huffman.Artifact{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	compression := Compression(content[len(Magic)+1])
	codec, err := codecFor(compression)
	if err != nil {
		return huffman.Artifact{}, err
	}

	rawLen, n := binary.Uvarint(content[headerSize:])
	if n <= 0 {
		return huffman.Artifact{}, fmt.Errorf("%w: body length", ErrTruncated)
	}
	if rawLen > maxBodySize {
		return huffman.Artifact{}, fmt.Errorf("%w: body length %d exceeds %d", huffman.ErrMalformedArtifact, rawLen, uint64(maxBodySize))
	}

	raw, err := codec.decompress(content[headerSize+n:], int(rawLen))
	if err != nil {
		return huffman.Artifact{}, fmt.Errorf("%w: %v", huffman.ErrMalformedArtifact, err)
	}
	if uint64(len(raw)) != rawLen {
		return huffman.Artifact{}, fmt.Errorf("%w: body is %d bytes, header says %d", huffman.ErrMalformedArtifact, len(raw), rawLen)
	}
	return unmarshalBody(raw)
}

// Write marshals a and writes the container to w.
func Write(w io.Writer, a huffman.Artifact, opts ...Option) (int64, error) {
	data, err := Marshal(a, opts...)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Read reads a whole container from r.
func Read(r io.Reader) (huffman.Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return huffman.Artifact{}, err
	}
	return Unmarshal(data)
}

// WriteFile writes a to the named file, creating or truncating it.
func WriteFile(path string, a huffman.Artifact, opts ...Option) error {
	data, err := Marshal(a, opts...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads an Artifact from the named file.
func ReadFile(path string) (huffman.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return huffman.Artifact{}, err
	}
	a, err := Unmarshal(data)
	if err != nil {
		return huffman.Artifact{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func marshalBody(a huffman.Artifact) []byte {
	codes := make([]huffman.Code, 0, len(a.Table))
	for hc := range a.Table {
		codes = append(codes, hc)
	}
	sort.Slice(codes, func(i, j int) bool {
		if codes[i].Size != codes[j].Size {
			return codes[i].Size < codes[j].Size
		}
		return codes[i].Bits < codes[j].Bits
	})

	out := make([]byte, 0, 3*binary.MaxVarintLen64+len(codes)*4+len(a.Payload.Bytes))
	out = binary.AppendUvarint(out, uint64(len(codes)))
	for _, hc := range codes {
		out = append(out, byte(a.Table[hc]), hc.Size)
		out = binary.AppendUvarint(out, hc.Bits)
	}
	out = binary.AppendUvarint(out, a.Payload.BitLength)
	out = binary.AppendUvarint(out, uint64(len(a.Payload.Bytes)))
	return append(out, a.Payload.Bytes...)
}

// bodyReader walks a raw body; the first failure sticks.
type bodyReader struct {
	buf []byte
	err error
}

func (br *bodyReader) uvarint(what string) uint64 {
	if br.err != nil {
		return 0
	}
	v, n := binary.Uvarint(br.buf)
	if n <= 0 {
		br.err = fmt.Errorf("%w: %s", ErrTruncated, what)
		return 0
	}
	br.buf = br.buf[n:]
	return v
}

func (br *bodyReader) bytes(n uint64, what string) []byte {
	if br.err != nil {
		return nil
	}
	if uint64(len(br.buf)) < n {
		br.err = fmt.Errorf("%w: %s needs %d bytes, %d remain", ErrTruncated, what, n, len(br.buf))
		return nil
	}
	out := br.buf[:n]
	br.buf = br.buf[n:]
	return out
}

func unmarshalBody(raw []byte) (huffman.Artifact, error) {
	br := &bodyReader{buf: raw}

	numCodes := br.uvarint("code count")
	if br.err == nil && numCodes > huffman.NumSymbols {
		return huffman.Artifact{}, fmt.Errorf("%w: %d codes for a %d-symbol alphabet", huffman.ErrInconsistentTable, numCodes, huffman.NumSymbols)
	}

	table := make(map[huffman.Code]huffman.Symbol, numCodes)
	for i := uint64(0); i < numCodes && br.err == nil; i++ {
		entry := br.bytes(2, "code entry")
		bits := br.uvarint("code bits")
		if br.err != nil {
			break
		}
		hc := huffman.MakeCode(entry[1], bits)
		if _, dup := table[hc]; dup {
			return huffman.Artifact{}, fmt.Errorf("%w: code %s appears twice", huffman.ErrInconsistentTable, hc)
		}
		table[hc] = huffman.Symbol(entry[0])
	}

	bitLength := br.uvarint("bit length")
	byteLength := br.uvarint("payload length")
	payload := br.bytes(byteLength, "payload")
	if br.err != nil {
		return huffman.Artifact{}, br.err
	}
	if len(br.buf) != 0 {
		return huffman.Artifact{}, fmt.Errorf("%w: %d trailing bytes after payload", huffman.ErrMalformedArtifact, len(br.buf))
	}
	if expect := (bitLength + 7) / 8; byteLength != expect {
		return huffman.Artifact{}, fmt.Errorf("%w: %d payload bytes for %d bits, expected %d", huffman.ErrMalformedArtifact, byteLength, bitLength, expect)
	}

	return huffman.Artifact{
		Table: table,
		Payload: huffman.PackedPayload{
			Bytes:     append([]byte(nil), payload...),
			BitLength: bitLength,
		},
	}, nil
}
