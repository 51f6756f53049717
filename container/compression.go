package container

import (
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how the container body is compressed.
type Compression uint8

const (
	CompressionNone Compression = 0x0 // CompressionNone stores the body raw.
	CompressionS2   Compression = 0x1 // CompressionS2 represents S2 compression.
	CompressionZstd Compression = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionLZ4  Compression = 0x3 // CompressionLZ4 represents LZ4 block compression.
)

// String returns the name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionS2:
		return "s2"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as returned by String.  The
// empty string means CompressionNone.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "s2":
		return CompressionS2, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// bodyCodec compresses a container body.  decompress is told the exact raw
// size, which the container records.
type bodyCodec interface {
	compress(data []byte) ([]byte, error)
	decompress(data []byte, rawLen int) ([]byte, error)
}

func codecFor(c Compression) (bodyCodec, error) {
	switch c {
	case CompressionNone:
		return noopCodec{}, nil
	case CompressionS2:
		return s2Codec{}, nil
	case CompressionZstd:
		return zstdCodec{}, nil
	case CompressionLZ4:
		return lz4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
}

type noopCodec struct{}

func (noopCodec) compress(data []byte) ([]byte, error) {
	return data, nil
}

func (noopCodec) decompress(data []byte, _ int) ([]byte, error) {
	return data, nil
}

type s2Codec struct{}

func (s2Codec) compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (s2Codec) decompress(data []byte, rawLen int) ([]byte, error) {
	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n != rawLen {
		return nil, fmt.Errorf("s2 decompression failed: decoded length %d, expected %d", n, rawLen)
	}
	return s2.Decode(make([]byte, rawLen), data)
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(maxBodySize),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false), // the container has its own checksum
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}
		return encoder
	},
}

type zstdCodec struct{}

func (zstdCodec) compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

func (zstdCodec) decompress(data []byte, rawLen int) ([]byte, error) {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// rawLen comes from the header and is only checked after decoding.
	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	return out, nil
}

// lz4MaxRatio is the largest expansion an LZ4 block can encode: a match
// costs at least one byte per 255 bytes of output.
const lz4MaxRatio = 255

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type lz4Codec struct{}

// compress returns nil if the data is incompressible.
func (lz4Codec) compress(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

func (lz4Codec) decompress(data []byte, rawLen int) ([]byte, error) {
	if limit := uint64(len(data)) * lz4MaxRatio; uint64(rawLen) > limit {
		return nil, fmt.Errorf("lz4 decompression failed: %d bytes cannot expand to %d", len(data), rawLen)
	}
	dst := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	return dst[:n], nil
}
