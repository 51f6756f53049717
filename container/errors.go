package container

import "errors"

var (
	// ErrBadMagic is returned when the input does not start with the
	// container magic.
	ErrBadMagic = errors.New("not a Huffman container: bad magic")

	// ErrUnsupportedVersion is returned for containers written by a newer
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported container version")

	// ErrUnknownCompression is returned for an unrecognized compression
	// byte or name.
	ErrUnknownCompression = errors.New("unknown container compression")

	// ErrChecksumMismatch is returned when the trailing checksum does not
	// match the container contents.
	ErrChecksumMismatch = errors.New("container checksum mismatch")

	// ErrTruncated is returned when the input ends before a complete
	// container has been read.
	ErrTruncated = errors.New("truncated container")
)
