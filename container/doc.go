// Package container persists huffman.Artifact values.
//
// A container holds the three values that make up an Artifact: the
// code→symbol table, the packed bytes, and the number of meaningful bits.
// The layout is:
//
//	magic "HUFA" | version | compression | uvarint rawBodyLen |
//	body | xxhash64 of everything before it (little-endian)
//
// The raw body is:
//
//	uvarint numCodes
//	numCodes × { symbol byte | size byte | uvarint bits }
//	uvarint bitLength | uvarint len(bytes) | bytes
//
// The body may be compressed with S2, Zstandard or LZ4.  If compression would
// not make the body smaller it is stored raw, and the compression byte says
// so.
package container
