// Package huffman implements a static Huffman codec for byte sequences.
//
// Encode counts the input's symbols, builds a Huffman tree from the counts,
// flattens the tree into a pair of code tables and packs the concatenated
// codes into bytes.  The resulting Artifact carries everything Decode needs:
// the code→symbol table, the packed bytes and the number of meaningful bits.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
//
//	<https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.1.1
package huffman
