package huffman

// Symbol represents one unit of input.  The alphabet is the set of all byte
// values.
type Symbol byte

// NumSymbols is the size of the Symbol alphabet.
const NumSymbols = 256
