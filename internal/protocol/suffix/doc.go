// Package suffix owns the attribution trailer appended to call data.
//
// Wire layout, read back to front:
//
//	[identifier: 0..255][length: 1][schema: 1][marker: 16, 0x8021 x8]
//
// Execution targets ignore the trailing bytes; off-chain consumers recover
// the identifier with ExtractTrailer.
package suffix
