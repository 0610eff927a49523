// Package numeric defines the fixed-width record type constraint shared by
// the top-level extsort package and the merge package, and the small set of
// layout helpers (sizeof, rounding, byte reinterpretation) both need. It
// exists so the merge package does not have to import the root extsort
// package (which would create an import cycle, since extsort imports merge).
package numeric

import "unsafe"

// Number is the set of fixed-width numeric kinds the sorter can operate on:
// a total order, a fixed in-memory width, and a native (host) byte layout
// with no framing.
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// SizeOf returns sizeof(N) in bytes.
func SizeOf[N Number]() int {
	var zero N
	return int(unsafe.Sizeof(zero))
}

// RoundDown rounds x down to the nearest multiple of sizeof(N).
func RoundDown[N Number](x int) int {
	sz := SizeOf[N]()
	return (x / sz) * sz
}

// AsBytes reinterprets a records buffer as a byte slice over the same
// backing array, for reading/writing with the standard I/O primitives. This
// relies on the host's native layout for N: no encoding conversion is
// performed.
func AsBytes[N Number](records []N) []byte {
	if len(records) == 0 {
		return nil
	}
	sz := SizeOf[N]()
	return unsafe.Slice((*byte)(unsafe.Pointer(&records[0])), len(records)*sz)
}
