// Package checksum implements an order-independent multiset digest over a
// binary file of fixed-width numeric records, used to confirm multiset
// preservation (testable property #2) and idempotence under re-sort
// (property #7) without holding either file in memory.
package checksum

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Siarh199/external-sorter/internal/ioutil"
	"github.com/Siarh199/external-sorter/internal/numeric"
)

// blockRecords is the number of records read per block while streaming a
// file for digesting; it mirrors the chunking phase's "read in fixed-size
// blocks under budget" convention without tying this package to a caller's
// memory budget.
const blockRecords = 1 << 14

// Digest is the combined per-record hash (XOR-folded, so it is commutative
// and associative across record order) plus the record count. Two files
// holding the same multiset of records produce equal Digests regardless of
// how those records are ordered or partitioned across runs.
type Digest struct {
	XOR   uint64
	Count uint64
}

// Combine folds other into d, producing the digest of the concatenation (in
// any order) of the two streams that produced d and other.
func (d Digest) Combine(other Digest) Digest {
	return Digest{XOR: d.XOR ^ other.XOR, Count: d.Count + other.Count}
}

// Equal reports whether d and other digest the same record multiset, modulo
// the hash collision probability of xxhash.
func (d Digest) Equal(other Digest) bool {
	return d == other
}

// Sum streams r in blocks of fixed-width N records and returns their Digest.
// A trailing partial record (a file size not a multiple of sizeof(N)) is
// dropped, matching the sorter's own short-read semantics.
func Sum[N numeric.Number](r io.Reader) (Digest, error) {
	recSize := numeric.SizeOf[N]()
	buf := make([]N, blockRecords)

	var d Digest
	for {
		byteBuf := numeric.AsBytes(buf)
		ok, n, cause := ioutil.ReadExactOrEOF(r, byteBuf)
		if !ok {
			return Digest{}, cause
		}
		if n == 0 {
			return d, nil
		}

		recordsRead := n / recSize
		block := numeric.AsBytes(buf[:recordsRead])
		for i := 0; i < recordsRead; i++ {
			d.XOR ^= xxhash.Sum64(block[i*recSize : (i+1)*recSize])
			d.Count++
		}
	}
}

// SumFile opens path and returns its Digest.
func SumFile[N numeric.Number](path string) (Digest, error) {
	f, err := ioutil.OpenInput(path)
	if err != nil {
		return Digest{}, err
	}
	defer f.Close()
	return Sum[N](f)
}

// SumFiles digests every path concurrently (one errgroup goroutine per
// file) and folds the results into a single combined Digest, for
// comparing an input file against every intermediate run it was chunked
// into without re-reading either serially.
func SumFiles[N numeric.Number](paths []string) (Digest, error) {
	digests := make([]Digest, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			d, err := SumFile[N](path)
			if err != nil {
				return err
			}
			digests[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Digest{}, err
	}

	var combined Digest
	for _, d := range digests {
		combined = combined.Combine(d)
	}
	return combined, nil
}
