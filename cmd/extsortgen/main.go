// Command extsortgen writes a fixture file of uniformly distributed uint32
// records, the Go counterpart of the reference test suite's
// generateInputFile helper.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

func randSeed() int64 {
	return time.Now().UnixNano()
}

func main() {
	os.Exit(run())
}

func run() int {
	count := flag.Uint64("count", 1<<20, "number of records to generate")
	max := flag.Uint("max", 1<<32-1, "maximum record value (inclusive)")
	out := flag.String("out", "input", "output file path")
	seed := flag.Int64("seed", 0, "PRNG seed (0 = time-seeded)")
	flag.Parse()

	seedValue := *seed
	if seedValue == 0 {
		seedValue = randSeed()
	}
	rng := rand.New(rand.NewSource(seedValue))

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extsortgen: %v\n", err)
		return 1
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<16)
	buf := make([]byte, 4)
	maxVal := uint32(*max)
	for i := uint64(0); i < *count; i++ {
		v := rng.Uint32()
		if maxVal+1 != 0 {
			v %= maxVal + 1
		}
		binary.NativeEndian.PutUint32(buf, v)
		if _, err := w.Write(buf); err != nil {
			fmt.Fprintf(os.Stderr, "extsortgen: write: %v\n", err)
			return 1
		}
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "extsortgen: flush: %v\n", err)
		return 1
	}
	return 0
}
