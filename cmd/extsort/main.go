// Command extsort drives the external sort engine over a binary file of
// uint32 records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Siarh199/external-sorter"
)

func main() {
	os.Exit(run())
}

func run() int {
	mem := flag.Uint64("mem", 128*1024*1024, "memory budget in bytes")
	in := flag.String("in", "input", "path to the binary input file")
	out := flag.String("out", ".", "output directory (holds output and intermediate/)")
	workers := flag.Int("workers", 0, "worker pool size (0 = auto)")
	unique := flag.Bool("unique", false, "suppress duplicate records in the output")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	log := extsort.NewTextLogger(level)

	cfg := extsort.Config{
		AvailableMemory:     *mem,
		InputFilePath:       *in,
		OutputDirectoryPath: *out,
		Workers:             *workers,
		Deduplicate:         *unique,
		Logger:              log,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := extsort.Sort[uint32](ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "extsort: %v\n", err)
		return 1
	}
	return 0
}
