package extsort

import "runtime"

// minUsefulMemory is the floor below which B_u is too small to run at all
// (2 MiB, the memory-bound invariant from the data model).
const minUsefulMemory = 2 * 1024 * 1024

// usefulMemoryNumerator/usefulMemoryDenominator compute
// B_u = floor(B * 9/16), the fraction of the raw budget available for
// sort/merge buffers once pool stacks and structural overhead are excluded.
const (
	usefulMemoryNumerator   = 9
	usefulMemoryDenominator = 16
)

// readBudgetNumerator/readBudgetDenominator split B_u into the run-reader
// budget (3/4) and the output-writer budget (the remainder).
const (
	readBudgetNumerator   = 3
	readBudgetDenominator = 4
)

// Config holds the caller-specified configuration surface. Only
// AvailableMemory, InputFilePath, and OutputDirectoryPath are required; the
// rest default to sensible sizing rules.
type Config struct {
	// AvailableMemory is the total memory budget in bytes. B_u is derived as
	// floor(9/16 * AvailableMemory), rounded down to a multiple of sizeof(N),
	// and must be >= 2 MiB.
	AvailableMemory uint64

	// InputFilePath is the path to the binary input file.
	InputFilePath string

	// OutputDirectoryPath is the directory for the final "output" file and
	// the "intermediate/" scratch subdirectory. Created if it does not exist.
	OutputDirectoryPath string

	// Workers overrides the worker pool size. Zero means
	// max(2, GOMAXPROCS) - 1, the reference sizing rule.
	Workers int

	// Deduplicate, when true, suppresses a merged record equal to the
	// immediately preceding written record. Off by
	// default, so default behaviour preserves the input multiset exactly.
	Deduplicate bool

	// Logger receives a handful of phase-boundary log lines. A nil Logger
	// is replaced by a no-op logger.
	Logger *Logger
}

// workerCount returns P = max(2, hardware_parallelism) - 1, or the
// caller-supplied override.
func (c *Config) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	p := runtime.GOMAXPROCS(0)
	if p < 2 {
		p = 2
	}
	return p - 1
}

func (c *Config) logger() *Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return NoopLogger()
}
