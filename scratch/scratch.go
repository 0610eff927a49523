// Package scratch manages the intermediate/ scratch subdirectory that the
// chunking phase writes sorted runs into: a buffered writer over an
// *os.File per run, addressed by a monotonically increasing run id, plus
// the final output file path. Runs are always read back whole, never by
// sub-section.
package scratch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

// fileBufferSize is the IO buffer size used for writing each run file.
const fileBufferSize = 1 << 16 // 64k

const (
	outputFileName             = "output"
	intermediateDirectoryName  = "intermediate"
	intermediateFileNamePrefix = "chunk_"
)

// Dir manages the scratch layout rooted at an output directory: the final
// "output" file path and the "intermediate/" run directory.
type Dir struct {
	outputDirectory string
	intermediateDir string
	runCounter      atomic.Uint32
}

// New returns a Dir rooted at outputDirectory. It does not touch the
// filesystem; call Create to make the intermediate directory.
func New(outputDirectory string) *Dir {
	return &Dir{
		outputDirectory: outputDirectory,
		intermediateDir: filepath.Join(outputDirectory, intermediateDirectoryName),
	}
}

// Create creates the intermediate directory (and the output directory if
// needed). It is safe to call if the directories already exist.
func (d *Dir) Create() error {
	return os.MkdirAll(d.intermediateDir, 0o755)
}

// OutputPath returns the path of the final sorted output file.
func (d *Dir) OutputPath() string {
	return filepath.Join(d.outputDirectory, outputFileName)
}

// RunPath returns the path of the run file assigned id.
func (d *Dir) RunPath(id uint32) string {
	return filepath.Join(d.intermediateDir, fmt.Sprintf("%s%d", intermediateFileNamePrefix, id))
}

// NextRunID performs the fetch-and-increment on the run counter: the sole
// authority for intermediate file naming, guaranteeing each successful
// increment yields a unique id.
func (d *Dir) NextRunID() uint32 {
	return d.runCounter.Add(1) - 1
}

// RunCount returns the number of runs assigned so far.
func (d *Dir) RunCount() uint32 {
	return d.runCounter.Load()
}

// CreateRunWriter creates (or truncates) the run file at path and returns
// the file together with a buffered writer over it. The caller flushes the
// writer and closes the file.
func CreateRunWriter(path string) (*os.File, *bufio.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, bufio.NewWriterSize(f, fileBufferSize), nil
}
