package extsort

import (
	"io"
	"os"

	"github.com/Siarh199/external-sorter/internal/ioutil"
)

// openInput opens path for reading in binary mode, raising KindIOOpen on failure.
func openInput(path string) (*os.File, error) {
	f, err := ioutil.OpenInput(path)
	if err != nil {
		return nil, newError(KindIOOpen, "open input", path, err)
	}
	return f, nil
}

// openOutput creates path for writing in binary mode, raising KindIOOpen on failure.
func openOutput(path string) (*os.File, error) {
	f, err := ioutil.OpenOutput(path)
	if err != nil {
		return nil, newError(KindIOOpen, "open output", path, err)
	}
	return f, nil
}

// readExactOrEOF implements the three-valued read primitive; see
// internal/ioutil for the shared implementation used by both this package
// and package merge.
func readExactOrEOF(r io.Reader, buf []byte) (ok bool, n int, cause error) {
	return ioutil.ReadExactOrEOF(r, buf)
}
