// Package merge implements the k-way merge phase and its double-buffered
// run reader: reading a single on-disk run as a lazy stream of records,
// prefetching the next block on the shared worker pool while the consumer
// drains the current one, then merging all runs into the final output
// using a min-heap and a double-buffered asynchronous writer.
package merge

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/Siarh199/external-sorter/internal/ioutil"
	"github.com/Siarh199/external-sorter/internal/numeric"
	"github.com/Siarh199/external-sorter/pool"
)

// buffer is one half of a Reader's double buffer: an owned
// records slice plus the readiness flag synchronising the pool task that
// fills it with the thread that consumes it. Only the pool task writes the
// contents and numbersRead; only the consumer reads them, and only after
// observing ready == true (release/acquire via atomic.Bool).
type buffer[N numeric.Number] struct {
	data        []N
	numbersRead int
	ready       atomic.Bool
}

// Reader is the double-buffered run reader: open() submits a task
// that loads b0 then b1; get() yields records in run order, swapping buffers
// and scheduling a refill exactly when the active buffer is drained.
type Reader[N numeric.Number] struct {
	pool *pool.Pool
	file *os.File
	path string

	numbersPerBuf int
	b0, b1        *buffer[N]
	cursor        int
}

// Open opens the run at path and submits the initial load of both buffers.
// Non-blocking: the caller must call WaitFirst before the first Get.
// readBudgetBytes is this reader's share of B_read_total; it is halved
// internally into b0/b1 (k_r = floor(readBudgetBytes/(2*sizeof(N)))).
func Open[N numeric.Number](p *pool.Pool, path string, readBudgetBytes int) (*Reader[N], error) {
	f, err := ioutil.OpenInput(path)
	if err != nil {
		return nil, err
	}

	recSize := numeric.SizeOf[N]()
	numbersPerBuf := (readBudgetBytes / 2) / recSize
	if numbersPerBuf < 1 {
		numbersPerBuf = 1
	}

	r := &Reader[N]{
		pool:          p,
		file:          f,
		path:          path,
		numbersPerBuf: numbersPerBuf,
		b0:            &buffer[N]{data: make([]N, numbersPerBuf)},
		b1:            &buffer[N]{data: make([]N, numbersPerBuf)},
	}

	p.Submit(func() error {
		if err := r.load(r.b0); err != nil {
			return err
		}
		if err := r.load(r.b1); err != nil {
			return err
		}
		return nil
	})

	return r, nil
}

// load reads up to len(b.data) records into b, records numbersRead, and
// publishes readiness with release ordering. EOF is not a failure: it
// yields a short read with numbersRead >= 0 (including 0).
func (r *Reader[N]) load(b *buffer[N]) error {
	byteBuf := numeric.AsBytes(b.data)
	ok, n, cause := ioutil.ReadExactOrEOF(r.file, byteBuf)
	if !ok {
		return cause
	}
	b.numbersRead = n / numeric.SizeOf[N]()
	b.ready.Store(true)
	return nil
}

// WaitFirst blocks until b0 is ready. Must be called once before the first Get.
func (r *Reader[N]) WaitFirst(ctx context.Context) error {
	return r.pool.WaitReady(ctx, &r.b0.ready)
}

// Get yields the next record in run order; it returns false when the run is
// exhausted (not a failure). A non-nil error means a hard read failure
// occurred in a load task.
func (r *Reader[N]) Get(ctx context.Context) (value N, ok bool, err error) {
	if r.cursor < r.b0.numbersRead {
		v := r.b0.data[r.cursor]
		r.cursor++
		return v, true, nil
	}
	if r.b0.numbersRead == 0 {
		return value, false, nil
	}

	if err := r.pool.WaitReady(ctx, &r.b1.ready); err != nil {
		return value, false, err
	}

	r.b0, r.b1 = r.b1, r.b0
	r.cursor = 0

	r.b1.ready.Store(false)
	r.b1.numbersRead = 0

	r.pool.Submit(func() error { return r.load(r.b1) })

	return r.Get(ctx)
}

// Close releases the underlying file handle.
func (r *Reader[N]) Close() error {
	return r.file.Close()
}
