package merge

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/Siarh199/external-sorter/internal/numeric"
	"github.com/Siarh199/external-sorter/pool"
)

// writeBuffer is one half of the output double buffer (w0/w1): ready_to_fill
// starts true, is cleared when the buffer is handed to a writeback task, and
// is restored to true (release ordering) when that task completes.
type writeBuffer[N numeric.Number] struct {
	data        []N
	readyToFill atomic.Bool
}

// Config carries the merge phase's share of the memory budget and its
// optional dedup behaviour.
type Config struct {
	// ReadBudgetBytes is B_read_total, split equally across all runs.
	ReadBudgetBytes int
	// WriteBudgetBytes is B_w, halved into the two writeback buffers.
	WriteBudgetBytes int
	// Deduplicate suppresses a record equal to the immediately preceding
	// written record. Off by default.
	Deduplicate bool
}

// Merge opens a Reader per run and merges them via a min-heap with the
// continue-while-still-min optimisation, writing the result to output using
// a double-buffered asynchronous writer. If runPaths is empty the phase is
// a no-op.
func Merge[N numeric.Number](ctx context.Context, p *pool.Pool, runPaths []string, output *os.File, cfg Config) error {
	r := len(runPaths)
	if r == 0 {
		return nil
	}

	perRunBudget := numeric.RoundDown[N](cfg.ReadBudgetBytes / r)

	readers := make([]*Reader[N], 0, r)
	defer func() {
		for _, rd := range readers {
			rd.Close()
		}
	}()

	for _, path := range runPaths {
		rd, err := Open[N](p, path, perRunBudget)
		if err != nil {
			return err
		}
		readers = append(readers, rd)
	}

	h := NewHeap[N]()
	for i, rd := range readers {
		if err := rd.WaitFirst(ctx); err != nil {
			return err
		}
		v, ok, err := rd.Get(ctx)
		if err != nil {
			return err
		}
		if ok {
			h.Push(i, v)
		}
	}

	if h.Len() == 0 {
		return nil
	}

	kw := (cfg.WriteBudgetBytes / 2) / numeric.SizeOf[N]()
	if kw < 1 {
		kw = 1
	}

	w0 := &writeBuffer[N]{data: make([]N, kw)}
	w1 := &writeBuffer[N]{data: make([]N, kw)}
	w0.readyToFill.Store(true)
	w1.readyToFill.Store(true)

	wCur, wOther := w0, w1
	j := 0

	var lastWritten N
	haveLast := false

	flushAndSwap := func() error {
		if err := p.WaitReady(ctx, &wOther.readyToFill); err != nil {
			return err
		}
		wCur, wOther = wOther, wCur
		wOther.readyToFill.Store(false)

		batch := wOther
		p.Submit(func() error {
			if _, err := output.Write(numeric.AsBytes(batch.data)); err != nil {
				return err
			}
			batch.readyToFill.Store(true)
			return nil
		})

		j = 0
		return nil
	}

	emit := func(n N) error {
		if cfg.Deduplicate && haveLast && n == lastWritten {
			return nil
		}
		if j == kw {
			if err := flushAndSwap(); err != nil {
				return err
			}
		}
		wCur.data[j] = n
		j++
		lastWritten = n
		haveLast = true
		return nil
	}

	for h.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		runIdx, v := h.PopMin()
		if err := emit(v); err != nil {
			return err
		}

		top, hasTop := h.PeekMinValue()

		for {
			n, ok, err := readers[runIdx].Get(ctx)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if !hasTop || n <= top {
				if err := emit(n); err != nil {
					return err
				}
				continue
			}
			h.Push(runIdx, n)
			break
		}
	}

	// Let the last submitted batch land before the tail so output order is
	// preserved and no writeback task is still running when Merge returns.
	if err := p.WaitReady(ctx, &wOther.readyToFill); err != nil {
		return err
	}

	if j > 0 {
		if _, err := output.Write(numeric.AsBytes(wCur.data[:j])); err != nil {
			return err
		}
	}

	return p.CheckFailure()
}
