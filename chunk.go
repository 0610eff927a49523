package extsort

import (
	"context"
	"os"
	"runtime"
	"sort"

	"github.com/Siarh199/external-sorter/pool"
	"github.com/Siarh199/external-sorter/scratch"
)

// chunkingPhase streams input, partitions it into chunkRecords-sized
// in-memory chunks, sorts each stably, and writes them as intermediate runs
// under dir.
//
// The free-list (a buffered channel of chunkRecords-sized buffers, one per
// worker) is the structural memory bound: the phase never allocates a new
// chunk buffer, so at most workers chunks are resident at once. A fast
// input with a slow sort, or a slow input with a fast sort, both self-throttle
// via the free-list.
func chunkingPhase[N Number](ctx context.Context, input *os.File, p *pool.Pool, dir *scratch.Dir, workers, chunkRecords int, log *Logger) error {
	recSize := sizeOfRecord[N]()

	freeList := make(chan []N, workers)
	for i := 0; i < workers; i++ {
		freeList <- make([]N, chunkRecords)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var buf []N
		select {
		case buf = <-freeList:
		default:
			runtime.Gosched()
			if err := p.CheckFailure(); err != nil {
				return err
			}
			continue
		}

		byteBuf := recordsAsBytes(buf[:chunkRecords])
		ok, n, cause := readExactOrEOF(input, byteBuf)
		if !ok {
			return newError(KindIORead, "read input chunk", "", cause)
		}

		if n == 0 {
			freeList <- buf
			break
		}

		recordsRead := n / recSize
		filled := buf[:recordsRead]

		p.Submit(func() error {
			sort.SliceStable(filled, func(i, j int) bool { return filled[i] < filled[j] })

			id := dir.NextRunID()
			if err := writeRun(dir.RunPath(id), filled); err != nil {
				return err
			}

			log.Debug("wrote run", "id", id, "records", len(filled))

			freeList <- buf[:chunkRecords]
			return nil
		})
	}

	for p.HasPending() {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}

	return p.CheckFailure()
}

// writeRun stably-sorted records to path as a new intermediate run file.
func writeRun[N Number](path string, records []N) error {
	f, w, err := scratch.CreateRunWriter(path)
	if err != nil {
		return newError(KindIOOpen, "create run", path, err)
	}
	defer f.Close()

	if _, err := w.Write(recordsAsBytes(records)); err != nil {
		return newError(KindIOWrite, "write run", path, err)
	}
	if err := w.Flush(); err != nil {
		return newError(KindIOWrite, "flush run", path, err)
	}
	return nil
}
