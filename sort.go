package extsort

import (
	"context"
	"errors"

	"github.com/Siarh199/external-sorter/internal/numeric"
	"github.com/Siarh199/external-sorter/merge"
	"github.com/Siarh199/external-sorter/pool"
	"github.com/Siarh199/external-sorter/scratch"
)

// errUsefulBudgetTooSmall is wrapped into a *Error(KindConfig) when the
// derived useful budget B_u falls below the 2 MiB floor.
var errUsefulBudgetTooSmall = errors.New("useful memory budget below 2 MiB floor")

// Sort runs the full two-phase external sort described by cfg: chunking
// followed by a k-way merge, sharing one worker pool across both phases.
//
// ctx cancellation aborts the run at the next busy-wait or phase-barrier
// checkpoint; a canceled Sort leaves the scratch directory and any partial
// output in place for the caller to clean up, matching the non-deletion
// non-goal for intermediate state.
func Sort[N Number](ctx context.Context, cfg Config) error {
	recSize := numeric.SizeOf[N]()

	// canceled tags an abort caused by ctx as KindCanceled; the context
	// error stays reachable through Unwrap.
	canceled := func(err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return newError(KindCanceled, "sort", "", err)
		}
		return err
	}

	bu :=numeric.RoundDown[N](int(cfg.AvailableMemory) * usefulMemoryNumerator / usefulMemoryDenominator)
	if bu < minUsefulMemory {
		return newError(KindConfig, "compute useful budget", "", errUsefulBudgetTooSmall)
	}

	log := cfg.logger()
	workers := cfg.workerCount()

	dir := scratch.New(cfg.OutputDirectoryPath)
	if err := dir.Create(); err != nil {
		return newError(KindFilesystem, "create scratch directory", cfg.OutputDirectoryPath, err)
	}

	input, err := openInput(cfg.InputFilePath)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := openOutput(dir.OutputPath())
	if err != nil {
		return err
	}

	p := pool.New(workers)
	defer p.Close()

	chunkRecords := bu / (workers * recSize)
	if chunkRecords < 1 {
		chunkRecords = 1
	}

	log.Info("starting chunking phase", "workers", workers, "chunk_records", chunkRecords)

	if err := chunkingPhase[N](ctx, input, p, dir, workers, chunkRecords, log); err != nil {
		output.Close()
		return canceled(err)
	}

	readBudgetTotal := bu * readBudgetNumerator / readBudgetDenominator
	writeBudget := bu - readBudgetTotal

	runCount := dir.RunCount()
	runPaths := make([]string, runCount)
	for i := range runPaths {
		runPaths[i] = dir.RunPath(uint32(i))
	}

	log.Info("starting merge phase", "runs", runCount)

	mergeCfg := merge.Config{
		ReadBudgetBytes:  readBudgetTotal,
		WriteBudgetBytes: writeBudget,
		Deduplicate:      cfg.Deduplicate,
	}
	if err := merge.Merge[N](ctx, p, runPaths, output, mergeCfg); err != nil {
		output.Close()
		return canceled(err)
	}

	if err := output.Close(); err != nil {
		return newError(KindIOWrite, "close output", dir.OutputPath(), err)
	}

	log.Info("sort complete", "output", dir.OutputPath())
	return nil
}
