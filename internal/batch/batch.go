// Package batch grows runs of consecutive seeds on a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/eztree/pkg/tree"
)

// Sink receives each finished tree. Calls are serialized and arrive in seed
// order.
type Sink func(seed int64, t *tree.Tree) error

// Run grows count trees with seeds opts.Seed, opts.Seed+1, ... on workers
// goroutines (0 means one per CPU) and passes each to sink. It stops at the
// first sink error or when ctx is cancelled, and returns that error. Trees
// not yet started are skipped.
func Run(ctx context.Context, opts tree.Options, count, workers int, log *zap.Logger, sink Sink) error {
	if count <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gen := tree.NewGenerator(opts, log)
	base := gen.Options().Seed
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	pool := pond.NewPool(workers, pond.WithContext(ctx))
	defer pool.StopAndWait()
	defer cancel()

	trees := make([]*tree.Tree, count)
	tasks := make([]pond.Task, count)
	for i := range count {
		tasks[i] = pool.Submit(func() {
			trees[i] = gen.GenerateSeed(base + int64(i))
		})
	}

	for i, task := range tasks {
		seed := base + int64(i)
		err := task.Wait()
		// A stopped pool reports its own error; cancellation is the cause.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return fmt.Errorf("seed %d: %w", seed, err)
		}
		if err := sink(seed, trees[i]); err != nil {
			return fmt.Errorf("seed %d: %w", seed, err)
		}
		// Release the mesh once it has been handed off.
		trees[i] = nil
	}

	log.Info("batch complete",
		zap.Int("trees", count),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
