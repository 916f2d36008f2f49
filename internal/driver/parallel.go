package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"crest/internal/hir"
)

// EliminateAll runs the pass over every module concurrently. Modules are
// independent, so each worker owns its module outright; results keep the
// input order. The first failure cancels the remaining work.
func (o Options) EliminateAll(ctx context.Context, mods []*hir.Module) ([]ModuleResult, error) {
	if len(mods) == 0 {
		return nil, nil
	}

	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slots are per-goroutine, no mutex needed.
	results := make([]ModuleResult, len(mods))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(mods)))

	for i, m := range mods {
		i, m := i, m
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := o.EliminateModule(gctx, m)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
