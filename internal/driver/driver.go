// Package driver runs the closure-elimination pipeline over whole modules:
// sequential or parallel execution, per-phase timings, and an on-disk report
// cache for tooling.
package driver

import (
	"context"
	"fmt"

	"crest/internal/hir"
	"crest/internal/lift"
	"crest/internal/observ"
	"crest/internal/project"
)

// Options configures a driver run.
type Options struct {
	Lift lift.Options
	// Jobs bounds parallelism in EliminateAll; 0 means one worker per CPU.
	Jobs int
	// Cache, when non-nil, records a report per processed module.
	Cache *LiftCache
}

// OptionsFromManifest maps a parsed crest.toml onto driver options.
func OptionsFromManifest(m project.Manifest) Options {
	return Options{
		Lift: lift.Options{
			MaxRounds: m.Lift.MaxRounds,
			Validate:  m.Lift.Validate,
		},
		Jobs: m.Lift.Jobs,
	}
}

// ModuleResult is the outcome of running the pass over one module.
type ModuleResult struct {
	Module string
	Result *lift.Result
	Timing observ.Report
}

// EliminateModule runs capture analysis and the rewrite over m, timing each
// phase. The module is mutated in place.
func (o Options) EliminateModule(ctx context.Context, m *hir.Module) (*ModuleResult, error) {
	if m == nil {
		return nil, fmt.Errorf("driver: nil module")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer := observ.NewTimer()

	idx := timer.Begin("analyze")
	an, err := lift.Analyze(m, o.Lift)
	if err != nil {
		return nil, fmt.Errorf("driver: %s: %w", m.Name, err)
	}
	timer.End(idx, fmt.Sprintf("%d rounds", an.Rounds()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx = timer.Begin("eliminate")
	res, err := lift.Eliminate(m, an, o.Lift)
	if err != nil {
		return nil, fmt.Errorf("driver: %s: %w", m.Name, err)
	}
	timer.End(idx, fmt.Sprintf("%d lifted", len(res.Lifted)))

	out := &ModuleResult{
		Module: m.Name,
		Result: res,
		Timing: timer.Report(),
	}

	if o.Cache != nil {
		idx = timer.Begin("cache")
		err := o.Cache.Put(ModuleDigest(m), newPayload(out))
		timer.End(idx, "")
		if err != nil {
			return nil, fmt.Errorf("driver: %s: cache write: %w", m.Name, err)
		}
		out.Timing = timer.Report()
	}
	return out, nil
}
