package sweep

import (
	"context"

	"github.com/san-kum/bethesim/internal/physics"
	"golang.org/x/sync/errgroup"
)

const minChunk = 64

// Sweep evaluates variant v at cfg.Points energies starting at one step.
// It returns an empty curve when cfg.Points is not positive.
func Sweep(m *physics.Model, cfg Config, v physics.Variant, p physics.CorrectionParameters) Curve {
	if cfg.Points <= 0 {
		return Curve{}
	}

	unit := m.Constants().EnergyUnit
	curve := make(Curve, cfg.Points)

	ParallelFor(cfg.Points, minChunk, cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			e := cfg.EnergyAt(i, unit)
			curve[i] = EnergyPoint{
				EnergyMeV:     e,
				StoppingPower: m.StoppingPower(e, v, p),
			}
		}
	})

	return curve
}

type Result struct {
	Variant physics.Variant
	Curve   Curve
}

// All sweeps every requested variant concurrently and returns the results in
// the order of variants.
func All(ctx context.Context, m *physics.Model, cfg Config, p physics.CorrectionParameters, variants []physics.Variant) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, ErrNoVariants
	}

	results := make([]Result, len(variants))
	g, ctx := errgroup.WithContext(ctx)

	for i, v := range variants {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Variant: v, Curve: Sweep(m, cfg, v, p)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
