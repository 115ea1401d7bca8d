package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/san-kum/bethesim/internal/config"
	"github.com/san-kum/bethesim/internal/export"
	"github.com/san-kum/bethesim/internal/metrics"
	"github.com/san-kum/bethesim/internal/physics"
	"github.com/san-kum/bethesim/internal/storage"
	"github.com/san-kum/bethesim/internal/sweep"
	"github.com/san-kum/bethesim/internal/viz"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// execute sweeps every configured variant with p, writes text files, plots
// and metadata under cfg.Output and prints a summary per variant to out.
func execute(ctx context.Context, out io.Writer, log *zap.Logger, cfg *config.Config, p physics.CorrectionParameters, showPreview bool) (*storage.RunMetadata, error) {
	vs, err := cfg.GetVariants()
	if err != nil {
		return nil, err
	}
	sc := cfg.SweepConfig()
	model := physics.NewWaterModel()

	st := storage.New(cfg.Output)
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var renderer export.Renderer
	if !cfg.Plot.Disabled {
		renderer, err = export.New(cfg.Plot.Format, cfg.Plot.Width, cfg.Plot.Height)
		if err != nil {
			return nil, err
		}
	}

	start := time.Now()
	results, err := sweep.All(ctx, model, sc, p, vs)
	if err != nil {
		return nil, err
	}
	log.Debug("sweep finished",
		zap.Int("variants", len(results)),
		zap.Int("points", sc.Points),
		zap.Duration("elapsed", time.Since(start)),
	)

	reference := referenceCurve(results)
	if reference == nil {
		reference = sweep.Sweep(model, sc, physics.NoCorrection, p)
	}

	meta := storage.NewRunMetadata(p, sc)
	for _, r := range results {
		logSamples(log, r)

		path, err := st.SaveCurve(r.Variant, r.Curve)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", r.Variant, err)
		}
		files := []string{path}

		rec := storage.VariantRecord{
			Variant: r.Variant.String(),
			File:    filepath.Base(path),
			Metrics: metrics.Evaluate(r.Curve, metrics.Default(reference)...),
		}

		if renderer != nil {
			plotPath, err := renderPlot(log, renderer, st.Dir(), r)
			if err != nil {
				return nil, err
			}
			rec.Plot = filepath.Base(plotPath)
			files = append(files, plotPath)
		}

		meta.Variants = append(meta.Variants, rec)

		fmt.Fprintln(out, viz.Summary(r.Variant, r.Curve, files, rec.Metrics))
		if showPreview {
			fmt.Fprintln(out, viz.Preview(r.Curve, r.Variant.Caption(), 80, 12))
		}
	}

	if err := st.SaveMetadata(meta); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}
	fmt.Fprintf(out, "run id: %s\n", meta.ID)
	return meta, nil
}

func referenceCurve(results []sweep.Result) sweep.Curve {
	for _, r := range results {
		if r.Variant == physics.NoCorrection {
			return r.Curve
		}
	}
	return nil
}

func renderPlot(log *zap.Logger, renderer export.Renderer, dir string, r sweep.Result) (string, error) {
	if _, skipped := export.Positive(r.Curve); skipped > 0 {
		log.Warn("skipping points a log axis cannot show",
			zap.Stringer("variant", r.Variant),
			zap.Int("skipped", skipped),
		)
	}

	path := filepath.Join(dir, export.FileName(r.Variant.Title(), renderer.Ext()))
	if err := renderer.Render(path, r.Curve, r.Variant.Caption(), r.Variant.Title()); err != nil {
		return "", fmt.Errorf("render %s: %w", r.Variant, err)
	}
	return path, nil
}

func logSamples(log *zap.Logger, r sweep.Result) {
	if !log.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	for _, pt := range r.Curve {
		log.Debug("dE/dx",
			zap.Stringer("variant", r.Variant),
			zap.Float64("energy_mev", pt.EnergyMeV),
			zap.Float64("mev_per_cm", pt.StoppingPower),
		)
	}
}
