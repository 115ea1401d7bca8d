package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/bethesim/internal/config"
	"github.com/san-kum/bethesim/internal/physics"
	"github.com/san-kum/bethesim/internal/storage"
	"github.com/san-kum/bethesim/internal/sweep"
	"github.com/san-kum/bethesim/internal/viz"
	"github.com/spf13/cobra"
)

func listOutput(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(outputDir)
	entries, err := st.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "no output in %s\n", outputDir)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSIZE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\n", e.Name, e.Size)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	meta, err := loadMetadata(st)
	if err != nil {
		return err
	}
	if meta != nil {
		fmt.Fprintf(out, "\nrun id: %s\n", meta.ID)
		fmt.Fprintf(out, "time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "parameters: a=%g x0=%g x1=%g c=%g m=%g\n",
			meta.Parameters.A, meta.Parameters.X0, meta.Parameters.X1, meta.Parameters.C, meta.Parameters.M)
		fmt.Fprintf(out, "sweep: %d points, %g MeV step\n", meta.Points, meta.StepMeV)
	}
	return nil
}

func plotCurves(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(outputDir)

	if len(args) == 1 {
		v, err := physics.ParseVariant(args[0])
		if err != nil {
			return err
		}
		curve, err := st.LoadCurve(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "variant: %s\nsamples: %d\n\n", v, len(curve))
		fmt.Fprintln(out, viz.Preview(curve, v.Caption(), 80, 15))
		return nil
	}

	results, err := loadResults(st)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, viz.PreviewMany(results, 80, 15))
	return nil
}

func compareVariants(cmd *cobra.Command, args []string) error {
	energies := []float64{100}
	if len(args) > 0 {
		energies = energies[:0]
		for _, a := range args {
			e, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("invalid energy %q: %w", a, err)
			}
			energies = append(energies, e)
		}
	}

	p := physics.DefaultParameters()
	if preset != "" {
		d := config.GetPreset(preset)
		if d == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg := config.Config{Density: *d}
		p = cfg.Parameters()
	}

	model := physics.NewWaterModel()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "E (MeV)\tbeta\tbeta*gamma\tdelta\tshell\tvariant\tdE/dx (MeV/cm)\t")
	for _, e := range energies {
		beta := model.Beta(e)
		bg := physics.BetaGamma(beta)
		delta := physics.DensityEffect(beta, p)
		shell := physics.ShellTerm(bg, model.Ionization())
		for _, v := range physics.Variants() {
			fmt.Fprintf(w, "%.1f\t%.6f\t%.6f\t%.6f\t%.6g\t%s\t%.6e\t\n",
				e, beta, bg, delta, shell, v, model.StoppingPower(e, v, p))
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tA\tX0\tX1\tC\tM")
	for _, name := range config.ListPresets() {
		d := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\n", name, d.A, d.X0, d.X1, d.C, d.M)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	results, err := loadResults(storage.New(outputDir))
	if err != nil {
		return err
	}
	return storage.ExportCSV(cmd.OutOrStdout(), results)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(outputDir)
	results, err := loadResults(st)
	if err != nil {
		return err
	}
	meta, err := loadMetadata(st)
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, results)
}

func loadResults(st *storage.Store) ([]sweep.Result, error) {
	results, err := st.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no curves in %s: %w", st.Dir(), storage.ErrNoCurve)
	}
	return results, nil
}

// loadMetadata returns nil without error when no run has been recorded.
func loadMetadata(st *storage.Store) (*storage.RunMetadata, error) {
	meta, err := st.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return meta, err
}
