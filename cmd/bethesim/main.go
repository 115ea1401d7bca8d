package main

import (
	"fmt"
	"os"

	"github.com/san-kum/bethesim/internal/config"
	"github.com/san-kum/bethesim/internal/logging"
	"github.com/san-kum/bethesim/internal/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	outputDir   string
	verbose     bool
	points      int
	stepMeV     float64
	configFile  string
	preset      string
	variants    []string
	plotFormat  string
	noPlot      bool
	preview     bool
	useDefaults bool
	useTUI      bool

	logger = zap.NewNop()
)

// main registers the commands and runs the root command, which behaves like
// run. It exits with status 1 if the command returns an error.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bethesim [a x0 x1 c m]",
		Short: "Bethe-Bloch stopping power of protons in water",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE:         runStopping,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&outputDir, "output", config.DefaultOutput, "output directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every sample")
	addRunFlags(rootCmd.Flags())

	runCmd := &cobra.Command{
		Use:   "run [a x0 x1 c m]",
		Short: "compute stopping power curves",
		Args:  cobra.ArbitraryArgs,
		RunE:  runStopping,
	}
	addRunFlags(runCmd.Flags())

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list output files",
		Args:  cobra.NoArgs,
		RunE:  listOutput,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [variant]",
		Short: "preview stored curves in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotCurves,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [energy_mev...]",
		Short: "compare the four variants at given energies",
		RunE:  compareVariants,
	}
	compareCmd.Flags().StringVar(&preset, "preset", "", "density parameter preset")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list density parameter presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export stored curves to CSV",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export stored curves and run metadata to JSON",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, compareCmd, presetsCmd, exportCSVCmd, exportJSONCmd)
	return rootCmd
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.IntVar(&points, "points", config.DefaultPoints, "number of energy samples")
	fs.Float64Var(&stepMeV, "step", config.DefaultStepMeV, "energy step (MeV)")
	fs.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	fs.StringVar(&preset, "preset", "", "density parameter preset")
	fs.StringSliceVar(&variants, "variant", nil, "variants to compute (none, density, shell, all)")
	fs.StringVar(&plotFormat, "format", config.DefaultFormat, "plot format (png, svg)")
	fs.BoolVar(&noPlot, "no-plot", false, "skip plot rendering")
	fs.BoolVar(&preview, "preview", false, "print a terminal preview of each curve")
	fs.BoolVar(&useDefaults, "defaults", false, "use default parameters without asking")
	fs.BoolVar(&useTUI, "tui", false, "edit parameters in a terminal form")
}

// buildConfig layers defaults, config file, preset and explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		d := config.GetPreset(preset)
		if d == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Density = *d
	}

	flags := cmd.Flags()
	if flags.Changed("output") || configFile == "" {
		cfg.Output = outputDir
	}
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Changed("step") {
		cfg.StepMeV = stepMeV
	}
	if flags.Changed("variant") {
		cfg.Variants = variants
	}
	if flags.Changed("format") {
		cfg.Plot.Format = plotFormat
	}
	if noPlot {
		cfg.Plot.Disabled = true
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runStopping(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Verbose && !verbose {
		l, err := logging.New(true)
		if err != nil {
			return err
		}
		logger = l
	}

	resolver := &params.Resolver{
		Defaults:    cfg.Parameters(),
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Interactive: !useDefaults && configFile == "" && preset == "",
		TUI:         useTUI,
		Log:         logger,
	}
	p, src, err := resolver.Resolve(args)
	if err != nil {
		return fmt.Errorf("resolve parameters: %w", err)
	}
	logger.Info("correction parameters",
		zap.Stringer("source", src),
		zap.Float64("a", p.A),
		zap.Float64("x0", p.X0),
		zap.Float64("x1", p.X1),
		zap.Float64("c", p.C),
		zap.Float64("m", p.M),
	)

	_, err = execute(cmd.Context(), cmd.OutOrStdout(), logger, cfg, p, preview)
	return err
}
