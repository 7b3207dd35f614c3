package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/metrics"
)

var (
	configFile string
	presetName string
	seed       int64
	logLevel   string

	frames      int
	numBodies   int
	maxSpeed    float64
	fixed       bool
	constrained bool
	pull        bool
	push        bool
	cursorX     float64
	cursorY     float64
	metricNames []string

	numRuns        int
	parallel       int
	ensembleBodies int

	scriptPath string
	svgPath    string
	svgWidth   int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	outPath string
)

// main registers the commands and runs the root command. With no
// subcommand the window frontend starts.
func main() {
	rootCmd := &cobra.Command{
		Use:          "ballpit",
		Short:        "interactive 2D ball physics toy",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&presetName, "preset", "", "physics preset (see: ballpit presets)")
	pf.Int64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 500, "number of frames")
	runCmd.Flags().IntVar(&numBodies, "bodies", 0, "extra bodies scattered at random")
	runCmd.Flags().Float64Var(&maxSpeed, "speed", 40, "max initial speed of scattered bodies")
	runCmd.Flags().BoolVar(&fixed, "fixed", false, "hold the fix key")
	runCmd.Flags().BoolVar(&constrained, "constrained", false, "hold the constrain key")
	runCmd.Flags().BoolVar(&pull, "pull", false, "hold the pull key")
	runCmd.Flags().BoolVar(&push, "push", false, "hold the push key")
	runCmd.Flags().Float64Var(&cursorX, "cursor-x", 0, "cursor x in world units")
	runCmd.Flags().Float64Var(&cursorY, "cursor-y", 0, "cursor y in world units")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", metrics.Names(), "metrics to report")
	runCmd.Flags().StringVar(&scriptPath, "script", "", "replay a yaml input scenario (overrides --frames)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as svg")
	runCmd.Flags().IntVar(&svgWidth, "svg-width", 800, "svg width in pixels")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run many seeds in parallel and compare metrics",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of worlds")
	ensembleCmd.Flags().IntVar(&frames, "frames", 500, "frames per world")
	ensembleCmd.Flags().IntVar(&ensembleBodies, "bodies", 10, "bodies scattered per world")
	ensembleCmd.Flags().Float64Var(&maxSpeed, "speed", 40, "max initial speed of scattered bodies")
	ensembleCmd.Flags().IntVar(&parallel, "parallel", 0, "max worlds running at once, 0 for no limit")
	ensembleCmd.Flags().StringSliceVar(&metricNames, "metrics", metrics.Names(), "metrics to report")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one world per value of a physics parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "restitution", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.2, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&frames, "frames", 500, "frames per world")
	sweepCmd.Flags().IntVar(&ensembleBodies, "bodies", 10, "bodies scattered per world")
	sweepCmd.Flags().Float64Var(&maxSpeed, "speed", 40, "max initial speed of scattered bodies")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list physics presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, stdout when empty")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, ensembleCmd, sweepCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
