package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/automation"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/export"
	"github.com/san-kum/ballpit/internal/gui"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/logging"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/particles"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/tui"
	"github.com/san-kum/ballpit/internal/viewport"
	"github.com/san-kum/ballpit/internal/viz"
)

// flagKeys maps persistent flags onto config keys. Flags only override the
// config when set on the command line.
var flagKeys = map[string]string{
	"preset":    "preset",
	"seed":      "simulation.seed",
	"log-level": "logger.level",
}

// loadConfig layers defaults, preset, config file, environment and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()
	if err := config.ReadFile(v, configFile); err != nil {
		return nil, err
	}

	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveSeed(cfg *config.Config) int64 {
	if cfg.Simulation.Seed != 0 {
		return cfg.Simulation.Seed
	}
	return time.Now().UnixNano()
}

// newWorld builds a world in a fresh viewport. The particle field is
// registered as an observer when non-nil.
func newWorld(cfg *config.Config, logger *zap.Logger, seed int64, withField bool, opts ...sim.Option) (*sim.World, *viewport.Viewport, *particles.Field, error) {
	view := viewport.New(cfg.Simulation.ViewHeight, cfg.Simulation.Aspect)

	base := []sim.Option{
		sim.WithLogger(logger),
		sim.WithSeed(seed),
		sim.WithConfig(cfg.Simulation.Sim()),
		sim.WithKeymap(cfg.Keys),
	}

	var field *particles.Field
	if withField {
		field = particles.NewField(view, seed+1)
		base = append(base, sim.WithObserver(field))
	}

	w, err := sim.New(cfg.Physics, view, append(base, opts...)...)
	if err != nil {
		return nil, nil, nil, err
	}
	return w, view, field, nil
}

func buildMetrics(names []string) ([]sim.Option, error) {
	opts := make([]sim.Option, 0, len(names))
	for _, name := range names {
		m, err := metrics.ByName(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sim.WithMetric(m))
	}
	return opts, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logger)
	defer logger.Sync()

	seed := resolveSeed(cfg)
	w, view, field, err := newWorld(cfg, logger, seed, true)
	if err != nil {
		return err
	}
	logger.Info("starting window", zap.String("preset", cfg.Preset), zap.Int64("seed", seed))

	gui.Run(gui.DefaultConfig(), w, view, field, logger)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal belongs to the UI, so only the log file gets entries
	logger := logging.NewFileOnly(cfg.Logger)
	defer logger.Sync()

	seed := resolveSeed(cfg)
	w, view, field, err := newWorld(cfg, logger, seed, true)
	if err != nil {
		return err
	}
	logger.Info("starting terminal ui", zap.String("preset", cfg.Preset), zap.Int64("seed", seed))

	return tui.Run(tui.NewModel(w, view, field, logger))
}

// holdKeys replays the cursor position and held mode keys as input events.
func holdKeys(w *sim.World) {
	w.HandleEvent(input.PointerMove(dynamo.V2(cursorX, cursorY)))

	keys := w.Keymap()
	held := []struct {
		on   bool
		code string
	}{
		{fixed, keys.Fix},
		{constrained, keys.Constrain},
		{pull, keys.Pull},
		{push, keys.Push},
	}
	for _, h := range held {
		if h.on {
			w.HandleEvent(input.KeyDown(h.code))
		}
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logger)
	defer logger.Sync()

	opts, err := buildMetrics(metricNames)
	if err != nil {
		return err
	}

	seed := resolveSeed(cfg)
	w, view, field, err := newWorld(cfg, logger, seed, svgPath != "", opts...)
	if err != nil {
		return err
	}
	w.Scatter(numBodies, maxSpeed)
	holdKeys(w)

	var script *automation.Scenario
	if scriptPath != "" {
		if script, err = automation.LoadScenario(scriptPath); err != nil {
			return err
		}
		frames = script.Frames
		logger.Info("loaded scenario", zap.String("name", script.Name), zap.Int("steps", len(script.Steps)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d frames (seed %d, preset %s)...\n", frames, seed, cfg.Preset)
	start := time.Now()

	var res *sim.Result
	if script != nil {
		res, err = script.Run(ctx, w)
	} else {
		res, err = w.Run(ctx, frames)
	}
	if err != nil {
		return err
	}

	if svgPath != "" {
		if err := export.WriteSVG(svgPath, viz.SceneOf(w, field), view, svgWidth); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("simulated: %.2fs\n", res.Time)
	fmt.Printf("bodies: %d\n", res.Bodies)
	fmt.Printf("mode: %s\n", viz.ModeLabel(w.Mode()))
	fmt.Println("\nmetrics:")

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(res.Metrics) {
		fmt.Fprintf(tw, "  %s\t%.6f\n", name, res.Metrics[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(res.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(res.Energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy per frame"),
		))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logger)
	defer logger.Sync()

	// members log at warn and above only; one debug line per spawn across
	// many worlds is noise
	quiet := logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))

	factory := func(s int64) (*sim.World, error) {
		opts, err := buildMetrics(metricNames)
		if err != nil {
			return nil, err
		}
		w, _, _, err := newWorld(cfg, quiet, s, false, opts...)
		if err != nil {
			return nil, err
		}
		w.Scatter(ensembleBodies, maxSpeed)
		return w, nil
	}

	seedStart := resolveSeed(cfg)
	ens := sim.NewEnsemble(factory, numRuns, seedStart)
	ens.SetLimit(parallel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d worlds x %d frames...\n", numRuns, frames)
	start := time.Now()

	results, err := ens.Run(ctx, frames)
	if err != nil {
		return err
	}
	logger.Info("ensemble finished", zap.Int("runs", len(results)), zap.Duration("elapsed", time.Since(start)))

	names := append([]string(nil), metricNames...)
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "SEED\tBODIES"
	for _, n := range names {
		header += "\t" + n
	}
	fmt.Fprintln(tw, header)
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d", r.Seed, r.Bodies)
		for _, n := range names {
			fmt.Fprintf(tw, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logger)
	defer logger.Sync()

	seed := resolveSeed(cfg)
	quiet := logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	build := func(p physics.Params) (*sim.World, error) {
		c := *cfg
		c.Physics = p
		w, _, _, err := newWorld(&c, quiet, seed, false)
		if err != nil {
			return nil, err
		}
		w.Scatter(ensembleBodies, maxSpeed)
		return w, nil
	}

	sweep := automation.ParameterSweep{
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Frames:   frames,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, sweep, cfg.Physics, build, logger)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tBODIES\tMIN ENERGY\tMAX ENERGY\tFINAL ENERGY\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		final := 0.0
		if n := len(r.Energy); n > 0 {
			final = r.Energy[n-1]
		}
		fmt.Fprintf(tw, "%.4g\t%d\t%.4f\t%.4f\t%.4f\n", r.Value, r.Bodies, r.MinEnergy, r.MaxEnergy, final)
	}
	return tw.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(tw, "%s\t%s\n", name, config.Presets[name].Description)
	}
	return tw.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := config.Save(outPath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
		return nil
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
