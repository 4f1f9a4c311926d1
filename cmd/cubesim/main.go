package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cubesim/internal/automation"
	"github.com/san-kum/cubesim/internal/config"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/export"
	"github.com/san-kum/cubesim/internal/gui"
	"github.com/san-kum/cubesim/internal/interact"
	"github.com/san-kum/cubesim/internal/logging"
	"github.com/san-kum/cubesim/internal/metrics"
	"github.com/san-kum/cubesim/internal/render"
	"github.com/san-kum/cubesim/internal/storage"
	"github.com/san-kum/cubesim/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	// action names applied before snapshot and pick
	actions []string
	outFile string
	svgFile string
	// drift study
	cycles    int
	halfTurns bool
	tolerance float64
)

// main registers the cubesim commands and opens the desktop viewer when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "cubesim",
		Short:        "interactive 3x3x3 cube",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLogger(logging.NewText(os.Stderr, verbose))
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cubesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "desktop viewer",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg)
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "apply actions headlessly and archive a rendered image",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringSliceVar(&actions, "do", nil, "actions to apply in order (e.g. turn_front,rotate_up)")
	snapshotCmd.Flags().StringVar(&outFile, "out", "", "also write the PNG here")
	snapshotCmd.Flags().StringVar(&svgFile, "svg", "", "also write an SVG rendering here")

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "list archived snapshots",
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [snapshot_id]",
		Short: "print the cubie poses of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	driftCmd := &cobra.Command{
		Use:   "drift",
		Short: "turn every face repeatedly and plot numerical drift",
		RunE:  runDrift,
	}
	driftCmd.Flags().IntVar(&cycles, "cycles", 25, "full revolutions per face")
	driftCmd.Flags().BoolVar(&halfTurns, "half", false, "turn 180 degrees instead of 90")
	driftCmd.Flags().Float64Var(&tolerance, "tolerance", 1e-3, "largest accepted error")
	driftCmd.Flags().StringVar(&svgFile, "svg", "", "write the orthogonality series as SVG")

	playCmd := &cobra.Command{
		Use:   "play [scenario.yaml]",
		Short: "run a scripted scenario, archiving steps marked save_as",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	pickCmd := &cobra.Command{
		Use:   "pick [x] [y]",
		Short: "report the cubie under a window pixel",
		Args:  cobra.ExactArgs(2),
		RunE:  runPick,
	}
	pickCmd.Flags().StringSliceVar(&actions, "do", nil, "actions to apply before picking")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "cubesim.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, snapshotCmd, snapshotsCmd, showCmd, driftCmd, playCmd, pickCmd, configCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig starts from the preset (or the defaults) and overlays the
// config file when one is given.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (have %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		return config.LoadOver(configFile, cfg)
	}
	return cfg, cfg.Validate()
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return gui.Run(cfg)
}

// applyActions runs the named actions on a session in order.
func applyActions(s *interact.Session, names []string) error {
	for _, name := range names {
		a, ok := interact.ParseAction(name)
		if !ok {
			return fmt.Errorf("%w: %s", interact.ErrUnknownAction, name)
		}
		s.Apply(a)
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := interact.NewSession(cfg, nil)
	if err != nil {
		return err
	}
	session.Resize(cfg.Render.SnapshotWidth, cfg.Render.SnapshotHeight)

	std := metrics.Standard()
	observe := func() {
		for _, m := range std {
			m.Observe(session.Store)
		}
	}
	observe()
	for _, name := range actions {
		if err := applyActions(session, []string{name}); err != nil {
			return err
		}
		observe()
	}

	metricValues := make(map[string]float64, len(std))
	for _, m := range std {
		metricValues[m.Name()] = m.Value()
	}

	store := storage.New(dataDir)
	id, err := archive(store, cfg, session, actions, metricValues)
	if err != nil {
		return err
	}

	if svgFile != "" {
		if err := writeCubeSVG(svgFile, cfg, session); err != nil {
			return err
		}
	}

	fmt.Printf("saved: %s\n", id)
	fmt.Printf("image: %s\n", store.ImagePath(id))
	return nil
}

// writeCubeSVG writes the session's current view as SVG to path.
func writeCubeSVG(path string, cfg *config.Config, session *interact.Session) error {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}
	svg := export.CubeToSVG(render.Faces(session.Store, session.Camera), session.Camera.Width(), session.Camera.Height(), bg)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// archive renders the session at the snapshot size and saves it with its
// poses. The PNG is also copied to --out when set.
func archive(store *storage.Store, cfg *config.Config, session *interact.Session, turns []string, metricValues map[string]float64) (string, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return "", err
	}
	dc := render.Snapshot(session.Store, session.Camera, bg)
	defer dc.Close()

	if err := store.Init(); err != nil {
		return "", err
	}
	id, err := store.Save(storage.SnapshotMetadata{
		Preset:  preset,
		Turns:   turns,
		Width:   cfg.Render.SnapshotWidth,
		Height:  cfg.Render.SnapshotHeight,
		Metrics: metricValues,
	}, dc, session.Store)
	if err != nil {
		return "", err
	}

	if outFile != "" {
		if err := dc.SavePNG(outFile); err != nil {
			return "", fmt.Errorf("write %s: %w", outFile, err)
		}
	}
	return id, nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	snaps, err := store.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPRESET\tACTIONS\tSIZE\tORTHO ERR")
	for _, s := range snaps {
		name := s.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%.2e\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			name,
			len(s.Turns),
			s.Width, s.Height,
			s.Metrics["orthogonality"],
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no snapshot %s in %s", args[0], dataDir)
		}
		return err
	}
	poses, err := store.LoadPoses(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s  actions=%v\n\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"), meta.Turns)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tLATTICE\tPOSITION")
	for _, p := range poses {
		fmt.Fprintf(w, "%d\t%v\t(%.3f, %.3f, %.3f)\n",
			p.Slot, cube.CoordOf(p.Slot), p.Position[0], p.Position[1], p.Position[2])
	}
	return w.Flush()
}

func runDrift(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	angle := float32(cube.QuarterTurn)
	if halfTurns {
		angle = cube.MaxTurnAngle
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunDrift(ctx, automation.DriftConfig{
		Cycles:    cycles,
		Angle:     angle,
		Scale:     cfg.Cube.Scale,
		Tolerance: tolerance,
	})
	if err != nil {
		return err
	}
	orthoSeries, driftSeries := automation.Worst(results)

	plots := []struct {
		data    []float64
		caption string
	}{
		{orthoSeries, "orthogonality error per turn (worst face)"},
		{driftSeries, "lattice drift per turn (worst face)"},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgFile != "" {
		svg := export.SeriesToSVG(orthoSeries, 800, 200, "#00ff00")
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write %s: %w", svgFile, err)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACE\tTURNS\tMAX ORTHO\tMAX DRIFT\tCONSISTENCY\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.3e\t%.3f\t%v\n",
			r.Face, len(r.Drift), r.MaxOrtho, r.MaxDrift, r.Consistency, r.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.DriftStats(results)
	fmt.Printf("\nstable faces: %d/%d\n", stable, stable+unstable)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := interact.NewSession(cfg, nil)
	if err != nil {
		return err
	}
	session.Resize(cfg.Render.SnapshotWidth, cfg.Render.SnapshotHeight)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := storage.New(dataDir)
	results, err := automation.RunScenario(ctx, scenario, session, func(r automation.StepResult) error {
		if r.SaveAs == "" {
			return nil
		}
		id, err := archive(store, cfg, session, r.Turns, r.Metrics)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", r.SaveAs, id)
		return nil
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTURNS\tORTHO ERR\tDRIFT\tSAVED")
	for _, r := range results {
		saved := r.SaveAs
		if saved == "" {
			saved = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t%.2e\t%.2e\t%s\n",
			r.Step, len(r.Turns), r.Metrics["orthogonality"], r.Metrics["lattice_drift"], saved)
	}
	return w.Flush()
}

func runPick(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target := render.NewSoft(cfg.Window.Width, cfg.Window.Height)
	session, err := interact.NewSession(cfg, target)
	if err != nil {
		return err
	}
	if err := applyActions(session, actions); err != nil {
		return err
	}

	session.Picker.Pick(session.Store, session.Camera, x, y)
	idx, ok := session.Picker.Picked()
	if !ok {
		fmt.Println("background")
		return nil
	}
	c := session.Store.Get(idx)
	fmt.Printf("cubie %d (slot %v) at (%.3f, %.3f, %.3f) depth %.4f\n",
		idx, cube.CoordOf(idx), c.Position.X(), c.Position.Y(), c.Position.Z(), session.Picker.Depth())
	return nil
}
