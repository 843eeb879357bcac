package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/nbody"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/stream"
	"github.com/san-kum/orrery/internal/tui"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	dataDir     string
	dt          float64
	steps       int
	sampleEvery int
	validate    bool
	configFile  string
	preset      string
	frameRate   int
	addr        string
	intervalMs  int
	svgOut      string
	svgSize     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orrery",
		Short: "gravitational N-body simulation of the outer planets",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orrery", "data directory")

	energyCmd := &cobra.Command{
		Use:   "energy",
		Short: "print total energy of the canonical system",
		RunE:  runEnergy,
	}
	energyCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	energyCmd.Flags().IntVar(&steps, "steps", 0, "steps to advance before the final readout")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and persist the result",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "sampling stride for stored frames")
	runCmd.Flags().BoolVar(&validate, "validate", false, "stop on NaN/Inf state")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run samples to stdout as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render orbit trajectories to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().IntVar(&steps, "steps", 100000, "number of steps")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream simulation frames over websockets",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8089", "listen address")
	serveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	serveCmd.Flags().IntVar(&steps, "steps", 100000, "steps per client session")
	serveCmd.Flags().IntVar(&intervalMs, "interval", 50, "frame interval (ms)")

	rootCmd.AddCommand(energyCmd, runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd, liveCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runEnergy is the classical benchmark driver: print the initial
// energy, advance, print the final energy.
func runEnergy(cmd *cobra.Command, args []string) error {
	sys := nbody.New()
	fmt.Printf("%.9f\n", sys.Energy())

	if steps > 0 {
		for i := 0; i < steps; i++ {
			sys = sys.Advance(dt)
		}
		fmt.Printf("%.9f\n", sys.Energy())
	}

	return nil
}

func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and file values.
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if cmd.Flags().Changed("validate") {
		cfg.Validate = validate
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := cfg.System()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New()
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewMomentumDrift())

	fmt.Printf("running %d steps (dt=%g)...\n", cfg.Steps, cfg.Dt)
	start := time.Now()

	result, err := runner.Run(context.Background(), sys, sim.Config{
		Dt:            cfg.Dt,
		Steps:         cfg.Steps,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: cfg.Validate,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Dt, cfg.Steps, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", elapsed)
	fmt.Println(viz.Summary(runID, cfg.Dt, result))

	for _, stepErr := range result.Errors {
		fmt.Printf("warning: %v\n", stepErr)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tDT\tENERGY\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.9f\t%.3e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.FinalEnergy,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	columns, err := st.Columns(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n", len(states))

	numCols := len(columns)
	maxPlots := 7
	if numCols > maxPlots {
		numCols = maxPlots
	}

	for col := 0; col < numCols; col++ {
		data := make([]float64, len(states))
		for i := range states {
			if col < len(states[i]) {
				data[i] = states[i][col]
			}
		}
		fmt.Println(viz.PlotSeries(columns[col], data))
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	f, err := os.Open(st.StatesPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("not enough samples to draw")
	}

	// Row layout: energy, then x/y/z per body in system order.
	trajs := make([]export.Trajectory, len(meta.Bodies))
	for i, name := range meta.Bodies {
		points := make([]export.Point, 0, len(states))
		xCol, yCol := 1+3*i, 2+3*i
		for _, row := range states {
			if yCol >= len(row) {
				continue
			}
			points = append(points, export.Point{X: row[xCol], Y: row[yCol]})
		}
		trajs[i] = export.Trajectory{Name: name, Points: points}
	}

	svg := export.OrbitsToSVG(trajs, svgSize, svgSize)
	if svg == "" {
		return fmt.Errorf("nothing to draw")
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func runLive(cmd *cobra.Command, args []string) error {
	stepsPerFrame := 10
	return tui.Run(nbody.New(), dt, steps, stepsPerFrame, frameRate)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := stream.New(stream.Options{
		Addr:          addr,
		Dt:            dt,
		Steps:         steps,
		StepsPerFrame: 10,
		Interval:      time.Duration(intervalMs) * time.Millisecond,
	}, nbody.New)

	fmt.Printf("streaming on %s/ws\n", addr)
	return srv.Start(ctx)
}
