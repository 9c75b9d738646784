package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/j-henkel/solarsystem/internal/config"
	"github.com/j-henkel/solarsystem/internal/gravity"
	"github.com/j-henkel/solarsystem/internal/metrics"
	"github.com/j-henkel/solarsystem/internal/sim"
	"github.com/j-henkel/solarsystem/internal/storage"
	"github.com/j-henkel/solarsystem/internal/viz"
)

var (
	dataDir       string
	configFile    string
	preset        string
	dt            float64
	steps         int
	gravConst     float64
	fixMomentum   bool
	snapshotEvery int
	stepsPerFrame int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solarsystem",
		Short: "gravitational n-body simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".solarsystem", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and store the trajectory",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the bodies and derived quantities of a scenario",
		RunE:  showScenario,
	}
	addScenarioFlags(showCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with live visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 10, "simulation steps per frame")

	rootCmd.AddCommand(runCmd, showCmd, listCmd, plotCmd, exportCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "sun_earth", "built-in scenario")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (override)")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of steps (override)")
	cmd.Flags().Float64Var(&gravConst, "g", 0, "gravitational constant (override)")
	cmd.Flags().BoolVar(&fixMomentum, "fix", false, "zero net momentum before running")
	cmd.Flags().IntVar(&snapshotEvery, "snapshot-every", 0, "record every n-th step (override)")
}

// resolveScenario merges preset/config-file values with explicit flag
// overrides, flags winning.
func resolveScenario(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (try: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("g") {
		cfg.G = gravConst
	}
	if cmd.Flags().Changed("fix") {
		cfg.FixMomentum = fixMomentum
	}
	if cmd.Flags().Changed("snapshot-every") {
		cfg.SnapshotEvery = snapshotEvery
	}

	return cfg, nil
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		Steps:         cfg.Steps,
		G:             cfg.GravitationalConstant(),
		FixMomentum:   cfg.FixMomentum,
		SnapshotEvery: cfg.SnapshotEvery,
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	sys, err := gravity.NewSystem(cfg.GravityBodies()...)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simCfg := simConfig(cfg)
	runner := sim.New(sys)
	runner.AddMetric(metrics.NewMomentumDrift())
	runner.AddMetric(metrics.NewEnergyDrift(simCfg.G))

	fmt.Printf("running %s (%d bodies, %d steps)...\n", cfg.Scenario, sys.Len(), cfg.Steps)
	start := time.Now()

	result, err := runner.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Scenario, sys.Names(), sys.Dim(), simCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Times))
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	return nil
}

func showScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	sys, err := gravity.NewSystem(cfg.GravityBodies()...)
	if err != nil {
		return err
	}

	g := cfg.GravitationalConstant()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASS\tPOSITION\tVELOCITY")
	for _, name := range sys.Names() {
		b, err := sys.Body(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.4e\t%.4g\t%.4g\n", b.Name, b.Mass, b.Position, b.Velocity)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	com, err := sys.CenterOfMass()
	if err != nil {
		return err
	}
	fmt.Printf("\ncenter of mass: %.4g\n", com)
	fmt.Printf("momentum:       %.4e\n", sys.Momentum())
	fmt.Printf("energy:         %.6e\n", sys.Energy(g))

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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tSTEPS\tDT\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4g\t%.2e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Bodies),
			run.Steps,
			run.Dt,
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

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(states))

	axes := "xyz"
	numCols := len(states[0])
	maxPlots := 6
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

		caption := fmt.Sprintf("column %d", col)
		if meta.Dim > 0 && col/meta.Dim < len(meta.Bodies) {
			axis := fmt.Sprintf("%d", col%meta.Dim)
			if meta.Dim <= 3 {
				axis = string(axes[col%meta.Dim])
			}
			caption = fmt.Sprintf("%s %s", meta.Bodies[col/meta.Dim], axis)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	sys, err := gravity.NewSystem(cfg.GravityBodies()...)
	if err != nil {
		return err
	}
	if cfg.FixMomentum {
		if err := sys.FixMomentum(); err != nil {
			return err
		}
	}

	return viz.Run(sys, cfg.Scenario, cfg.Dt, cfg.GravitationalConstant(), stepsPerFrame)
}
