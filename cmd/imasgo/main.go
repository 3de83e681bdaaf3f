package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mgyoo86/imasgo/internal/config"
	"github.com/mgyoo86/imasgo/internal/equilibrium"
	"github.com/mgyoo86/imasgo/internal/export"
	"github.com/mgyoo86/imasgo/internal/ids"
	"github.com/mgyoo86/imasgo/internal/solovev"
	"github.com/mgyoo86/imasgo/internal/storage"
)

var (
	dbPath     string
	configFile string
	preset     string
	// Solov'ev sample parameters
	majorRadius float64
	minorRadius float64
	fieldB0     float64
	kappa       float64
	qAxis       float64
	pressure0   float64
	gridSize    int
	points      int
	slices      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "imasgo",
		Short: "flux-surface analysis for tokamak equilibria",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "imasgo.db", "run database path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "trace flux surfaces of the built-in analytic equilibrium",
		RunE:  runAnalysis,
	}
	runCmd.Flags().Float64Var(&majorRadius, "r0", 1.67, "major radius [m]")
	runCmd.Flags().Float64Var(&minorRadius, "a", 0.45, "minor radius [m]")
	runCmd.Flags().Float64Var(&fieldB0, "b0", 2.0, "vacuum field at r0 [T]")
	runCmd.Flags().Float64Var(&kappa, "kappa", 1.8, "elongation")
	runCmd.Flags().Float64Var(&qAxis, "q0", 1.1, "on-axis safety factor")
	runCmd.Flags().Float64Var(&pressure0, "p0", 4e4, "central pressure [Pa]")
	runCmd.Flags().IntVar(&gridSize, "grid", config.DefaultGridSize, "flux map grid size")
	runCmd.Flags().IntVar(&points, "points", config.DefaultProfilePoints, "profile sample count")
	runCmd.Flags().IntVar(&slices, "slices", 1, "number of time slices")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run with a q-profile sketch",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run summary as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "export a run's boundary cross section as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	infoCmd := &cobra.Command{
		Use:   "info [path]",
		Short: "look up a data-dictionary path",
		Args:  cobra.ExactArgs(1),
		RunE:  showInfo,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, showCmd, exportCmd, exportSVGCmd, infoCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("grid") {
		cfg.Equilibrium.GridSize = gridSize
	}
	if cmd.Flags().Changed("points") {
		cfg.Equilibrium.ProfilePoints = points
	}

	eq := solovev.New()
	eq.R0 = majorRadius
	eq.A = minorRadius
	eq.B0 = fieldB0
	eq.Kappa = kappa
	eq.Q0 = qAxis
	eq.P0 = pressure0

	times := make([]float64, slices)
	for i := range times {
		times[i] = 0.1 * float64(i)
	}

	top, err := equilibrium.NewSample(eq, times,
		cfg.Equilibrium.GridSize, cfg.Equilibrium.GridSize, cfg.Equilibrium.ProfilePoints)
	if err != nil {
		return err
	}

	fmt.Printf("tracing %d slices on a %dx%d flux map...\n",
		slices, cfg.Equilibrium.GridSize, cfg.Equilibrium.GridSize)
	start := time.Now()

	solver := equilibrium.NewSolver(cfg.Options())
	if err := solver.Solve(top); err != nil {
		return err
	}
	elapsed := time.Since(start)

	slice := top.StructArray("time_slice").At(0)
	gq := slice.Child("global_quantities")
	p1d := slice.Child("profiles_1d")

	fmt.Printf("completed in %v\n\n", elapsed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range []string{
		"ip", "q_axis", "q_95", "q_min",
		"beta_tor", "beta_pol", "beta_normal", "li_3",
		"volume", "area", "psi_axis", "psi_boundary",
	} {
		if v, ok := gq.Float(name); ok {
			fmt.Fprintf(w, "%s\t%.6g\n", name, v)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(p1d.Floats("q"),
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption("q vs profile index"),
	))

	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rec := summarize(gq, cfg, slices)
	outline := slice.Child("boundary").Child("outline")
	profiles := map[string][]float64{
		"psi":          p1d.Floats("psi"),
		"q":            p1d.Floats("q"),
		"rho_tor_norm": p1d.Floats("rho_tor_norm"),
		"volume":       p1d.Floats("volume"),
		"boundary_r":   outline.Floats("r"),
		"boundary_z":   outline.Floats("z"),
	}
	if err := st.SaveRun(rec, profiles); err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", rec.ID)
	return nil
}

func summarize(gq *ids.Node, cfg *config.Config, slices int) *storage.RunRecord {
	name := preset
	if name == "" {
		name = "standard"
	}
	rec := &storage.RunRecord{
		Preset:        name,
		GridSize:      cfg.Equilibrium.GridSize,
		ProfilePoints: cfg.Equilibrium.ProfilePoints,
		Slices:        slices,
	}
	rec.QAxis, _ = gq.Float("q_axis")
	rec.Q95, _ = gq.Float("q_95")
	rec.Ip, _ = gq.Float("ip")
	rec.BetaNormal, _ = gq.Float("beta_normal")
	rec.Li3, _ = gq.Float("li_3")
	rec.Volume, _ = gq.Float("volume")
	return rec
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tPRESET\tGRID\tQ_AXIS\tQ95\tIP[MA]\tBETA_N")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.3f\t%.2f\n",
			run.ID,
			humanize.Time(run.Time()),
			run.Preset,
			run.GridSize,
			run.QAxis,
			run.Q95,
			run.Ip/1e6,
			run.BetaNormal,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.GetRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", rec.ID)
	fmt.Printf("when: %s\n", humanize.Time(rec.Time()))
	fmt.Printf("preset: %s  grid: %d  points: %d  slices: %d\n",
		rec.Preset, rec.GridSize, rec.ProfilePoints, rec.Slices)
	fmt.Printf("q_axis: %.3f  q_95: %.3f  ip: %.3f MA  beta_N: %.3f\n\n",
		rec.QAxis, rec.Q95, rec.Ip/1e6, rec.BetaNormal)

	q, err := st.Profile(rec.ID, "q")
	if err != nil {
		return err
	}
	fmt.Println(asciigraph.Plot(q,
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption("q vs profile index"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.GetRun(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := st.Profile(args[0], "boundary_r")
	if err != nil {
		return err
	}
	z, err := st.Profile(args[0], "boundary_z")
	if err != nil {
		return err
	}
	svg := export.OutlineSVG([][2][]float64{{r, z}}, 400, 600)
	if svg == "" {
		return fmt.Errorf("run %s has no boundary outline", args[0])
	}
	return os.WriteFile(args[1], []byte(svg), 0644)
}

func showInfo(cmd *cobra.Command, args []string) error {
	info, err := ids.Info(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("path: %s\n", info.Path)
	fmt.Printf("data_type: %s\n", info.DataType)
	if len(info.Coordinates) > 0 {
		fmt.Printf("coordinates: %s\n", strings.Join(info.Coordinates, ", "))
	}
	fmt.Printf("dictionary: %s\n", ids.DictionaryVersion())
	fmt.Println(info.Documentation)
	return nil
}
