package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/indigodrigo/rk4-wind-solution/internal/config"
	"github.com/indigodrigo/rk4-wind-solution/internal/export"
	"github.com/indigodrigo/rk4-wind-solution/internal/integrate"
	"github.com/indigodrigo/rk4-wind-solution/internal/storage"
	"github.com/indigodrigo/rk4-wind-solution/internal/tui"
	"github.com/indigodrigo/rk4-wind-solution/internal/viz"
	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

var (
	dataDir       string
	mass          float64
	temp          float64
	mu            float64
	starRadius    float64
	epsilon       float64
	sonicTol      float64
	steps         int
	outer         float64
	configFile    string
	preset        string
	normalized    bool
	csvNormalized bool
	svgOut        string
	svgWidth      int
	svgHeight     int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "parkerwind",
		Short: "isothermal stellar wind (Parker) solution lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".parkerwind", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "compute the six wind solution branches",
		RunE:  runSolve,
	}
	solveCmd.Flags().Float64Var(&mass, "mass", wind.SolarMass, "stellar mass (kg)")
	solveCmd.Flags().Float64Var(&temp, "temp", wind.SolarCoronaTemp, "coronal temperature (K)")
	solveCmd.Flags().Float64Var(&mu, "mu", 0.6, "mean molecular weight")
	solveCmd.Flags().Float64Var(&starRadius, "star-radius", wind.SolarRadius, "stellar radius (m)")
	solveCmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "transonic seed offset (fraction of r_c)")
	solveCmd.Flags().Float64Var(&sonicTol, "sonic-tol", config.DefaultSonicTol, "sonic slope-substitution window")
	solveCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "integration steps per half-run")
	solveCmd.Flags().Float64Var(&outer, "outer", config.DefaultOuterFactor, "outer bound (units of r_c)")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use a star preset")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the solution topology of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&normalized, "normalized", true, "axes in sonic units (r/R_c, v/a)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [branch]",
		Short: "export one branch to CSV",
		Args:  cobra.ExactArgs(2),
		RunE:  exportCSV,
	}
	// Own variable: plot and browse bind "normalized" with a true default,
	// and pflag writes defaults through the pointer at registration time.
	exportCSVCmd.Flags().BoolVar(&csvNormalized, "normalized", false, "values in sonic units instead of km, km/s")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a whole run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run to an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "wind_solutions.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 1000, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare RK4 and Euler on the transonic wind branch",
		RunE:  compareSteppers,
	}
	compareCmd.Flags().IntVar(&steps, "steps", 5000, "integration steps per half-run")
	compareCmd.Flags().StringVar(&preset, "preset", "", "use a star preset")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list star presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(" ", name)
			}
		},
	}

	browseCmd := &cobra.Command{
		Use:   "browse [run_id]",
		Short: "interactive branch browser",
		Args:  cobra.ExactArgs(1),
		RunE:  browseRun,
	}
	browseCmd.Flags().BoolVar(&normalized, "normalized", true, "start in sonic units")

	rootCmd.AddCommand(solveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, compareCmd, presetsCmd, browseCmd)
	return rootCmd
}

// buildConfig resolves preset, config file and flags, in that precedence
// order (flags win when explicitly set).
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mass") {
		cfg.Star.Mass = mass
	}
	if cmd.Flags().Changed("temp") {
		cfg.Star.Temperature = temp
	}
	if cmd.Flags().Changed("mu") {
		cfg.Star.Mu = mu
	}
	if cmd.Flags().Changed("star-radius") {
		cfg.Star.Radius = starRadius
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Numerics.Epsilon = epsilon
	}
	if cmd.Flags().Changed("sonic-tol") {
		cfg.Numerics.SonicTol = sonicTol
	}
	if cmd.Flags().Changed("steps") {
		cfg.Numerics.Steps = steps
	}
	if cmd.Flags().Changed("outer") {
		cfg.Numerics.OuterFactor = outer
	}

	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := wind.NewModel(cfg.Parameters())
	if err != nil {
		return err
	}

	opts := cfg.Options(m.CriticalRadius())
	classifier, err := wind.NewClassifier(m, opts)
	if err != nil {
		return err
	}

	fmt.Printf("sound speed (a):      %.3e km/s\n", m.SoundSpeed()/1000)
	fmt.Printf("critical radius (Rc): %.3e km\n", m.CriticalRadius()/1000)
	fmt.Println("--------------------")

	start := time.Now()
	sols, err := classifier.Solve()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(m, opts, sols)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BRANCH\tSAMPLES\tV MIN\tV MAX\tTRUNCATED")
	for _, sol := range sols {
		min, max := wind.VelocityRange(wind.ClampNegative(sol))
		fmt.Fprintf(w, "%s\t%d\t%.2f km/s\t%.2f km/s\t%v\n",
			sol.Branch, len(sol.Points), min/1000, max/1000, sol.Truncated)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tT (K)\tA (KM/S)\tRC (KM)\tSTEPS\tBRANCHES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2e\t%.1f\t%.3e\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Temperature,
			run.SoundSpeed/1000,
			run.CriticalRadius/1000,
			run.Steps,
			len(run.Branches),
		)
	}
	return w.Flush()
}

// loadRun rebuilds the model and solutions of a stored run.
func loadRun(runID string) (*wind.Model, []wind.Solution, *storage.RunMetadata, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := wind.NewModel(meta.Params)
	if err != nil {
		return nil, nil, nil, err
	}
	sols, err := st.LoadSolutions(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, sols, meta, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	m, sols, meta, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("a = %.2f km/s, Rc = %.3e km\n\n", m.SoundSpeed()/1000, m.CriticalRadius()/1000)

	fmt.Println(viz.PlotSolutions(m, sols, normalized, 78, 22))
	fmt.Println(viz.Legend(sols))

	// Velocity profile of the physical wind along r.
	for _, sol := range sols {
		if sol.Branch != wind.TransonicWind || len(sol.Points) == 0 {
			continue
		}
		data := make([]float64, 0, 200)
		stride := len(sol.Points)/200 + 1
		for i := 0; i < len(sol.Points); i += stride {
			data = append(data, sol.Points[i].V/m.SoundSpeed())
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(78),
			asciigraph.Caption("transonic wind: v/a vs r"),
		)
		fmt.Println(graph)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID, slug := args[0], args[1]

	branch, ok := wind.ParseBranch(slug)
	if !ok {
		return fmt.Errorf("unknown branch: %s", slug)
	}

	m, sols, _, err := loadRun(runID)
	if err != nil {
		return err
	}

	var sol *wind.Solution
	for i := range sols {
		if sols[i].Branch == branch {
			sol = &sols[i]
			break
		}
	}
	if sol == nil {
		return fmt.Errorf("run %s has no branch %s", runID, slug)
	}

	clamped := wind.ClampNegative(*sol)

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"r(km)", "v(km/s)"}
	if csvNormalized {
		header = []string{"r/R_c", "v/a"}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range clamped.Points {
		out := wind.Point{R: p.R / 1000, V: p.V / 1000}
		if csvNormalized {
			out = m.Normalize(p)
		}
		row := []string{
			strconv.FormatFloat(out.R, 'e', 6, 64),
			strconv.FormatFloat(out.V, 'e', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

type runExport struct {
	Meta     storage.RunMetadata     `json:"meta"`
	Branches map[string][]wind.Point `json:"branches"`
}

func exportJSON(cmd *cobra.Command, args []string) error {
	_, sols, meta, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := runExport{Meta: *meta, Branches: make(map[string][]wind.Point, len(sols))}
	for _, sol := range sols {
		out.Branches[sol.Branch.Slug()] = wind.ClampNegative(sol).Points
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	m, sols, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.SolutionsToSVG(m, sols, svgWidth, svgHeight)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("steps") {
		cfg.Numerics.Steps = steps
	} else {
		cfg.Numerics.Steps = 5000
	}

	m, err := wind.NewModel(cfg.Parameters())
	if err != nil {
		return err
	}

	steppers := []struct {
		name string
		st   integrate.Stepper
	}{
		{"rk4", integrate.NewRK4()},
		{"euler", integrate.NewEuler()},
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tSAMPLES\tV AT OUTER\tTIME")
	for _, s := range steppers {
		opts := cfg.Options(m.CriticalRadius())
		opts.Stepper = s.st

		classifier, err := wind.NewClassifier(m, opts)
		if err != nil {
			return err
		}

		start := time.Now()
		sol, err := classifier.SolveBranch(wind.TransonicWind)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		last := sol.Points[len(sol.Points)-1]
		fmt.Fprintf(w, "%s\t%d\t%.3f km/s\t%v\n", s.name, len(sol.Points), last.V/1000, elapsed)
	}
	return w.Flush()
}

func browseRun(cmd *cobra.Command, args []string) error {
	m, sols, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return tui.Run(m, sols, normalized)
}
