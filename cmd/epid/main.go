package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/epid/internal/analysis"
	"github.com/san-kum/epid/internal/automation"
	"github.com/san-kum/epid/internal/config"
	"github.com/san-kum/epid/internal/experiment"
	"github.com/san-kum/epid/internal/logging"
	"github.com/san-kum/epid/internal/plant"
	"github.com/san-kum/epid/internal/storage"
	"github.com/san-kum/epid/internal/viz"
)

var (
	dataDir string
	logFile string
	verbose bool

	configFile string
	preset     string
	mode       string
	integrator string
	kp         float64
	ki         float64
	kd         float64
	ti         float64
	td         float64
	setpoint   float64
	ts         float64
	duration   float64
	deadband   float64
	filter     string
	alpha      float64
	cutoff     float64
	noFinite   bool

	runName string
	dump    bool
	noSave  bool

	format  string
	outPath string
	phase   bool

	benchCutoff float64
	benchTs     float64
	samples     int
	printAll    bool

	speed int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	workers    int

	mcParams []string
	mcSpread float64
	mcTrials int
	mcSeed   int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "epid",
		Short:        "embedded PID controller lab",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".epid", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (rotated)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	runCmd := &cobra.Command{
		Use:   "run [plant]",
		Short: "run a closed loop and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLoop,
	}
	addLoopFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "", "run name")
	runCmd.Flags().BoolVar(&dump, "dump", false, "dump the final controller context")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot PV, SP and CV of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&phase, "phase", false, "plot tracking error against its rate")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum of the tracking error",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run samples",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "json, csv or npy")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "run the low-pass filter bench on a noisy sine",
		RunE:  runFilterBench,
	}
	filterCmd.Flags().Float64Var(&benchCutoff, "cutoff", 20, "cutoff frequency in Hz")
	filterCmd.Flags().Float64Var(&benchTs, "ts", 0.001, "sample period in seconds")
	filterCmd.Flags().IntVar(&samples, "samples", 250, "number of samples")
	filterCmd.Flags().BoolVar(&printAll, "print", false, "print every sample")
	filterCmd.Flags().StringVarP(&outPath, "out", "o", "", "write samples as CSV")

	liveCmd := &cobra.Command{
		Use:   "live [plant]",
		Short: "run a loop with live tuning",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addLoopFlags(liveCmd)
	liveCmd.Flags().IntVar(&speed, "speed", 1, "samples per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets [plant]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "evaluate a loop over a range of one parameter",
		RunE:  runSweep,
	}
	addLoopFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "kp", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 100, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1000, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default GOMAXPROCS)")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same loop",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addLoopFlags(compareCmd)

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "check a loop against randomly perturbed plants",
		RunE:  runMonteCarlo,
	}
	addLoopFlags(mcCmd)
	mcCmd.Flags().StringSliceVar(&mcParams, "params", []string{"mass", "convection"}, "plant parameters to perturb")
	mcCmd.Flags().Float64Var(&mcSpread, "spread", 0.2, "relative perturbation")
	mcCmd.Flags().IntVar(&mcTrials, "trials", 20, "number of trials")
	mcCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed (0 = time)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, filterCmd, liveCmd,
		presetsCmd, batchCmd, sweepCmd, compareCmd, mcCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLoopFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&mode, "mode", "pid", "pi or pid")
	f.StringVar(&integrator, "integrator", "euler", "integrator")
	f.Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	f.Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	f.Float64Var(&kd, "kd", config.DefaultKd, "derivative gain")
	f.Float64Var(&ti, "ti", 0, "integral time; with --ti the gains are derived from kp, ti, td")
	f.Float64Var(&td, "td", 0, "derivative time")
	f.Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "setpoint")
	f.Float64Var(&ts, "ts", config.DefaultSamplePeriod, "sample period in seconds")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	f.Float64Var(&deadband, "deadband", 0, "skip output changes smaller than this")
	f.StringVar(&filter, "filter", "none", "low-pass target: none, measurement or derivative")
	f.Float64Var(&alpha, "alpha", 0, "filter smoothing factor")
	f.Float64Var(&cutoff, "cutoff", 0, "filter cutoff in Hz")
	f.BoolVar(&noFinite, "no-finite-checks", false, "disable NaN/Inf checks")
}

// loadConfig builds the loop configuration: a preset or the config file
// (with EPID_* overrides), then any flags given on the command line.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	if preset != "" && configFile != "" {
		return nil, fmt.Errorf("use either --preset or --config")
	}

	var cfg *config.Config
	if preset != "" {
		plantName := "heater"
		if len(args) > 0 {
			plantName = args[0]
		}
		cfg = config.GetPreset(plantName, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(plantName))
		}
	} else {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			cfg.Plant = args[0]
		}
	}

	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.Mode = mode
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("kp") {
		cfg.Gains.Kp = kp
	}
	if f.Changed("ki") {
		cfg.Gains.Ki = ki
	}
	if f.Changed("kd") {
		cfg.Gains.Kd = kd
	}
	if f.Changed("ti") {
		cfg.Gains.Ti = ti
	}
	if f.Changed("td") {
		cfg.Gains.Td = td
	}
	if f.Changed("setpoint") {
		cfg.Setpoint = setpoint
	}
	if f.Changed("ts") {
		cfg.SamplePeriod = ts
	}
	if f.Changed("time") {
		cfg.Duration = duration
	}
	if f.Changed("deadband") {
		cfg.Deadband = deadband
	}
	if f.Changed("filter") {
		cfg.Filter.Target = filter
	}
	if f.Changed("alpha") {
		cfg.Filter.Alpha = alpha
	}
	if f.Changed("cutoff") {
		cfg.Filter.CutoffHz = cutoff
	}
	if f.Changed("no-finite-checks") {
		cfg.FiniteChecks = !noFinite
	}
	return cfg, cfg.Validate()
}

func newLogger() *log.Logger {
	return logging.New(logFile, verbose)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLoop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logging.Close(logger)

	exp, err := experiment.Build(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s %s loop...\n", cfg.Plant, cfg.Mode)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Metadata(runName, result), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("stopped: %v\n", e)
	}
	fmt.Printf("final %s: %.4f\n", exp.StateLabels()[0], result.States[len(result.States)-1][0])
	printMetrics(os.Stdout, result.Metrics)

	if dump {
		fmt.Println()
		spew.Dump(exp.Loop().Controller())
	}
	return nil
}

func printMetrics(w io.Writer, metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, metrics[name])
	}
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
	fmt.Fprintln(w, "ID\tNAME\tPLANT\tMODE\tTIME\tDURATION\tTS\tIAE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1fs\t%.4fs\t%.3f\n",
			run.ID,
			run.Name,
			run.Plant,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.SamplePeriod,
			run.Metrics["iae"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Samples, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	s, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(s.Rows) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, s, nil
}

func measured(meta *storage.RunMetadata) string {
	if len(meta.StateLabels) > 0 {
		return meta.StateLabels[0]
	}
	return "x0"
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, s, err := loadRun(args[0])
	if err != nil {
		return err
	}

	pv, sp, cv := s.Column(measured(meta)), s.Column("sp"), s.Column("cv")
	if pv == nil || sp == nil || cv == nil {
		return fmt.Errorf("run %s has no loop columns", meta.ID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("plant: %s (%s)\n", meta.Plant, meta.Mode)
	fmt.Printf("samples: %d\n\n", len(s.Rows))

	if phase {
		pts := analysis.ErrorPortrait(s.Column("time"), pv, sp)
		fmt.Println("tracking error (x) against its rate (y)")
		fmt.Print(analysis.PortraitToASCII(pts, 80, 24))
		return nil
	}

	fmt.Println(asciigraph.PlotMany([][]float64{sp, pv},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("%s (red) vs setpoint (green)", measured(meta))),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(cv,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("controller output"),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, s, err := loadRun(args[0])
	if err != nil {
		return err
	}
	pv, sp := s.Column(measured(meta)), s.Column("sp")
	if pv == nil || sp == nil {
		return fmt.Errorf("run %s has no loop columns", meta.ID)
	}

	errs := make([]float64, len(pv))
	for i := range pv {
		errs[i] = sp[i] - pv[i]
	}
	ps := analysis.PowerSpectrum(errs)
	if len(ps) < 2 {
		return fmt.Errorf("run %s is too short", meta.ID)
	}
	plotData := ps[1:]
	if len(plotData) > 200 {
		plotData = plotData[:200]
	}

	fmt.Printf("tracking error spectrum: %s\n\n", meta.ID)
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("|E(f)|, DC removed"),
	))

	maxIdx := 0
	for i := range plotData {
		if plotData[i] > plotData[maxIdx] {
			maxIdx = i
		}
	}
	freq := float64(maxIdx+1) / (float64(len(errs)) * meta.SamplePeriod)
	fmt.Printf("\ndominant frequency: %.4f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, s, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		return s.ExportJSON(w, meta)
	case "csv":
		return s.ExportCSV(w)
	case "npy":
		if outPath == "" {
			return fmt.Errorf("npy export needs --out")
		}
		return s.ExportNPY(w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runFilterBench(cmd *cobra.Command, args []string) error {
	rep, err := analysis.BenchFilter(plant.NoisySine(), benchCutoff, benchTs, samples)
	if err != nil {
		return err
	}

	fmt.Printf("low-pass bench: cutoff %.1f hz, ts %g s, alpha %.6f, %d samples\n\n",
		rep.CutoffHz, rep.SamplePeriod, rep.Alpha, samples)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FREQ\tGAIN\tEXPECTED")
	for _, tone := range rep.Tones {
		fmt.Fprintf(w, "%.1f hz\t%.3f\t%.3f\n", tone.Freq, tone.Gain, tone.Expected)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{rep.Raw, rep.Filtered},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption("raw and filtered (red)"),
	))

	if printAll {
		fmt.Println()
		for i := range rep.Raw {
			fmt.Printf("%d\t%.6f\t%.6f\n", i, rep.Raw[i], rep.Filtered[i])
		}
	}

	if outPath != "" {
		return writeFilterCSV(outPath, rep)
	}
	return nil
}

func writeFilterCSV(path string, rep *analysis.FilterReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "clean", "raw", "filtered"}); err != nil {
		return err
	}
	for i := range rep.Raw {
		row := []string{
			strconv.FormatFloat(float64(i)*rep.SamplePeriod, 'g', -1, 64),
			strconv.FormatFloat(rep.Clean[i], 'g', -1, 64),
			strconv.FormatFloat(rep.Raw[i], 'g', -1, 64),
			strconv.FormatFloat(rep.Filtered[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logging.Close(logger)

	return viz.Run(func() (*experiment.Experiment, error) {
		return experiment.Build(cfg.Clone(), logger)
	}, speed)
}

func listPresets(cmd *cobra.Command, args []string) error {
	plants := experiment.NewRegistry().ListPlants()
	if len(args) > 0 {
		plants = args
	}
	for _, p := range plants {
		presets := config.ListPresets(p)
		if len(presets) == 0 {
			fmt.Printf("no presets for plant: %s\n", p)
			continue
		}
		fmt.Printf("presets for %s:\n", p)
		for _, name := range presets {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logging.Close(logger)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, sc, experiment.NewRegistry(), st, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tFINAL\tIAE\tOVERSHOOT%\tSATURATION")
	for _, r := range results {
		final := r.Result.States[len(r.Result.States)-1][0]
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%.2f\t%.3f\n",
			r.Name, r.RunID, final,
			r.Result.Metrics["iae"], r.Result.Metrics["overshoot_pct"], r.Result.Metrics["saturation"])
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.Sweep{
		Base:    cfg,
		Param:   sweepParam,
		Min:     sweepMin,
		Max:     sweepMax,
		Steps:   sweepSteps,
		Workers: workers,
	}
	start := time.Now()
	results, err := automation.RunSweep(ctx, sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Printf("sweep %s over [%g, %g], %d values in %v\n\n", sweepParam, sweepMin, sweepMax, len(results), time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL\tIAE\tOVERSHOOT%%\tSATURATION\tSS RMS\tERROR\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		if r.Err != nil && r.Metrics == nil {
			fmt.Fprintf(w, "%g\t-\t-\t-\t-\t-\t%v\n", r.Value, r.Err)
			continue
		}
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		fmt.Fprintf(w, "%g\t%.3f\t%.3f\t%.2f\t%.3f\t%.4f\t%s\n",
			r.Value, r.Final, r.Metrics["iae"], r.Metrics["overshoot_pct"],
			r.Metrics["saturation"], r.Metrics["steady_state_rms"], errText)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	registry := experiment.NewRegistry()
	fmt.Printf("comparing integrators on %s (%s)\n\n", cfg.Plant, cfg.Mode)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tTIME\tFINAL\tIAE\tOVERSHOOT%")

	for _, name := range args {
		c := cfg.Clone()
		c.Integrator = name
		exp, err := registry.Build(c, nil)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%v\t%.4f\t%.4f\t%.2f\n",
			name, elapsed, result.States[len(result.States)-1][0],
			result.Metrics["iae"], result.Metrics["overshoot_pct"])
	}

	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:      cfg,
		Params:    mcParams,
		Spread:    mcSpread,
		NumTrials: mcTrials,
		Seed:      mcSeed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	sum := automation.MonteCarloStats(results)
	fmt.Printf("%d trials: %d stable, %d unstable\n\n", len(results), sum.Stable, sum.Unstable)

	names := make([]string, 0, len(sum.Mean))
	for name := range sum.Mean {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", name, sum.Mean[name], sum.StdDev[name])
	}
	return w.Flush()
}
