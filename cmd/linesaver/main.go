package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/linesaver/internal/config"
	"github.com/san-kum/linesaver/internal/display"
	"github.com/san-kum/linesaver/internal/engine"
	"github.com/san-kum/linesaver/internal/export"
	"github.com/san-kum/linesaver/internal/metrics"
	"github.com/san-kum/linesaver/internal/session"
	"github.com/san-kum/linesaver/internal/storage"
	"github.com/san-kum/linesaver/internal/tui"
	"github.com/san-kum/linesaver/internal/window"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	verbose    bool
	logFile    string
	// Tunable overrides
	width   int
	height  int
	lines   int
	speed   int
	fps     int
	restart string
	// Output
	frames     int
	gifPath    string
	gifEvery   int
	svgPath    string
	svgPixels  string
	svgScale   float64
	jsonPath   string
	save       bool
	runs       int
	benchN     int
	scale      int
	showStats  bool
	recordPath string
	theme      string

	logOut io.Closer
)

const maxGIFFrames = 2000

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the commands. With no subcommand the terminal host
// runs.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:                "linesaver",
		Short:              "anti-aliased bouncing lines",
		SilenceUsage:       true,
		PersistentPreRunE:  setupLogging,
		PersistentPostRunE: closeLogging,
		RunE:               runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".linesaver", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "write logs to file")
	pf.IntVar(&width, "width", config.DefaultWidth, "frame width")
	pf.IntVar(&height, "height", config.DefaultHeight, "frame height")
	pf.IntVar(&lines, "lines", config.DefaultLines, "lines kept on screen")
	pf.IntVar(&speed, "speed", config.DefaultAverageSpeed, "average endpoint speed")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&restart, "restart", config.RestartFresh, "restart policy (fresh|resume)")

	rootCmd.Flags().StringVar(&recordPath, "gif", "lines.gif", "where G saves recordings")
	rootCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "panel theme ("+strings.Join(tui.ThemeNames(), ", ")+")")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the effect in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&recordPath, "gif", "lines.gif", "where G saves recordings")
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "panel theme ("+strings.Join(tui.ThemeNames(), ", ")+")")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the effect in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&scale, "scale", 3, "integer upscaling")
	windowCmd.Flags().BoolVar(&showStats, "stats", false, "show stats overlay")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the effect headless",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 300, "frames to produce")
	runCmd.Flags().StringVar(&gifPath, "gif", "", "write an animated gif")
	runCmd.Flags().IntVar(&gifEvery, "gif-every", 1, "record every n-th frame")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final lines as svg")
	runCmd.Flags().StringVar(&svgPixels, "svg-pixels", "", "write the final frame as svg pixels")
	runCmd.Flags().Float64Var(&svgScale, "svg-scale", 2, "svg scale")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "export the session as json")
	runCmd.Flags().BoolVar(&save, "save", false, "store the session in the data directory")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run several seeds in parallel and report throughput",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&runs, "runs", 4, "number of seeds")
	benchCmd.Flags().IntVar(&benchN, "frames", 1000, "frames per run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored sessions",
		Args:  cobra.NoArgs,
		RunE:  listSessions,
	}

	showCmd := &cobra.Command{
		Use:   "show [session_id]",
		Short: "show a stored session",
		Args:  cobra.ExactArgs(1),
		RunE:  showSession,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "print the palette as swatches",
		Args:  cobra.NoArgs,
		RunE:  printPalette,
	}

	rootCmd.AddCommand(liveCmd, windowCmd, runCmd, benchCmd, listCmd, showCmd, presetsCmd, paletteCmd)
	return rootCmd
}

// setupLogging routes engine logs to --log-file, or to stderr with
// --verbose. The terminal host owns the screen, so it only logs to a file.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		w = f
		logOut = f
	case verbose && !isTerminalHost(cmd):
		w = os.Stderr
	default:
		return nil
	}

	engine.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

func closeLogging(cmd *cobra.Command, args []string) error {
	if logOut == nil {
		return nil
	}
	engine.SetLogger(nil)
	err := logOut.Close()
	logOut = nil
	return err
}

func isTerminalHost(cmd *cobra.Command) bool {
	return cmd.Name() == "live" || cmd.Name() == "linesaver"
}

// loadConfig resolves tunables: defaults or --preset, then --config, then
// any flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.Apply(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("lines") {
		cfg.Lines = lines
	}
	if flags.Changed("speed") {
		cfg.AverageSpeed = speed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("restart") {
		cfg.Restart = restart
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sessionName() string {
	if preset != "" {
		return preset
	}
	return "lines"
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(cfg, tui.Options{
		Name:    sessionName(),
		GIFPath: recordPath,
		Theme:   theme,
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	err = window.Run(ctx, cfg, window.Options{
		Scale:     scale,
		Title:     "linesaver - " + sessionName(),
		ShowStats: showStats,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	mem := display.NewMemory()
	surfaces := []display.Surface{mem}
	var rec *display.GIFRecorder
	if gifPath != "" {
		rec = display.NewGIFRecorder(gifEvery, display.DelayForFPS(cfg.FPS)*max(gifEvery, 1), maxGIFFrames)
		surfaces = append(surfaces, rec)
	}

	eng, err := engine.New(cfg, display.Multi(surfaces...), nil)
	if err != nil {
		return err
	}
	defer eng.Blank(false)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s (%s, %d lines)...\n", sessionName(), eng.Mode(), cfg.Lines)
	runner := session.New(eng)
	for _, m := range metrics.Default(cfg.Width * cfg.Height) {
		runner.AddMetric(m)
	}
	result, err := runner.Run(ctx, frames)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Printf("interrupted after %d frames\n", len(result.Frames))
		if len(result.Frames) == 0 {
			return nil
		}
	case err != nil:
		return err
	}

	printResult(result)

	if rec != nil {
		if err := rec.Save(gifPath); err != nil {
			return fmt.Errorf("gif: %w", err)
		}
		fmt.Printf("gif: %s (%d frames)\n", gifPath, rec.Len())
	}
	if svgPath != "" {
		svg := export.LinesToSVG(result.Lines, eng.Palette(), cfg.Width, cfg.Height, svgScale)
		if err := export.WriteFile(svgPath, svg); err != nil {
			return fmt.Errorf("svg: %w", err)
		}
		fmt.Printf("svg: %s\n", svgPath)
	}
	if svgPixels != "" {
		svg := export.CanvasToSVG(eng.Canvas(), eng.Palette(), svgScale)
		if err := export.WriteFile(svgPixels, svg); err != nil {
			return fmt.Errorf("svg: %w", err)
		}
		fmt.Printf("svg pixels: %s\n", svgPixels)
	}
	if jsonPath != "" {
		if err := storage.ExportJSONFile(jsonPath, cfg, result); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		fmt.Printf("json: %s\n", jsonPath)
	}
	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(sessionName(), cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("session id: %s\n", id)
	}
	return nil
}

func printResult(result *session.Result) {
	fmt.Printf("seed: %d\n", result.Seed)
	fmt.Printf("frames: %d in %v (%.0f frames/sec)\n", len(result.Frames), result.Elapsed, result.FPS())
	fmt.Printf("lines: %d live, head %d\n", result.Stats.Live, result.Stats.Head)
	fmt.Printf("lit: %d pixels\n", result.Stats.Lit)
	printMetrics(result.Metrics)
	fmt.Println()

	if series := result.LitSeries(); len(series) > 1 {
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("lit pixels per frame"),
		))
		fmt.Println()
	}
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, m[name])
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %s: %d runs x %d frames\n\n", sessionName(), runs, benchN)
	ensemble := session.NewEnsemble(cfg, runs, cfg.Seed)
	ensemble.SetMetrics(func() []session.Metric {
		return []session.Metric{metrics.NewCoverage(cfg.Width * cfg.Height)}
	})
	results, err := ensemble.Run(ctx, benchN)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tFRAMES\tTIME\tFRAMES/SEC\tCOVERAGE")

	total := 0.0
	for i, res := range results {
		total += res.FPS()
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\t%.2f%%\n",
			i, res.Seed, len(res.Frames), res.Elapsed, res.FPS(), 100*res.Metrics["coverage"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nmean: %.0f frames/sec per run\n", total/float64(len(results)))
	return nil
}

func listSessions(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tMODE\tLINES\tSPEED\tFRAMES\tSEED")

	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%d\t%d\n",
			s.ID,
			s.Name,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Width, s.Height,
			s.Lines,
			s.AverageSpeed,
			s.Frames,
			s.Seed,
		)
	}

	return w.Flush()
}

func showSession(cmd *cobra.Command, args []string) error {
	id := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	frames, err := st.LoadLines(id)
	if err != nil {
		return err
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("mode: %dx%d, %d lines, speed %d\n", meta.Width, meta.Height, meta.Lines, meta.AverageSpeed)
	fmt.Printf("palette: %d hues x %d shades\n", meta.Hues, meta.Shades)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("frames: %d, mean lit %.0f, final lit %d\n", meta.Frames, meta.MeanLit, meta.FinalLit)
	printMetrics(meta.Metrics)
	fmt.Println()

	if len(frames) < 2 {
		return nil
	}
	fmt.Println(asciigraph.Plot(storage.Lit(frames),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("lit pixels per frame"),
	))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tLINES\tSPEED\tHUES\tSHADES\tFPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%d\t%d\t%d\n",
			name, p.Width, p.Height, p.Lines, p.AverageSpeed, p.Hues, p.Shades, p.FPS)
	}
	return w.Flush()
}

func printPalette(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(5)
	fmt.Printf("%d hues x %d shades (%d entries)\n\n", pal.Hues(), pal.Shades(), pal.Len())
	for hue := 1; hue <= pal.Hues(); hue++ {
		var row strings.Builder
		row.WriteString(label.Render(fmt.Sprintf("%d", hue)))
		for b := 0; b < pal.Shades(); b++ {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex(pal.Index(hue, b))))
			row.WriteString(swatch.Render("██"))
		}
		row.WriteString("  " + pal.Hex(pal.Index(hue, 0)))
		fmt.Println(row.String())
	}
	return nil
}
