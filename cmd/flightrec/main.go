package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"flightrec/internal/tui"
	"flightrec/pkg/config"
	"flightrec/pkg/core"
	"flightrec/pkg/db"
	"flightrec/pkg/db/maintenance"
	"flightrec/pkg/dialog"
	"flightrec/pkg/kinematics"
	"flightrec/pkg/logging"
	"flightrec/pkg/mfd"
	"flightrec/pkg/probe"
	"flightrec/pkg/recorder"
	"flightrec/pkg/session"
	"flightrec/pkg/sim"
	"flightrec/pkg/store"
	"flightrec/pkg/version"
	"flightrec/pkg/view"
)

const defaultConfigPath = "configs/flightrec.yaml"

var (
	configPath   = flag.String("config", defaultConfigPath, "Path to the config file")
	initConfig   = flag.Bool("init-config", false, "Generate default config file and exit")
	variantFlag  = flag.String("variant", "", "Recorder variant to run: mfd or dialog")
	headlessFlag = flag.Duration("headless", 0, "Record without a terminal view for the given duration")
	sessionsFlag = flag.Int("sessions", 0, "List the most recent recording sessions and exit")
)

// options are the command line choices that are not part of the config file.
type options struct {
	variant  string
	headless time.Duration
}

func main() {
	flag.Parse()

	// A missing .env is normal; only a malformed one is worth a word.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Ignoring .env: %v\n", err)
	}
	path := *configPath
	if env := os.Getenv("FLIGHTREC_CONFIG"); env != "" && path == defaultConfigPath {
		path = env
	}

	if *initConfig {
		if err := config.GenerateDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", path)
		return
	}

	if *sessionsFlag > 0 {
		if err := listSessions(context.Background(), path, *sessionsFlag, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list sessions: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := options{variant: *variantFlag, headless: *headlessFlag}
	if err := run(context.Background(), path, opts); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, opts options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	appCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the view; console logging only when headless.
	cleanupLogs, err := logging.Init(&appCfg.Log, opts.headless > 0)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Flight recorder started", "version", version.Version)

	dbConn, st, err := initDB(appCfg)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := maintenance.Run(ctx, st, dbConn, time.Duration(appCfg.DB.SessionRetention)); err != nil {
		slog.Error("Maintenance tasks failed", "error", err)
	}

	simClient, err := initializeSimClient(appCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize sim client: %w", err)
	}
	defer simClient.Close()

	// Startup Probes
	results := probe.Run(ctx, []probe.Probe{
		probe.Simulator(simClient),
		probe.LogDir(appCfg.Recorder.LogDir),
		probe.RecorderConfig(appCfg.Recorder.ConfigFile),
	})
	if err := probe.AnalyzeResults(results); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	prov := config.NewProvider(appCfg, st)
	variant, err := selectVariant(ctx, prov, opts.variant)
	if err != nil {
		return err
	}

	rec, err := initRecorder(ctx, appCfg, variant, simClient)
	if err != nil {
		return err
	}
	defer func() {
		if err := rec.Close(); err != nil {
			slog.Error("Failed to save recorder settings", "error", err)
		}
	}()

	var v view.View
	if variant == config.VariantDialog {
		v = dialog.New(ctx, rec, simClient, locator(simClient), prov)
	} else {
		v = mfd.New(ctx, rec, prov)
	}

	// Scheduler
	sched := core.NewScheduler(simClient, rec, time.Duration(appCfg.Sim.StepInterval), appCfg.Sim.TimeAccel)

	// Session Persistence
	persistenceJob := core.NewSessionPersistenceJob(session.NewManager(st), rec, variant, 5*time.Second)
	if err := persistenceJob.Begin(ctx); err != nil {
		slog.Error("Failed to open recording session", "error", err)
	}
	defer func() {
		// The run context may already be gone; the final count still has to land.
		if err := persistenceJob.Finish(context.Background()); err != nil {
			slog.Error("Failed to close recording session", "error", err)
		}
	}()
	sched.AddJob(persistenceJob)
	sched.AddJob(core.NewFlightTraceJob(10 * time.Second))
	sched.AddResettable(rec)
	sched.AddResettable(persistenceJob)

	return serve(ctx, opts, sched, v, prov.FrameInterval(ctx))
}

func initDB(appCfg *config.Config) (*db.DB, store.Store, error) {
	dbConn, err := db.Init(appCfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return dbConn, store.NewSQLiteStore(dbConn), nil
}

// selectVariant prefers the command line and remembers it for the next run.
func selectVariant(ctx context.Context, prov *config.UnifiedProvider, flagVal string) (string, error) {
	switch flagVal {
	case "":
		return prov.Variant(ctx), nil
	case config.VariantMFD, config.VariantDialog:
		if err := prov.Set(ctx, config.KeyVariant, flagVal); err != nil {
			slog.Warn("Failed to remember variant", "error", err)
		}
		return flagVal, nil
	}
	return "", fmt.Errorf("invalid variant '%s': must be '%s' or '%s'", flagVal, config.VariantMFD, config.VariantDialog)
}

// initRecorder loads the saved recorder settings and opens the recorder on
// the host's focus vessel. The MFD follows sim time; the dialog follows wall
// time and starts stopped.
func initRecorder(ctx context.Context, appCfg *config.Config, variant string, client sim.Client) (*recorder.Recorder, error) {
	def := config.DefaultRecorderSettings()
	def.SampleDT = time.Duration(appCfg.Recorder.SampleInterval).Seconds()
	if appCfg.Recorder.LogDir != "" {
		def.LogDir = appCfg.Recorder.LogDir
	}
	settings, err := config.LoadRecorder(appCfg.Recorder.ConfigFile, def)
	if err != nil {
		slog.Warn("Using default recorder settings", "error", err)
	}

	opts := recorder.Options{
		Capacity:    appCfg.Recorder.Capacity,
		MinAltitude: appCfg.Recorder.MinAltitude,
		ConfigPath:  appCfg.Recorder.ConfigFile,
		Logger:      slog.With("variant", variant),
	}
	if variant == config.VariantDialog {
		opts.Clock = recorder.ClockSystem
		opts.GLoad = kinematics.NetComponentG{}
		settings.Paused = true
	} else {
		opts.Clock = recorder.ClockSim
		opts.GLoad = kinematics.SpeedDeltaG{}
	}
	opts.Settings = settings

	rec, err := recorder.New(opts, locator(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create recorder: %w", err)
	}
	if err := rec.Open(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to open recorder: %w", err)
	}
	slog.Info("Recorder ready",
		"vessel", rec.Vessel(),
		"interval", rec.Interval(),
		"log", rec.LogPath(),
	)
	return rec, nil
}

func locator(client sim.Client) sim.Locator {
	if loc, ok := client.(sim.Locator); ok {
		return loc
	}
	return nil
}

// serve drives the scheduler until the user quits, a signal arrives or the
// headless duration is over.
func serve(ctx context.Context, opts options, sched *core.Scheduler, v view.View, frame time.Duration) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	if opts.headless > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.headless)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)
		select {
		case sig := <-quit:
			slog.Info("Shutting down", "signal", sig.String())
			stop()
		case <-gctx.Done():
		}
		return nil
	})
	g.Go(func() error {
		defer stop()
		if opts.headless > 0 {
			sched.Start(gctx)
			return nil
		}
		return runTerminal(gctx, sched, v, frame)
	})
	return g.Wait()
}

func runTerminal(ctx context.Context, sched *core.Scheduler, v view.View, frame time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	return tui.New(screen, v, sched, frame).Run(ctx)
}

// listSessions prints the newest recording sessions.
func listSessions(ctx context.Context, configPath string, limit int, w io.Writer) error {
	appCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbConn, st, err := initDB(appCfg)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	sessions, err := st.ListSessions(ctx, limit)
	if err != nil {
		return err
	}
	for i := range sessions {
		s := &sessions[i]
		ended := "recording"
		if !s.Open() {
			ended = s.EndedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s  %-6s  %-12s  %6d samples  %s  to  %s  %s\n",
			s.ID[:min(8, len(s.ID))], s.Variant, s.Vessel, s.Samples,
			s.StartedAt.Local().Format(time.DateTime), ended, s.LogPath)
	}
	return nil
}
