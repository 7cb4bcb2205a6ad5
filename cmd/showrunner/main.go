package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"showrunner/internal/engine"
	"showrunner/internal/gate"
	"showrunner/internal/handlers"
	"showrunner/internal/logging"
	"showrunner/internal/metrics"
	"showrunner/internal/notifier"
	"showrunner/internal/playlist"
	"showrunner/internal/sequencer"
	"showrunner/internal/startup"
)

const (
	metricsCollectInterval = 15 * time.Second
	shutdownTimeout        = 10 * time.Second
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run wires the components together, plays the folder and returns the exit
// code: 0 when playback stopped normally, 1 on a fatal halt or bad config.
func run(args []string, stdout io.Writer) int {
	startTime := time.Now()

	fs := flag.NewFlagSet("showrunner", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	showVersion := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintln(stdout, "Usage: showrunner [flags] [folder]")
		fmt.Fprintln(stdout, "")
		fmt.Fprintln(stdout, "Plays every presentation in folder in order, asking before each next one.")
		fmt.Fprintln(stdout, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		info := startup.GetBuildInfo()
		fmt.Fprintf(stdout, "showrunner %s (commit %s, built %s, %s %s/%s)\n",
			info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
		return 0
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 1
	}

	config, err := startup.LoadConfig(*configPath, fs.Arg(0))
	if err != nil {
		logging.Error("Configuration error: %v", err)
		return 1
	}

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)

	store := playlist.NewStore(config.Folder, config.Filter())
	scanStart := time.Now()
	pl, err := store.Refresh()
	if err != nil {
		logging.Error("Failed to read presentation folder: %v", err)
		return 1
	}
	startup.LogPlaylistLoaded(pl, time.Since(scanStart))

	eng, err := engine.NewViewer(config.ViewerConfig())
	startup.LogEngineInit(config.EngineCommand, err)
	if err != nil {
		return 1
	}

	confirm := gate.New(config.GateKind, os.Stdin, stdout)
	seq := sequencer.New(store, eng, confirm, config.SequencerConfig(),
		sequencer.WithObserver(metrics.NewSequencerObserver()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	watchDone := startWatcher(watchCtx, config, seq)

	var srv *http.Server
	if config.MetricsEnabled {
		srv = startStatusServer(config, seq)
	}

	collector := metrics.NewCollector(&statsAdapter{seq: seq, store: store}, metricsCollectInterval)
	collector.Start()

	startup.LogServerStarted(startup.ServerConfig{
		Folder:          config.Folder,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})

	outcome := seq.Run(ctx)

	shutdown(outcome, stopWatch, watchDone, collector, srv)

	if !outcome.Reason.Graceful() {
		return 1
	}
	return 0
}

// newNotifier builds the configured change notifier.
func newNotifier(config *startup.Config) notifier.Notifier {
	if config.NotifierKind == notifier.KindPoll {
		return notifier.NewPoll(config.Filter(), config.NotifierInterval, config.SettleDelay)
	}
	return notifier.NewFS(config.Filter(), config.SettleDelay)
}

// startWatcher feeds folder changes to the sequencer. The returned channel
// is closed once the watcher has stopped. Playback continues without
// reloads when the folder cannot be watched.
func startWatcher(ctx context.Context, config *startup.Config, seq *sequencer.Sequencer) <-chan struct{} {
	done := make(chan struct{})

	events, err := newNotifier(config).Subscribe(ctx, config.Folder)
	startup.LogWatcherInit(string(config.NotifierKind), config.Folder, err)
	if err != nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		seq.WatchChanges(ctx, events)
	}()
	return done
}

func startStatusServer(config *startup.Config, seq *sequencer.Sequencer) *http.Server {
	routerConfig := handlers.DefaultRouterConfig()
	routerConfig.Logging.LogHealthChecks = config.LogHealthChecks

	router := handlers.New(seq).Router(routerConfig)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	srv := newStatusServer(config.MetricsPort, router)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Status server error: %v", err)
		}
	}()
	return srv
}

func newStatusServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func shutdown(outcome sequencer.Outcome, stopWatch context.CancelFunc, watchDone <-chan struct{}, collector *metrics.Collector, srv *http.Server) {
	startup.LogShutdownInitiated(outcome.String())

	startup.LogShutdownStep("Stopping folder watcher")
	stopWatch()
	<-watchDone
	startup.LogShutdownStepComplete("Folder watcher stopped")

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		startup.LogShutdownStep("Shutting down status server")
		if err := srv.Shutdown(ctx); err != nil {
			logging.Warn("Server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Status server stopped")
		}
	}

	startup.LogShutdownComplete()
}

// statsAdapter exposes sequencer counters to the metrics collector.
type statsAdapter struct {
	seq   *sequencer.Sequencer
	store *playlist.Store
}

// GetStats implements metrics.StatsProvider
func (a *statsAdapter) GetStats() metrics.Stats {
	return metrics.Stats{
		PlaylistSize:    a.store.Snapshot().Len(),
		PlaylistVersion: a.store.Version(),
		Played:          a.seq.Played(),
		Uptime:          a.seq.Uptime(),
	}
}
