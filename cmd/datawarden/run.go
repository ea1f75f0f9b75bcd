package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"datawarden-hq/vigil/internal/sysops"
	"datawarden-hq/vigil/pkg/alert"
	"datawarden-hq/vigil/pkg/cli"
	"datawarden-hq/vigil/pkg/config"
	"datawarden-hq/vigil/pkg/journal"
	"datawarden-hq/vigil/pkg/journal/recorder"
	"datawarden-hq/vigil/pkg/journal/retention"
	journalstorage "datawarden-hq/vigil/pkg/journal/storage"
	"datawarden-hq/vigil/pkg/monitor"
	"datawarden-hq/vigil/pkg/snapshot"
	"datawarden-hq/vigil/pkg/store"
	"datawarden-hq/vigil/pkg/store/codec"
	"datawarden-hq/vigil/pkg/usage"
)

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Datawarden Vigil daemon",
	Long: `Start the usage monitor with the specified configuration.

The daemon samples the process table on the configured check interval,
accumulates per-application disk I/O into the usage ledger, alerts when an
application crosses the data limit, and persists the ledger on the persist
interval and at shutdown.

Examples:
  # Start with default config
  datawarden run

  # Start with custom config
  datawarden run --config /etc/datawarden/config.yaml

  # Validate config without starting the daemon
  datawarden run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the daemon")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	// Give up any setuid elevation before touching configuration or disk.
	if err := sysops.DropPrivileges(); err != nil {
		return fmt.Errorf("dropping privileges: %w", err)
	}

	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	setupLogging(&cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Datawarden Vigil v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// One ID per daemon invocation ties log lines from the same run together.
	slog.Info("daemon starting", "run_id", uuid.NewString(), "version", Version)

	// Process snapshot source
	source, err := snapshot.NewProcfsSource()
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	// Usage state backend
	backend, err := buildStoreBackend(&cfg.Store)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer backend.Close()
	fmt.Printf("✓ Usage store initialized (%s)\n", cfg.Store.Backend)

	// Alert delivery
	notifier := buildNotifier(cfg.Alerts.Notifier)
	throttle := alert.NewThrottle(cfg.Alerts.CooldownWindow)

	// Alert journal (optional)
	var journalRecorder *recorder.Recorder
	if cfg.Alerts.Journal.Enabled {
		slog.Info("initializing alert journal", "backend", cfg.Alerts.Journal.Backend)

		var journalStorage journal.Storage
		switch cfg.Alerts.Journal.Backend {
		case "sqlite":
			journalStorage, err = journalstorage.NewSQLiteStorage(&journalstorage.SQLiteConfig{
				Path:         cfg.Alerts.Journal.SQLite.Path,
				MaxOpenConns: cfg.Alerts.Journal.SQLite.MaxOpenConns,
				MaxIdleConns: cfg.Alerts.Journal.SQLite.MaxIdleConns,
				BusyTimeout:  cfg.Alerts.Journal.SQLite.BusyTimeout,
			})
			if err != nil {
				return fmt.Errorf("creating journal storage: %w", err)
			}
		case "memory":
			journalStorage = journalstorage.NewMemoryStorage()
		default:
			return fmt.Errorf("unsupported journal backend: %s", cfg.Alerts.Journal.Backend)
		}
		defer journalStorage.Close()

		journalRecorder = recorder.NewRecorder(journalStorage, &recorder.Config{
			Enabled:      true,
			AsyncBuffer:  cfg.Alerts.Journal.Recorder.AsyncBuffer,
			WriteTimeout: cfg.Alerts.Journal.Recorder.WriteTimeout,
		})
		defer journalRecorder.Close()

		if cfg.Alerts.Journal.Retention.PruneSchedule != "" {
			days := cfg.Alerts.Journal.Retention.Days
			if days < 0 {
				days = 0 // age-based pruning disabled
			}
			pruner := retention.NewPruner(journalStorage, &retention.Config{
				RetentionDays:       days,
				PruneSchedule:       cfg.Alerts.Journal.Retention.PruneSchedule,
				ArchiveBeforeDelete: cfg.Alerts.Journal.Retention.ArchiveBeforeDelete,
				ArchivePath:         cfg.Alerts.Journal.Retention.ArchivePath,
				MaxEntries:          cfg.Alerts.Journal.Retention.MaxEntries,
			})
			if err := pruner.Start(context.Background()); err != nil {
				slog.Warn("failed to start retention scheduler", "error", err)
			} else {
				defer pruner.Stop()
				if next := pruner.NextPruning(); next != nil {
					slog.Debug("journal retention scheduler started", "next_pruning", next)
				}
			}
		}

		fmt.Println("✓ Alert journal initialized")
	}

	// Metrics (optional)
	var metrics *monitor.Metrics
	var metricsHandler http.Handler
	if cfg.Telemetry.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		metrics = monitor.NewMetrics(registry)
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})
	}

	// Monitor service
	ledger := usage.NewLedger()
	svc := monitor.NewService(&monitor.Config{
		DataLimitBytes:  cfg.Monitor.DataLimitBytes,
		CheckInterval:   cfg.Monitor.CheckInterval,
		PersistInterval: cfg.Monitor.PersistInterval,
	}, monitor.Deps{
		Source:   source,
		Ledger:   ledger,
		Throttle: throttle,
		Notifier: notifier,
		Store:    backend,
		Journal:  journalDep(journalRecorder),
		Metrics:  metrics,
	})

	if err := restoreState(svc, cfg); err != nil {
		return cli.NewCommandError("run", err)
	}
	fmt.Printf("✓ Usage state restored (%d applications)\n", ledger.Len())

	ctx := cli.SetupSignalHandler()
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return svc.Run(ctx)
	})

	// Config hot-reload (optional)
	if cfg.WatchConfig {
		watcher, err := config.NewWatcher(config.DefaultWatcherConfig(cfgFile), slog.Default())
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		group.Go(func() error {
			return watcher.Watch(ctx, func() error {
				if err := config.ReloadConfig(cfgFile); err != nil {
					return err
				}
				reloaded := config.GetConfig()
				svc.ApplySettings(reloaded.Monitor.DataLimitBytes, reloaded.Alerts.CooldownWindow)
				return nil
			})
		})
		defer watcher.Stop()
	}

	// Cooldown entry eviction (optional)
	if cfg.Alerts.CooldownRetention > 0 {
		retain := cfg.Alerts.CooldownRetention
		group.Go(func() error {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if n := throttle.PruneStale(retain); n > 0 {
						slog.Debug("pruned stale cooldown entries", "removed", n)
					}
				}
			}
		})
	}

	// Metrics endpoint (optional)
	if metricsHandler != nil {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, metricsHandler)
		srv := &http.Server{
			Addr:    cfg.Telemetry.Metrics.ListenAddress,
			Handler: mux,
		}
		group.Go(func() error {
			slog.Info("metrics endpoint listening",
				"address", cfg.Telemetry.Metrics.ListenAddress,
				"path", cfg.Telemetry.Metrics.Path,
			)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path)
	}

	fmt.Println("\n✓ Monitor running. Press Ctrl+C to stop")

	if err := group.Wait(); err != nil {
		return cli.NewCommandError("run", err)
	}
	fmt.Println("✓ Monitor stopped")
	return nil
}

// setupLogging installs the process-wide slog handler from the logging
// configuration. Format "auto" picks text on a terminal and JSON elsewhere.
func setupLogging(cfg *config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	format := cfg.Format
	if format == "auto" || format == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			format = "text"
		} else {
			format = "json"
		}
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// buildStoreBackend constructs the usage state backend from configuration.
func buildStoreBackend(cfg *config.StoreConfig) (store.Backend, error) {
	switch cfg.Backend {
	case "file":
		return store.NewFileBackend(store.FileBackendConfig{
			Path:        cfg.Path,
			Compression: codec.Config{Level: cfg.CompressionLevel},
		})
	case "sqlite":
		return store.NewSQLiteBackendWithConfig(store.SQLiteBackendConfig{
			DBPath:             cfg.Path,
			CheckpointInterval: cfg.SQLite.CheckpointInterval,
			BusyTimeout:        cfg.SQLite.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}

// buildNotifier selects the alert delivery backend. A desktop environment
// without a notification helper degrades to the log notifier so the daemon
// still runs headless.
func buildNotifier(kind string) alert.Notifier {
	switch kind {
	case "desktop":
		notifier, err := alert.NewDesktopNotifier()
		if err != nil {
			slog.Warn("desktop notifier unavailable, falling back to log", "error", err)
			return alert.NewLogNotifier()
		}
		return notifier
	case "log":
		return alert.NewLogNotifier()
	default: // "none"
		return nil
	}
}

// journalDep adapts the optional recorder to the monitor's Journal
// dependency without wrapping a nil pointer in a non-nil interface.
func journalDep(r *recorder.Recorder) monitor.Journal {
	if r == nil {
		return nil
	}
	return r
}

// restoreState loads persisted usage into the service, honoring the
// reset-on-corrupt policy: with it set, a corrupt state file is moved
// aside for inspection and the daemon starts with an empty ledger.
func restoreState(svc *monitor.Service, cfg *config.Config) error {
	err := svc.Restore(context.Background())
	if err == nil {
		return nil
	}
	if !errors.Is(err, codec.ErrCorruptState) || !cfg.Store.ResetOnCorrupt {
		return err
	}

	slog.Error("persisted usage state corrupt, starting with empty ledger", "error", err)
	if cfg.Store.Backend == "file" {
		aside := cfg.Store.Path + ".corrupt"
		if renameErr := os.Rename(cfg.Store.Path, aside); renameErr != nil {
			slog.Warn("could not move corrupt state file aside", "error", renameErr)
		} else {
			slog.Info("corrupt state file moved aside", "path", aside)
		}
	}
	return nil
}
