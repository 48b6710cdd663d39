// MediDonate: terminal client for the medicine donation network.
//
// Donors register and offer unused medicine, hospitals request it, and
// administrators review stock and trigger allocation. All data lives in
// the remote MediDonate service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/medidonate/medidonate/internal/api"
	"github.com/medidonate/medidonate/internal/config"
	"github.com/medidonate/medidonate/internal/journal"
	"github.com/medidonate/medidonate/internal/tui"
	"github.com/medidonate/medidonate/internal/util"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// options holds the persistent flags.
type options struct {
	configPath string
	debug      bool
	apiURL     string
}

// env is what every command runs against, built in PersistentPreRunE.
type env struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	client  *api.Client
	closers []io.Closer
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			e.logger.Error("closing resource", "error", err)
		}
	}
	e.closers = nil
}

func main() {
	// Handle shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := &env{}
	root := newRootCommand(e)
	err := root.ExecuteContext(ctx)
	e.close()
	if err != nil {
		var exit *exitError
		if !errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}

// exitError ends the process with status 1 after the command already
// reported the failure.
type exitError struct{ msg string }

func (e *exitError) Error() string { return e.msg }

func newRootCommand(e *env) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "medidonate",
		Short:         "MediDonate terminal client",
		Long:          "MediDonate: donate unused medicine, request it for patients and manage stock allocation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			// The bare root command is the TUI.
			return e.init(cmd.Context(), opts, cmd == cmd.Root())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), e)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.apiURL, "api-url", "", "MediDonate service base URL (overrides config)")

	root.AddCommand(
		newStockCommand(e),
		newRequestsCommand(e),
		newHospitalsCommand(e),
		newProcessCommand(e),
		newVersionCommand(),
	)

	return root
}

// init loads configuration, sets up logging and builds the API client.
func (e *env) init(ctx context.Context, opts *options, tuiMode bool) error {
	cfg, cfgPath, err := config.Load(ctx, opts.configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
		if err := cfg.API.Validate(); err != nil {
			return fmt.Errorf("invalid --api-url: %w", err)
		}
	}

	logger, closer, err := newLogger(cfg, opts.debug, tuiMode)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	e.cfg = cfg
	e.cfgPath = cfgPath
	e.logger = logger
	if closer != nil {
		e.closers = append(e.closers, closer)
	}
	e.client = api.New(cfg.API, logger)

	return nil
}

// newLogger builds the process logger. The TUI owns the terminal, so it
// logs JSON to a rotated file; subcommands log text to stderr.
func newLogger(cfg *config.Config, debug, tuiMode bool) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if !tuiMode {
		return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts)), nil, nil
	}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	if logPath == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, handlerOpts)), nil, nil
	}

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAgeDays,
	}
	return slog.New(slog.NewJSONHandler(rotator, handlerOpts)), rotator, nil
}

// openJournal recovers and opens the activity journal. It returns nil
// when the journal is disabled.
func (e *env) openJournal(ctx context.Context) (*journal.Journal, error) {
	if !e.cfg.Journal.Enabled {
		return nil, nil
	}

	path, err := config.EnsureJournalPath(e.cfg)
	if err != nil {
		return nil, err
	}

	report, err := journal.Recover(path)
	if err != nil {
		e.logger.Error("journal recovery failed", "path", path, "steps", len(report.Steps))
		return nil, err
	}
	switch report.Result {
	case journal.RecoveryQuarantined:
		e.logger.Warn("damaged journal set aside", "quarantined", report.QuarantinedPath)
	case journal.RecoveryHealthy:
		e.logger.Debug("journal integrity verified", "wal_recovered", report.WALRecovered)
	}

	j, err := journal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	result, err := j.Migrate(ctx)
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}
	if len(result.Applied) > 0 {
		e.logger.Info("applied journal migrations",
			"count", len(result.Applied),
			"to_version", result.TargetVersion,
		)
	}

	pruneJournal(ctx, j, e.cfg.Journal.RetentionDays, time.Now(), e.logger)

	e.closers = append(e.closers, j)
	return j, nil
}

// pruneJournal drops entries recorded before the start of the day that is
// days before now. Zero days keeps everything.
func pruneJournal(ctx context.Context, j *journal.Journal, days int, now time.Time, logger *slog.Logger) {
	if days <= 0 {
		return
	}

	cutoff := util.StartOfDay(now).AddDate(0, 0, -days)
	n, err := j.Prune(ctx, cutoff)
	if err != nil {
		logger.Warn("journal pruning failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("pruned journal entries", "count", n, "cutoff", cutoff)
	}
}

func runTUI(ctx context.Context, e *env) error {
	e.logger.Info("MediDonate starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", e.cfgPath,
		"api", e.client.BaseURL(),
	)

	j, err := e.openJournal(ctx)
	if err != nil {
		// The journal is a convenience; run without it.
		e.logger.Warn("activity journal unavailable", "error", err)
	}

	// Set version info for TUI
	tui.Version = Version
	tui.BuildTime = BuildTime

	deps := tui.Deps{
		Client:  e.client,
		Config:  e.cfg,
		Journal: j,
		Clock:   util.SystemClock{},
		Logger:  e.logger,
	}

	if err := tui.Run(ctx, deps); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	e.logger.Info("MediDonate shutdown complete")
	return nil
}
