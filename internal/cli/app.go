package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/config"
	"github.com/yamkelajack06/Study-Flow/internal/logging"
	"github.com/yamkelajack06/Study-Flow/internal/metrics"
	"github.com/yamkelajack06/Study-Flow/internal/storage"
	"github.com/yamkelajack06/Study-Flow/internal/timetable"
)

// app is everything a command needs once the config has been read.
type app struct {
	cfgPath  string
	cfg      *config.Config
	store    *timetable.Store
	strategy storage.Strategy
	registry *prometheus.Registry
	kit      PromptKit
	logFile  io.Closer
}

// newApp loads the config at cfgPath and opens the timetable it points to.
func newApp(ctx context.Context, cfgPath, homeDir string, kit PromptKit) (*app, error) {
	cfg, err := config.Load(cfgPath, homeDir)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, logFile, err := logging.Open(cfg.DataDir, level)
	if err != nil {
		return nil, err
	}

	strategy, err := storage.NewStrategyFromConfig(ctx, cfg, logger)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPrometheus(reg)
	if err != nil {
		_ = strategy.Close()
		_ = logFile.Close()
		return nil, err
	}

	cats := make([]timetable.Category, len(cfg.Categories))
	for i, c := range cfg.Categories {
		cats[i] = timetable.Category{Name: c.Name, Color: c.Color}
	}

	store, err := timetable.New(ctx, strategy,
		timetable.WithLogger(logger),
		timetable.WithConfirm(timetable.ConfirmFunc(kit.Confirm)),
		timetable.WithMetrics(rec),
		timetable.WithCategories(cats...),
	)
	if err != nil {
		_ = strategy.Close()
		_ = logFile.Close()
		return nil, err
	}

	logger.Debug("session opened", "config", cfgPath, "user", cfg.Session.UserID, "driver", cfg.Storage.Driver)
	return &app{
		cfgPath:  cfgPath,
		cfg:      cfg,
		store:    store,
		strategy: strategy,
		registry: reg,
		kit:      kit,
		logFile:  logFile,
	}, nil
}

func (a *app) Close() error {
	return errors.Join(a.strategy.Close(), a.logFile.Close())
}

// withApp opens the app for cmd, runs fn and closes it again. With --stats
// the operation counters are printed afterwards.
func withApp(cmd *cobra.Command, kit PromptKit, fn func(a *app) error) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.Path(homeDir)
	}

	a, err := newApp(cmd.Context(), cfgPath, homeDir, kit)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	runErr := fn(a)
	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		if err := printStats(cmd.ErrOrStderr(), a.registry); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

func printStats(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			_, _ = fmt.Fprintf(w, "%s %s\n", Silent(name), Primary(fmt.Sprintf("%g", m.GetCounter().GetValue())))
		}
	}
	return nil
}

// resultError turns a rejected store result into an error whose text is
// the user-facing message.
type resultError struct {
	res timetable.Result
}

func (e *resultError) Error() string { return e.res.Message }
func (e *resultError) Unwrap() error { return e.res.Err }

func failed(res timetable.Result) error {
	return &resultError{res: res}
}
