package main

import (
	"fmt"
	"io"
	"os"

	"emperror.dev/errors"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/prabalesh/ticktop/internal/collector"
	"github.com/prabalesh/ticktop/internal/config"
	"github.com/prabalesh/ticktop/internal/ui"
	"github.com/prabalesh/ticktop/internal/widgets"
)

var version = "dev"

// options holds the command-line flags.
type options struct {
	configPath string
	tickRate   string
	source     string
	history    int
	logFile    string
	logLevel   string
}

var rootCmd = newRootCmd(&options{})

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ticktop",
		Short:        "Terminal dashboard for memory, CPU and disk usage",
		Long:         `ticktop samples system resources on fixed cadences and charts the last 100 ticks of each in the terminal.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", config.Path(), "Path to the TOML config file.")
	flags.StringVar(&opts.tickRate, "tick-rate", "", "Base tick duration, e.g. 500ms. Overrides the config file.")
	flags.StringVar(&opts.source, "source", "", "Stat source. One of psutil, procfs.")
	flags.IntVar(&opts.history, "history", 0, "Samples kept per series (at least 101).")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file. Logging is off when empty.")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level. One of debug, info, warn, error.")

	return cmd
}

func run(cfg config.Config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	provider, err := collector.New(cfg.Source)
	if err != nil {
		return err
	}

	ws := buildWidgets(cfg, provider)
	logger.WithFields(log.Fields{
		"source":    cfg.Source,
		"tick_rate": cfg.TickRate.Duration,
		"widgets":   len(ws),
	}).Info("starting ticktop")

	app := ui.NewApp(ws, cfg.TickRate.Duration, logger)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "run dashboard")
	}
	return nil
}

// loadConfig reads the config file and applies any flags the user set.
func (o *options) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("tick-rate") {
		if err := cfg.TickRate.UnmarshalText([]byte(o.tickRate)); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("source") {
		cfg.Source = o.source
	}
	if flags.Changed("history") {
		cfg.History = o.history
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// newLogger logs to cfg.LogFile. The terminal belongs to the dashboard, so
// without a file the logger discards everything.
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	logger := log.New()
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid log level")
	}
	logger.SetLevel(lvl)

	if cfg.LogFile == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", cfg.LogFile)
	}
	logger.SetOutput(f)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	return logger, func() { _ = f.Close() }, nil
}

func buildWidgets(cfg config.Config, provider collector.Provider) []widgets.Widget {
	var ws []widgets.Widget
	if w := cfg.Widgets.Mem; w.Enabled {
		ws = append(ws, widgets.NewMemWidget(w.Interval, cfg.History, provider))
	}
	if w := cfg.Widgets.CPU; w.Enabled {
		ws = append(ws, widgets.NewCPUWidget(w.Interval, cfg.History, provider))
	}
	if w := cfg.Widgets.Disk; w.Enabled {
		ws = append(ws, widgets.NewDiskWidget(w.Interval, cfg.History, w.Mounts, provider))
	}
	return ws
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
