package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabalesh/ticktop/internal/collector"
	"github.com/prabalesh/ticktop/internal/config"
)

const fileConfig = `
tick_rate = "2s"
history = 150
source = "procfs"

[widgets.disk]
enabled = true
mounts = ["/"]
`

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(fileConfig), 0o600))

	tests := []struct {
		name    string
		flags   map[string]string
		check   func(t *testing.T, cfg config.Config)
		wantErr bool
	}{
		{
			name: "file values without flags",
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, 2*time.Second, cfg.TickRate.Duration)
				assert.Equal(t, 150, cfg.History)
				assert.Equal(t, collector.SourceProcfs, cfg.Source)
			},
		},
		{
			name:  "history",
			flags: map[string]string{"history": "300"},
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, 300, cfg.History)
				assert.Equal(t, 2*time.Second, cfg.TickRate.Duration)
			},
		},
		{
			name:  "tick rate",
			flags: map[string]string{"tick-rate": "250ms"},
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, 250*time.Millisecond, cfg.TickRate.Duration)
				assert.Equal(t, 150, cfg.History)
			},
		},
		{
			name:  "source and logging",
			flags: map[string]string{"source": "psutil", "log-level": "debug", "log-file": "/tmp/ticktop.log"},
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, collector.SourcePsutil, cfg.Source)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "/tmp/ticktop.log", cfg.LogFile)
			},
		},
		{name: "history below window", flags: map[string]string{"history": "50"}, wantErr: true},
		{name: "bad tick rate", flags: map[string]string{"tick-rate": "soon"}, wantErr: true},
		{name: "unknown source", flags: map[string]string{"source": "wmi"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &options{}
			cmd := newRootCmd(opts)
			require.NoError(t, cmd.Flags().Set("config", path))
			for k, v := range tt.flags {
				require.NoError(t, cmd.Flags().Set(k, v))
			}

			cfg, err := opts.loadConfig(cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestBuildWidgets(t *testing.T) {
	cfg := config.Default()
	cfg.Widgets.Disk.Enabled = true
	cfg.Widgets.CPU.Enabled = false

	ws := buildWidgets(cfg, collector.NewStatsCollector())
	require.Len(t, ws, 2)
	assert.Equal(t, "mem", ws[0].ID())
	assert.Equal(t, "disk", ws[1].ID())
}

func TestNewLoggerWritesToFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "ticktop.log")
	cfg.LogLevel = "warn"

	logger, closeLog, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	closeLog()

	out, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "shown")
	assert.NotContains(t, string(out), "hidden")
}
