package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/wishlist-scheduler/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		override  string
		expectErr bool
		enabled   zapcore.Level
		disabled  zapcore.Level
	}{
		{
			name:     "Defaults to info json",
			enabled:  zapcore.InfoLevel,
			disabled: zapcore.DebugLevel,
		},
		{
			name:     "Configured level",
			cfg:      config.LoggingConfig{Level: "warn", Format: "console"},
			enabled:  zapcore.WarnLevel,
			disabled: zapcore.InfoLevel,
		},
		{
			name:     "Override wins",
			cfg:      config.LoggingConfig{Level: "error"},
			override: "debug",
			enabled:  zapcore.DebugLevel,
			disabled: zapcore.DebugLevel - 1,
		},
		{
			name:      "Invalid level",
			cfg:       config.LoggingConfig{Level: "verbose"},
			expectErr: true,
		},
		{
			name:      "Invalid format",
			cfg:       config.LoggingConfig{Format: "xml"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if (err != nil) != tt.expectErr {
				t.Fatalf("New() error = %v, expectErr %v", err, tt.expectErr)
			}
			if tt.expectErr {
				return
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("expected level %s to be enabled", tt.enabled)
			}
			if logger.Core().Enabled(tt.disabled) {
				t.Errorf("expected level %s to be disabled", tt.disabled)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scheduler.log")

	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hello from the scheduler")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from the scheduler") {
		t.Errorf("log file missing entry: %s", data)
	}
}
