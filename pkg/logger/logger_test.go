package logger

import (
	"cyberar_admin_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		mode string
		lvl  string
		want zap.AtomicLevel
	}{
		{"debug mode wins", "debug", "error", zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"configured level", "release", "warn", zap.NewAtomicLevelAt(zap.WarnLevel)},
		{"unknown level", "release", "loud", zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Server: config.ServerConfig{Mode: tt.mode}, Log: config.LogConfig{Level: tt.lvl}}
			assert.Equal(t, tt.want.Level(), ParseLevel(cfg))
		})
	}
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	assert.NotPanics(t, func() {
		Log.Info("before init")
	})
}
