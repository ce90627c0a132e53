package logger

import (
	"cyberar_admin_backend/internal/config"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log stays a no-op logger until InitLogger runs, so packages may log from tests.
var Log = zap.NewNop()

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

func InitLogger(cfg *config.Config) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	filename := cfg.Log.File
	if filename == "" {
		filename = "logs/app.log"
	}
	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	consoleWriter := zapcore.AddSync(os.Stdout)

	SetLevel(cfg)

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			fileWriter,
			level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			consoleWriter,
			level,
		),
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// SetLevel applies the configured level; debug server mode forces debug logging.
// It is safe to call while the logger is in use.
func SetLevel(cfg *config.Config) {
	level.SetLevel(ParseLevel(cfg))
}

func ParseLevel(cfg *config.Config) zapcore.Level {
	if cfg.Server.Mode == "debug" {
		return zap.DebugLevel
	}
	l, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zap.InfoLevel
	}
	return l
}
