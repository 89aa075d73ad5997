// Package logger builds the zap loggers used across groove.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how log records are written.
type Config struct {
	Level      string
	Format     string // console or json
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Console is the stream for human-facing output. Nil disables it,
	// which the TUI relies on to keep the screen clean.
	Console io.Writer
}

// ParseLevel maps a config level name to a zap level. Unknown names
// fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New builds a logger from cfg. With neither a console nor a file it
// returns a no-op logger.
func New(cfg Config) (*zap.Logger, error) {
	level := ParseLevel(cfg.Level)
	var cores []zapcore.Core

	if cfg.Console != nil {
		var enc zapcore.Encoder
		if cfg.Format == "json" {
			enc = zapcore.NewJSONEncoder(encoderConfig())
		} else {
			ec := encoderConfig()
			ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
			ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
			enc = zapcore.NewConsoleEncoder(ec)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(cfg.Console), level))
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), writer, level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}
