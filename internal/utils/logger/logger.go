// Package logger configures the structured, rotating logger shared by every
// irrigo process.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	defaultLogPath       = "./logs/scheduler.log"
	defaultMaxSize       = 100 // megabytes
	defaultMaxBackups    = 5
	defaultMaxAge        = 30 // days
	defaultCompress      = true
	defaultBufferSize    = 256 * 1024
	defaultFlushInterval = 30 * time.Second
)

// New builds a zap.Logger whose destination, level, and encoding are derived
// from cfg.Environment: development logs JSON-plus-console at debug level,
// everything else logs JSON-only at info level through a rotating file.
func New(cfg *types.ServiceConfig) (*zap.Logger, error) {
	if cfg == nil {
		return nil, irrigoerrors.NewError("VALIDATION_ERROR", "service configuration cannot be nil")
	}

	if err := os.MkdirAll(filepath.Dir(defaultLogPath), 0750); err != nil {
		return nil, irrigoerrors.WrapError(err, "failed to create log directory")
	}

	rotator := &lumberjack.Logger{
		Filename:   defaultLogPath,
		MaxSize:    defaultMaxSize,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAge,
		Compress:   defaultCompress,
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var logLevel zapcore.Level
	switch cfg.Environment {
	case "production", "staging":
		logLevel = zapcore.InfoLevel
	default:
		logLevel = zapcore.DebugLevel
	}

	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)
	bufferedWriter := &zapcore.BufferedWriteSyncer{
		WS:            zapcore.AddSync(rotator),
		Size:          defaultBufferSize,
		FlushInterval: defaultFlushInterval,
	}

	var core zapcore.Core
	if cfg.Environment == "development" {
		consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
		core = zapcore.NewTee(
			zapcore.NewCore(jsonEncoder, bufferedWriter, logLevel),
			zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), logLevel),
		)
	} else {
		core = zapcore.NewCore(jsonEncoder, bufferedWriter, logLevel)
	}

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.String("service", cfg.ServiceName),
			zap.String("version", cfg.Version),
			zap.String("environment", cfg.Environment),
		),
	), nil
}

// Error logs err alongside its error code and any additional fields.
func Error(logger *zap.Logger, message string, err error, fields ...zap.Field) {
	if logger == nil {
		return
	}
	base := append([]zap.Field{
		zap.String("error_code", irrigoerrors.Code(err)),
		zap.Error(err),
	}, fields...)
	logger.Error(message, base...)
}

// Info logs a structured informational message.
func Info(logger *zap.Logger, message string, fields ...zap.Field) {
	if logger == nil {
		return
	}
	logger.Info(message, fields...)
}

// Debug logs a structured debug message.
func Debug(logger *zap.Logger, message string, fields ...zap.Field) {
	if logger == nil {
		return
	}
	logger.Debug(message, fields...)
}
