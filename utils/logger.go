package utils

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"formfiller/config"
)

var (
	globalLogger atomic.Pointer[zap.Logger]
	initOnce     sync.Once
)

func init() {
	globalLogger.Store(zap.NewNop())
}

// NewLogger builds a zap logger writing to stdout and, when LogFile is set, to a
// rotated JSON file.
func NewLogger(cfg config.LoggerConfig) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoderFor(cfg.Format), zapcore.Lock(os.Stdout), level),
	}

	if cfg.LogFile != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(encoderFor("json"), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
}

func encoderFor(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "json" {
		return zapcore.NewJSONEncoder(encCfg)
	}
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encCfg)
}

// InitLogger installs the process-wide logger once.
func InitLogger(cfg config.LoggerConfig) *zap.Logger {
	initOnce.Do(func() {
		globalLogger.Store(NewLogger(cfg))
	})
	return globalLogger.Load()
}

// Logger returns the process-wide logger; a no-op logger before InitLogger.
func Logger() *zap.Logger {
	return globalLogger.Load()
}

// SyncLogger flushes buffered entries. Errors from syncing stdout are ignored.
func SyncLogger() {
	_ = globalLogger.Load().Sync()
}

// Convenience functions for the global logger
func LogInfo(message string, fields ...zap.Field) {
	Logger().Info(message, fields...)
}

func LogWarn(message string, fields ...zap.Field) {
	Logger().Warn(message, fields...)
}

func LogError(message string, err error, fields ...zap.Field) {
	Logger().Error(message, append(fields, zap.Error(err))...)
}

func LogDebug(message string, fields ...zap.Field) {
	Logger().Debug(message, fields...)
}
