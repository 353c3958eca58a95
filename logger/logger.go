// Package logger is a thin leveled facade over zap shared by the whole
// process.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = zap.NewNop().Sugar()

// Init configures the process logger. With a non-empty path, output goes to
// stderr and a size-rotated file.
func Init(path, levelStr string) error {
	level := zapcore.InfoLevel
	switch strings.ToLower(levelStr) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}
	if path != "" {
		rotated := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotated), level))
	}

	log = zap.New(zapcore.NewTee(cores...)).Sugar()
	return nil
}

// Sync flushes buffered output. Call once at shutdown.
func Sync() {
	_ = log.Sync()
}

func Debugf(msg string, args ...any) { log.Debugf(msg, args...) }
func Infof(msg string, args ...any)  { log.Infof(msg, args...) }
func Warnf(msg string, args ...any)  { log.Warnf(msg, args...) }
func Errorf(msg string, args ...any) { log.Errorf(msg, args...) }
