package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

var (
	serviceName = "default"
)

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// Init настраивает глобальный логгер. level: debug|info|warn|error.
func Init(level string) {
	lvl := zapcore.InfoLevel
	switch level {
	case "debug", "DEBUG":
		lvl = zapcore.DebugLevel
	case "warn", "WARN", "warning":
		lvl = zapcore.WarnLevel
	case "error", "ERROR":
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	log = l
}

func base() *zap.Logger {
	if log == nil {
		panic("logger is not initialized")
	}
	return log.With(zap.String("service", serviceName))
}

func Debug(format string, args ...interface{}) {
	base().Debug(fmt.Sprintf(format, args...))
}

func Info(format string, args ...interface{}) {
	base().Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	base().Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	base().Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	base().Fatal(fmt.Sprintf(format, args...))
}
