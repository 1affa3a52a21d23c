package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meetpup/meetpup/pkg/logger/types"
)

// Log is the global application logger. It is usable before Init with a
// no-op-ish default so early failures still reach stderr.
var Log *types.Logger

var base *zap.Logger

func init() {
	l, _ := zap.NewProduction()
	base = l
	Log = types.NewLogger(l.Sugar())
}

type Config struct {
	Debug     bool
	LogToFile bool
	LogsDir   string
}

// Init replaces the default logger according to config.
func Init(cfg Config) error {
	level := zap.InfoLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stdout),
			level,
		),
	}

	if cfg.LogToFile {
		if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
			return fmt.Errorf("create logs dir: %w", err)
		}

		name := fmt.Sprintf("meetpup-%s.log", time.Now().Format("2006-01-02"))
		file, err := os.OpenFile(filepath.Join(cfg.LogsDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(file),
			level,
		))
	}

	base = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Log = types.NewLogger(base.Sugar())

	return nil
}

// Named returns a child logger with the given name.
func Named(name string) (*types.Logger, error) {
	if base == nil {
		return nil, fmt.Errorf("logger is not initialized")
	}
	return types.NewLogger(base.Sugar().Named(name)), nil
}

// Cleanup flushes buffered log entries. Call on shutdown.
func Cleanup() error {
	if base == nil {
		return nil
	}
	return base.Sync()
}
