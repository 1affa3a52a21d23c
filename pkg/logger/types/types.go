package types

import "go.uber.org/zap"

// Logger wraps a zap sugared logger so callers do not depend on zap directly.
type Logger struct {
	*zap.SugaredLogger
}

func NewLogger(l *zap.SugaredLogger) *Logger {
	return &Logger{SugaredLogger: l}
}
