package log

import "go.uber.org/zap"

// ZapConfig holds configuration for the zap logger.
type ZapConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

type requestIDKey struct{}
