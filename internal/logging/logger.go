// Package logging provides the node's structured logger: a leveled root
// logger and a helper for named per-component children, replacing the
// ad-hoc *log.Logger usage
// scattered through the original consensus/mempool/p2p packages (which
// called methods like Errorf/Warnf that the stdlib logger never had).
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root production logger: JSON-encoded, ISO8601 timestamps,
// stack traces on error level and above.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// Named returns a child logger tagged with component, e.g. "mempool",
// "consensus", "proof", so log lines can be filtered by component.
func Named(base *zap.Logger, component string) *zap.Logger {
	return base.Named(component)
}

// Nop returns a no-op logger, used in tests that don't assert on log output.
func Nop() *zap.Logger {
	return zap.NewNop()
}
