// Package logging builds the zap loggers used by gtv.
//
// Before the terminal UI starts, logs go to stderr. While the UI owns the
// screen they go to a file when one is configured, and are discarded
// otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/model"
)

// ParseLevel maps a level name ("debug", "info", "warn", "error") to zap.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}

// NewStderr returns a console logger on stderr.
func NewStderr(level zapcore.Level) *zap.Logger {
	return New(os.Stderr, level)
}

// NewFile returns a logger appending to path, plus a close function. An
// empty path yields a no-op logger.
func NewFile(path string, level zapcore.Level) (*zap.Logger, func() error, error) {
	if path == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}

// ReportWarnings emits the anomalies collected during ingestion: one Warn
// per anomaly followed by a single summary line.
func ReportWarnings(logger *zap.Logger, source string, terms int, warnings []model.Warning) {
	for _, w := range warnings {
		fields := []zap.Field{zap.String("kind", string(w.Kind))}
		if w.TermID != "" {
			fields = append(fields, zap.String("term", w.TermID))
		}
		if w.Line > 0 {
			fields = append(fields, zap.Int("line", w.Line))
		}
		logger.Warn(w.Message, fields...)
	}
	counts := model.CountByKind(warnings)
	logger.Info("catalog loaded",
		zap.String("source", source),
		zap.Int("terms", terms),
		zap.Int("schema_warnings", counts[model.WarnSchema]),
		zap.Int("duplicate_ids", counts[model.WarnDuplicateID]))
}
