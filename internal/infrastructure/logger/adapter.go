package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"report-agent/internal/application/port/output"

	"go.uber.org/zap"
)

var _ output.LoggerPort = (*Adapter)(nil)

// Adapter wraps zap behind the LoggerPort. One JSON log file per run under
// ./log/.
type Adapter struct {
	sugar *zap.SugaredLogger
}

func NewAdapter(runID string) (*Adapter, error) {
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), runID)

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join("log", filename)}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &Adapter{sugar: z.Sugar().With("run_id", runID)}, nil
}

func (a *Adapter) Debug(msg string, args ...any) { a.sugar.Debugw(msg, args...) }
func (a *Adapter) Info(msg string, args ...any)  { a.sugar.Infow(msg, args...) }
func (a *Adapter) Warn(msg string, args ...any)  { a.sugar.Warnw(msg, args...) }
func (a *Adapter) Error(msg string, args ...any) { a.sugar.Errorw(msg, args...) }

func (a *Adapter) WithField(key string, value any) output.LoggerPort {
	return &Adapter{sugar: a.sugar.With(key, value)}
}

func (a *Adapter) Close() error {
	return a.sugar.Sync()
}
