package input

import (
	"context"

	"report-agent/internal/domain/entity"
)

type RunResult struct {
	ReportPath    string
	Intent        entity.Intent
	ItemCount     int
	FetchAttempts int
	ChartKind     entity.ChartKind // empty when no chart was rendered
}

// ReportRunner runs the whole pipeline for one task and writes the report.
type ReportRunner interface {
	Run(ctx context.Context, task string) (*RunResult, error)
}
