package output

import (
	"context"

	"report-agent/internal/domain/entity"
)

type ReportWriterPort interface {
	Write(ctx context.Context, report entity.Report, outPath string) error
}
