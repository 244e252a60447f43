package output

import "report-agent/internal/domain/entity"

// ChartRendererPort renders a series as an image. A nil artifact with a nil
// error means the series was not chartable; the report proceeds text-only.
type ChartRendererPort interface {
	Render(series entity.Series, kind entity.ChartKind) (*entity.ChartArtifact, error)
}
