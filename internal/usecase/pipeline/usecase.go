package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"report-agent/internal/application/port/input"
	"report-agent/internal/application/port/output"
	"report-agent/internal/domain/entity"
)

var _ input.ReportRunner = (*UseCase)(nil)

const maxFileNameTaskLen = 30

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Deps carries everything the pipeline needs. Renderer may be nil, in which
// case the rendered-page fallback is skipped.
type Deps struct {
	Interpreter output.InterpreterPort
	Fetcher     output.FetcherPort
	Renderer    output.PageRendererPort
	Extractor   output.ExtractorPort
	Charts      output.ChartRendererPort
	Writer      output.ReportWriterPort
	Logger      output.LoggerPort
	ReportDir   string
	RunID       string
}

// UseCase runs the single linear flow: interpret the task, fetch the target
// page, extract data, optionally chart it, and write the PDF report.
type UseCase struct {
	deps Deps
}

func New(deps Deps) *UseCase {
	return &UseCase{deps: deps}
}

func (uc *UseCase) Run(ctx context.Context, task string) (*input.RunResult, error) {
	log := uc.deps.Logger

	outcome, err := uc.deps.Interpreter.Interpret(ctx, task)
	if err != nil {
		return nil, entity.NewStageError(entity.StageInterpret, err)
	}
	intent := outcome.Intent
	log.Info("Intent resolved",
		"subject", intent.Subject,
		"kind", string(intent.Kind),
		"count", intent.Count,
		"fallback", outcome.Fallback,
	)

	target := intent.WebsiteURL
	if target == "" {
		target = intent.Subject
	}

	res := uc.deps.Fetcher.Fetch(ctx, target)
	if !res.OK() {
		return nil, entity.NewStageError(entity.StageFetch,
			fmt.Errorf("after %d attempts: %w", res.Attempts, res.Err))
	}
	log.Info("Page fetched", "url", res.URL, "attempts", res.Attempts, "bytes", len(res.Body))

	data := uc.deps.Extractor.Extract(res.Body, res.URL, intent)

	if data.Empty() && uc.deps.Renderer != nil {
		data = uc.renderAndRetry(ctx, res.URL, intent, data)
	}
	if data.Empty() {
		log.Warn("Nothing extractable on the page, report will carry a notice", "url", res.URL)
	} else {
		log.Info("Data extracted", "items", len(data.Items), "seriesPoints", len(data.Series.Points), "images", len(data.Images))
	}

	chart := uc.renderChart(data.Series)

	report := entity.Report{
		Task:      task,
		RunID:     uc.deps.RunID,
		Generated: time.Now(),
		Data:      data,
		Chart:     chart,
	}

	outPath := filepath.Join(uc.deps.ReportDir, ReportFileName(task))
	if err := uc.deps.Writer.Write(ctx, report, outPath); err != nil {
		return nil, entity.NewStageError(entity.StageReport, err)
	}
	log.Info("Report written", "path", outPath)

	result := &input.RunResult{
		ReportPath:    outPath,
		Intent:        intent,
		ItemCount:     len(data.Items),
		FetchAttempts: res.Attempts,
	}
	if chart != nil {
		result.ChartKind = chart.Kind
	}
	return result, nil
}

// renderAndRetry re-fetches the page through a real browser and extracts
// again. Any rendering failure keeps the original (empty) data, it never
// aborts the run.
func (uc *UseCase) renderAndRetry(ctx context.Context, url string, intent entity.Intent, data entity.ExtractedData) entity.ExtractedData {
	uc.deps.Logger.Info("Static fetch yielded nothing extractable, rendering page", "url", url)

	htmlBody, err := uc.deps.Renderer.RenderHTML(ctx, url)
	if err != nil {
		uc.deps.Logger.Warn("Rendered fetch failed", "url", url, "error", err.Error())
		return data
	}
	return uc.deps.Extractor.Extract(htmlBody, url, intent)
}

// renderChart charts the series when there is one. Chart failures degrade the
// report to text-only instead of failing the run.
func (uc *UseCase) renderChart(series entity.Series) *entity.ChartArtifact {
	if series.Empty() {
		return nil
	}

	kind := entity.ChooseChartKind(series)
	artifact, err := uc.deps.Charts.Render(series, kind)
	if err != nil {
		uc.deps.Logger.Warn("Chart rendering failed, continuing without chart", "kind", string(kind), "error", err.Error())
		return nil
	}
	return artifact
}

// ReportFileName derives the output file name from the task text: non
// alphanumeric runs collapse to underscores and the result is capped before
// the fixed suffix.
func ReportFileName(task string) string {
	safe := unsafeFileChars.ReplaceAllString(task, "_")
	safe = strings.Trim(safe, "_")
	if len(safe) > maxFileNameTaskLen {
		safe = safe[:maxFileNameTaskLen]
		safe = strings.TrimRight(safe, "_")
	}
	if safe == "" {
		safe = "report"
	}
	return safe + "_results.pdf"
}
