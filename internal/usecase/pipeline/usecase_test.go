package pipeline

import (
	"context"
	"errors"
	"testing"

	"report-agent/internal/application/port/output"
	"report-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)             {}
func (nopLogger) Info(msg string, args ...any)              {}
func (nopLogger) Warn(msg string, args ...any)              {}
func (nopLogger) Error(msg string, args ...any)             {}
func (l nopLogger) WithField(string, any) output.LoggerPort { return l }
func (nopLogger) Close() error                              { return nil }

type stubInterpreter struct {
	outcome *entity.IntentOutcome
	err     error
}

func (s *stubInterpreter) Interpret(ctx context.Context, task string) (*entity.IntentOutcome, error) {
	return s.outcome, s.err
}

type stubFetcher struct {
	result entity.FetchResult
	target string
}

func (s *stubFetcher) Fetch(ctx context.Context, target string) entity.FetchResult {
	s.target = target
	return s.result
}

type stubExtractor struct {
	data  entity.ExtractedData
	calls int
}

func (s *stubExtractor) Extract(htmlBody, baseURL string, intent entity.Intent) entity.ExtractedData {
	s.calls++
	return s.data
}

type stubCharts struct {
	artifact *entity.ChartArtifact
	err      error
	kind     entity.ChartKind
}

func (s *stubCharts) Render(series entity.Series, kind entity.ChartKind) (*entity.ChartArtifact, error) {
	s.kind = kind
	return s.artifact, s.err
}

type stubWriter struct {
	err     error
	report  entity.Report
	outPath string
	calls   int
}

func (s *stubWriter) Write(ctx context.Context, report entity.Report, outPath string) error {
	s.calls++
	s.report = report
	s.outPath = outPath
	return s.err
}

type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (s *stubRenderer) RenderHTML(ctx context.Context, url string) (string, error) {
	s.calls++
	return s.html, s.err
}

func (s *stubRenderer) Close() error { return nil }

func cryptoOutcome() *entity.IntentOutcome {
	return &entity.IntentOutcome{
		Intent: entity.Intent{
			Subject:    "cryptocurrency prices",
			WebsiteURL: "https://coinmarketcap.com",
			Count:      5,
			Kind:       entity.OutputNumericSeries,
		},
	}
}

func cryptoData() entity.ExtractedData {
	return entity.ExtractedData{
		Title: "Top Cryptocurrencies",
		Items: []string{
			"Bitcoin: $43,250.12", "Ethereum: $2,250.50", "Solana: $98.41",
			"Cardano: $0.52", "Dogecoin: $0.08",
		},
		Series: entity.Series{Points: []entity.SeriesPoint{
			{Label: "Bitcoin", Value: 43250.12},
			{Label: "Ethereum", Value: 2250.50},
			{Label: "Solana", Value: 98.41},
			{Label: "Cardano", Value: 0.52},
			{Label: "Dogecoin", Value: 0.08},
		}},
	}
}

func newDeps(i *stubInterpreter, f *stubFetcher, e *stubExtractor, c *stubCharts, w *stubWriter) Deps {
	return Deps{
		Interpreter: i,
		Fetcher:     f,
		Extractor:   e,
		Charts:      c,
		Writer:      w,
		Logger:      nopLogger{},
		ReportDir:   "reports",
		RunID:       "run-1",
	}
}

func TestRun_CryptoPricesEndToEnd(t *testing.T) {
	interpreter := &stubInterpreter{outcome: cryptoOutcome()}
	fetcher := &stubFetcher{result: entity.FetchResult{
		URL:      "https://coinmarketcap.com",
		Body:     "<html>prices</html>",
		Attempts: 1,
	}}
	extractor := &stubExtractor{data: cryptoData()}
	charts := &stubCharts{artifact: &entity.ChartArtifact{Kind: entity.ChartBar, PNG: []byte("png")}}
	writer := &stubWriter{}

	result, err := New(newDeps(interpreter, fetcher, extractor, charts, writer)).
		Run(context.Background(), "Get the latest cryptocurrency prices")

	require.NoError(t, err)
	assert.Equal(t, "https://coinmarketcap.com", fetcher.target)
	assert.Equal(t, 5, result.ItemCount)
	assert.Equal(t, 1, result.FetchAttempts)
	assert.Equal(t, entity.ChartBar, result.ChartKind)
	assert.Equal(t, entity.ChartBar, charts.kind)
	assert.Equal(t, 1, writer.calls)
	require.NotNil(t, writer.report.Chart)
	assert.Len(t, writer.report.Data.Items, 5)
	assert.Equal(t, "reports/Get_the_latest_cryptocurrency_results.pdf", writer.outPath)
}

func TestRun_FetchExhaustedFailsWithFetchStage(t *testing.T) {
	interpreter := &stubInterpreter{outcome: cryptoOutcome()}
	fetcher := &stubFetcher{result: entity.FetchResult{
		URL:      "https://coinmarketcap.com",
		Attempts: 3,
		Err:      &entity.FetchError{Kind: entity.FetchErrNetwork, Err: errors.New("connection refused")},
	}}
	writer := &stubWriter{}

	result, err := New(newDeps(interpreter, fetcher, &stubExtractor{}, &stubCharts{}, writer)).
		Run(context.Background(), "Get the latest cryptocurrency prices")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, writer.calls)

	var stageErr *entity.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StageFetch, stageErr.Stage)
	assert.Contains(t, err.Error(), "fetch")
	assert.Contains(t, err.Error(), "3 attempts")
}

func TestRun_InterpreterFailureNamesInterpretStage(t *testing.T) {
	interpreter := &stubInterpreter{err: errors.New("model request failed")}

	_, err := New(newDeps(interpreter, &stubFetcher{}, &stubExtractor{}, &stubCharts{}, &stubWriter{})).
		Run(context.Background(), "anything")

	var stageErr *entity.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StageInterpret, stageErr.Stage)
}

func TestRun_EmptyExtractionStillWritesReport(t *testing.T) {
	interpreter := &stubInterpreter{outcome: cryptoOutcome()}
	fetcher := &stubFetcher{result: entity.FetchResult{URL: "https://coinmarketcap.com", Body: "<html></html>", Attempts: 1}}
	extractor := &stubExtractor{} // zero-value data, Empty() == true
	writer := &stubWriter{}

	result, err := New(newDeps(interpreter, fetcher, extractor, &stubCharts{}, writer)).
		Run(context.Background(), "Get the latest cryptocurrency prices")

	require.NoError(t, err)
	assert.Equal(t, 0, result.ItemCount)
	assert.Equal(t, entity.ChartKind(""), result.ChartKind)
	assert.Equal(t, 1, writer.calls)
	assert.True(t, writer.report.Data.Empty())
	assert.Nil(t, writer.report.Chart)
}

func TestRun_EmptyExtractionTriesRenderedPage(t *testing.T) {
	interpreter := &stubInterpreter{outcome: cryptoOutcome()}
	fetcher := &stubFetcher{result: entity.FetchResult{URL: "https://coinmarketcap.com", Body: "<html></html>", Attempts: 1}}
	extractor := &stubExtractor{}
	renderer := &stubRenderer{html: "<html>rendered</html>"}

	deps := newDeps(interpreter, fetcher, extractor, &stubCharts{}, &stubWriter{})
	deps.Renderer = renderer

	_, err := New(deps).Run(context.Background(), "Get the latest cryptocurrency prices")

	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, 2, extractor.calls)
}

func TestRun_RendererFailureDoesNotAbort(t *testing.T) {
	interpreter := &stubInterpreter{outcome: cryptoOutcome()}
	fetcher := &stubFetcher{result: entity.FetchResult{URL: "https://coinmarketcap.com", Body: "<html></html>", Attempts: 1}}
	renderer := &stubRenderer{err: errors.New("browser crashed")}
	writer := &stubWriter{}

	deps := newDeps(interpreter, fetcher, &stubExtractor{}, &stubCharts{}, writer)
	deps.Renderer = renderer

	_, err := New(deps).Run(context.Background(), "Get the latest cryptocurrency prices")

	require.NoError(t, err)
	assert.Equal(t, 1, writer.calls)
}

func TestRun_ChartFailureDegradesToTextOnly(t *testing.T) {
	interpreter := &stubInterpreter{outcome: cryptoOutcome()}
	fetcher := &stubFetcher{result: entity.FetchResult{URL: "https://coinmarketcap.com", Body: "<html>x</html>", Attempts: 1}}
	extractor := &stubExtractor{data: cryptoData()}
	charts := &stubCharts{err: errors.New("render blew up")}
	writer := &stubWriter{}

	result, err := New(newDeps(interpreter, fetcher, extractor, charts, writer)).
		Run(context.Background(), "Get the latest cryptocurrency prices")

	require.NoError(t, err)
	assert.Equal(t, entity.ChartKind(""), result.ChartKind)
	assert.Equal(t, 1, writer.calls)
	assert.Nil(t, writer.report.Chart)
}

func TestRun_SubjectUsedWhenNoURL(t *testing.T) {
	outcome := cryptoOutcome()
	outcome.Intent.WebsiteURL = ""
	interpreter := &stubInterpreter{outcome: outcome}
	fetcher := &stubFetcher{result: entity.FetchResult{URL: "https://example.com", Body: "<html>x</html>", Attempts: 1}}

	_, err := New(newDeps(interpreter, fetcher, &stubExtractor{}, &stubCharts{}, &stubWriter{})).
		Run(context.Background(), "task")

	require.NoError(t, err)
	assert.Equal(t, "cryptocurrency prices", fetcher.target)
}

func TestRun_ReportWriteFailureNamesReportStage(t *testing.T) {
	interpreter := &stubInterpreter{outcome: cryptoOutcome()}
	fetcher := &stubFetcher{result: entity.FetchResult{URL: "https://coinmarketcap.com", Body: "<html>x</html>", Attempts: 1}}
	writer := &stubWriter{err: errors.New("disk full")}

	_, err := New(newDeps(interpreter, fetcher, &stubExtractor{data: cryptoData()}, &stubCharts{}, writer)).
		Run(context.Background(), "task")

	var stageErr *entity.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StageReport, stageErr.Stage)
}

func TestReportFileName(t *testing.T) {
	assert.Equal(t, "Get_the_latest_cryptocurrency_results.pdf",
		ReportFileName("Get the latest cryptocurrency prices"))
	assert.Equal(t, "short_task_results.pdf", ReportFileName("short task!"))
	assert.Equal(t, "report_results.pdf", ReportFileName("!!!"))
}
