package di

import (
	"fmt"
	"time"

	"report-agent/internal/application/port/input"
	"report-agent/internal/application/port/output"
	"report-agent/internal/infrastructure/charts"
	"report-agent/internal/infrastructure/fetch"
	"report-agent/internal/infrastructure/fetch/rendered"
	"report-agent/internal/infrastructure/images"
	"report-agent/internal/infrastructure/llm/openaicompat"
	"report-agent/internal/infrastructure/logger"
	"report-agent/internal/infrastructure/pdf"
	"report-agent/internal/infrastructure/scrape"
	"report-agent/internal/usecase/interpreter"
	"report-agent/internal/usecase/pipeline"
)

// Some data-heavy sites block plain HTTP clients. When the primary target
// matches a key, the mapped URL gets one extra retry round.
var defaultAlternatives = map[string]string{
	"coinmarketcap.com": "https://www.coingecko.com/",
}

type Container struct {
	Logger       output.LoggerPort
	LLM          output.LLMPort
	Renderer     output.PageRendererPort
	ReportRunner input.ReportRunner
}

type Config struct {
	APIKey           string
	Model            string
	BaseURL          string
	FetchTimeout     time.Duration
	FetchMaxAttempts int
	RenderFallback   bool
	ReportDir        string
	RunID            string
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewAdapter(cfg.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llmCfg := openaicompat.DefaultConfig(cfg.APIKey, cfg.Model)
	if cfg.BaseURL != "" {
		llmCfg.BaseURL = cfg.BaseURL
	}
	llmCfg.Logger = log
	llm := openaicompat.New(llmCfg)

	fetchCfg := fetch.DefaultConfig()
	fetchCfg.Timeout = cfg.FetchTimeout
	fetchCfg.MaxAttempts = cfg.FetchMaxAttempts
	fetchCfg.Alternatives = defaultAlternatives
	fetchCfg.Logger = log
	fetcher := fetch.New(fetchCfg)

	var renderer output.PageRendererPort
	if cfg.RenderFallback {
		r, err := rendered.New(rendered.DefaultConfig())
		if err != nil {
			log.Warn("Browser unavailable, rendered-page fallback disabled", "error", err.Error())
		} else {
			renderer = r
		}
	}

	downloader := images.NewDownloader(cfg.FetchTimeout, log)

	uc := pipeline.New(pipeline.Deps{
		Interpreter: interpreter.New(llm, log),
		Fetcher:     fetcher,
		Renderer:    renderer,
		Extractor:   scrape.NewExtractor(log),
		Charts:      charts.NewRenderer(log),
		Writer:      pdf.NewWriter(downloader, log),
		Logger:      log,
		ReportDir:   cfg.ReportDir,
		RunID:       cfg.RunID,
	})

	return &Container{
		Logger:       log,
		LLM:          llm,
		Renderer:     renderer,
		ReportRunner: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Renderer != nil {
		c.Renderer.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
