package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"report-agent/internal/di"
	"report-agent/internal/domain/entity"
	"report-agent/internal/infrastructure/env"
	"report-agent/internal/infrastructure/fetch"
	"report-agent/internal/infrastructure/userinteraction"

	"github.com/google/uuid"
)

const runTimeout = 5 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	envService := env.NewEnvService()
	console := userinteraction.NewConsole()

	apiKey := envService.Get("OPENAI_API_KEY")
	if apiKey == "" {
		console.ShowFailure(entity.NewStageError(entity.StageConfig,
			errors.New("OPENAI_API_KEY is not set")))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	task, err := readTask(ctx, console)
	if err != nil {
		console.ShowFailure(entity.NewStageError(entity.StageConfig, err))
		return 1
	}

	container, err := di.NewContainer(di.Config{
		APIKey:           apiKey,
		Model:            envService.GetWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		BaseURL:          envService.Get("OPENAI_BASE_URL"),
		FetchTimeout:     envService.GetSeconds("FETCH_TIMEOUT_SECONDS", fetch.DefaultTimeout),
		FetchMaxAttempts: envService.GetInt("FETCH_MAX_ATTEMPTS", fetch.DefaultMaxAttempts),
		RenderFallback:   envService.GetBool("RENDER_FALLBACK", false),
		ReportDir:        envService.GetWithDefault("REPORT_DIR", "."),
		RunID:            uuid.NewString(),
	})
	if err != nil {
		console.ShowFailure(entity.NewStageError(entity.StageConfig, err))
		return 1
	}
	defer container.Close()

	console.ShowStart(task)
	container.Logger.Info("Task started", "task", task)

	result, err := container.ReportRunner.Run(ctx, task)
	if err != nil {
		container.Logger.Error("Task failed", "error", err.Error())
		console.ShowFailure(err)
		return 1
	}

	container.Logger.Info("Task completed",
		"report", result.ReportPath,
		"items", result.ItemCount,
		"fetchAttempts", result.FetchAttempts,
		"chart", string(result.ChartKind),
	)
	console.ShowSuccess(result.ReportPath)
	return 0
}

// readTask takes the task from the command line when given, otherwise asks
// on stdin.
func readTask(ctx context.Context, console *userinteraction.Console) (string, error) {
	if len(os.Args) > 1 {
		task := strings.TrimSpace(strings.Join(os.Args[1:], " "))
		if task != "" {
			return task, nil
		}
	}
	return console.AskTask(ctx)
}
