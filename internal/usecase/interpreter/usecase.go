package interpreter

import (
	"context"
	"fmt"

	"report-agent/internal/application/port/output"
	"report-agent/internal/domain/entity"
	"report-agent/internal/infrastructure/prompts"
)

var _ output.InterpreterPort = (*UseCase)(nil)

type UseCase struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func New(llm output.LLMPort, logger output.LoggerPort) *UseCase {
	return &UseCase{
		llm:    llm,
		logger: logger,
	}
}

// Interpret asks the model to classify the task and parses the reply into
// an Intent. A reply that cannot be parsed degrades to the whole task as
// subject; only transport failures are returned as errors.
func (uc *UseCase) Interpret(ctx context.Context, task string) (*entity.IntentOutcome, error) {
	prompt, err := prompts.GenerateInterpretPrompt(task)
	if err != nil {
		return nil, fmt.Errorf("render interpret prompt: %w", err)
	}

	resp, err := uc.llm.Complete(ctx, output.CompletionRequest{
		System:      prompts.InterpretSystemPrompt,
		User:        prompt,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	outcome := parseIntent(task, resp.Content)
	if outcome.Fallback {
		uc.logger.Warn("Unparseable model reply, using task as subject",
			"reply", clip(resp.Content, 200))
	} else {
		uc.logger.Info("Task interpreted",
			"subject", outcome.Intent.Subject,
			"kind", string(outcome.Intent.Kind),
			"count", outcome.Intent.Count,
			"url", outcome.Intent.WebsiteURL)
	}

	return &outcome, nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
