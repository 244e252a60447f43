package output

import (
	"context"

	"report-agent/internal/domain/entity"
)

type InterpreterPort interface {
	Interpret(ctx context.Context, task string) (*entity.IntentOutcome, error)
}
