package output

import "context"

type UserInteractionPort interface {
	AskTask(ctx context.Context) (string, error)
	ShowStart(task string)
	ShowSuccess(reportPath string)
	ShowFailure(err error)
}
