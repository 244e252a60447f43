package entity

import "fmt"

// Stage names the pipeline step a fatal error came from, so the abort
// message can point at it.
type Stage string

const (
	StageConfig    Stage = "config"
	StageInterpret Stage = "interpret"
	StageFetch     Stage = "fetch"
	StageReport    Stage = "report"
)

type StageError struct {
	Stage Stage
	Err   error
}

func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
