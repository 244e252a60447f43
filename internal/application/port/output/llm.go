package output

import "context"

type LLMPort interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
}

type CompletionResponse struct {
	Content string
}
