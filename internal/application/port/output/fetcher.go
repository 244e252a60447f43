package output

import (
	"context"

	"report-agent/internal/domain/entity"
)

// FetcherPort retrieves a page for a target, which is either a URL or a
// free-text query. Failure is carried inside the FetchResult.
type FetcherPort interface {
	Fetch(ctx context.Context, target string) entity.FetchResult
}
