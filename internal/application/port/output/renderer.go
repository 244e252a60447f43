package output

import "context"

// PageRendererPort fetches a page through a real browser so that
// script-built markup is present in the returned HTML.
type PageRendererPort interface {
	RenderHTML(ctx context.Context, url string) (string, error)
	Close() error
}
