package output

import "context"

// ImageFetcherPort downloads a referenced image and returns it re-encoded
// for embedding.
type ImageFetcherPort interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}
