package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"report-agent/internal/application/port/output"

	"github.com/disintegration/imaging"
)

var _ output.ImageFetcherPort = (*Downloader)(nil)

const (
	maxImageBytes = 5 << 20
	maxWidth      = 800
	jpegQuality   = 80
)

// Downloader fetches referenced images, shrinks them to report size and
// re-encodes them as JPEG.
type Downloader struct {
	http   *http.Client
	logger output.LoggerPort
}

func NewDownloader(timeout time.Duration, logger output.LoggerPort) *Downloader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Downloader{
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (d *Downloader) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for image", resp.StatusCode)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	d.logger.Debug("Image downloaded",
		"url", imageURL,
		"bytes", buf.Len(),
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	return buf.Bytes(), nil
}
