package rendered

import (
	"context"
	"fmt"
	"time"

	"report-agent/internal/application/port/output"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.PageRendererPort = (*Adapter)(nil)

// Adapter fetches a page through headless Chrome so that script-built
// markup ends up in the HTML. Used only as a fallback when the static
// fetch yields nothing extractable.
type Adapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

type Config struct {
	Headless  bool
	Timeout   time.Duration
	NoSandbox bool
}

func DefaultConfig() Config {
	return Config{
		Headless:  true,
		Timeout:   20 * time.Second,
		NoSandbox: true,
	}
}

func New(cfg Config) (*Adapter, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Adapter{
		browser:  browser,
		launcher: l,
		timeout:  cfg.Timeout,
	}, nil
}

func (a *Adapter) RenderHTML(ctx context.Context, url string) (string, error) {
	page, err := a.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(a.timeout)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load failed: %w", err)
	}
	page.WaitIdle(5 * time.Second)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page html: %w", err)
	}

	return html, nil
}

func (a *Adapter) Close() error {
	if a.browser != nil {
		if err := a.browser.Close(); err != nil {
			return err
		}
	}
	if a.launcher != nil {
		a.launcher.Cleanup()
	}
	return nil
}
