// Package portal automates the member portal: login, navigation to the
// events list, event-type and year filtering, and pagination. The portal is
// an uncontrolled third-party application, so lookups are defensive ladders
// of strategies and terminal failures leave a diagnostic screenshot behind.
package portal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"scoutsie/internal/config"
)

// Browser wraps a Chromium instance with a single portal page.
type Browser struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     *config.Config
	logger  *slog.Logger
}

// Launch starts Chromium and opens the session page.
func Launch(cfg *config.Config, logger *slog.Logger) (*Browser, error) {
	b := &Browser{
		cfg:    cfg,
		logger: logger.With("component", "portal_browser"),
	}

	l := launcher.New().
		Headless(cfg.Browser.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled")

	if cfg.Browser.NoSandbox {
		l = l.Set("no-sandbox").Set("disable-setuid-sandbox")
	}
	if cfg.Browser.WindowSize != "" {
		l = l.Set("window-size", cfg.Browser.WindowSize)
	}
	if cfg.Browser.UserDataDir != "" {
		l = l.UserDataDir(cfg.Browser.UserDataDir)
	}

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	b.browser = browser

	var page *rod.Page
	if cfg.Browser.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	b.page = page

	b.logger.Info("browser ready",
		"headless", cfg.Browser.Headless,
		"stealth", cfg.Browser.Stealth,
	)
	return b, nil
}

// Page exposes the underlying session page.
func (b *Browser) Page() *rod.Page { return b.page }

// Navigate loads a URL and waits for the page to settle.
func (b *Browser) Navigate(url string) error {
	if err := b.page.Timeout(b.cfg.Browser.PageTimeout).Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := b.page.Timeout(b.cfg.Browser.PageTimeout).WaitStable(300 * time.Millisecond); err != nil {
		b.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}
	return nil
}

// Screenshot saves a diagnostic screenshot; best effort, failures are logged
// and swallowed so they never mask the original error.
func (b *Browser) Screenshot(name string) {
	data, err := b.page.Screenshot(true, nil)
	if err != nil {
		b.logger.Warn("screenshot failed", "name", name, "error", err)
		return
	}
	dir := b.cfg.Portal.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.logger.Warn("screenshot dir", "error", err)
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		b.logger.Warn("screenshot write failed", "path", path, "error", err)
		return
	}
	b.logger.Info("diagnostic screenshot saved", "path", path)
}

// settle pauses for the portal's client-side rendering to catch up.
func (b *Browser) settle() {
	time.Sleep(b.cfg.Portal.SettleDelay)
	_ = b.page.WaitStable(300 * time.Millisecond)
}

// Close shuts down the browser.
func (b *Browser) Close() error {
	if b.page != nil {
		_ = b.page.Close()
	}
	if b.browser != nil {
		return b.browser.Close()
	}
	return nil
}
