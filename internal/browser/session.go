// -----------------------------------------------------------------------
// Browser session wrapper around chromedp
// One Session per test case; all page objects share it.
// -----------------------------------------------------------------------

package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/jobtrail/jobtrail-e2e/internal/common"
)

// Options configures a browser session.
type Options struct {
	Headless      bool
	Width         int
	Height        int
	Mobile        bool
	ActionTimeout time.Duration // default wait for element-level actions
	NavTimeout    time.Duration // default wait for URL/navigation synchronization
	ResultsDir    string        // screenshot destination
	Logger        arbor.ILogger
}

// OptionsFromConfig derives session options from the suite configuration and
// one viewport profile.
func OptionsFromConfig(cfg *common.Config, profile common.ViewportProfile) Options {
	return Options{
		Headless:      cfg.Browser.Headless,
		Width:         profile.Width,
		Height:        profile.Height,
		Mobile:        profile.Mobile,
		ActionTimeout: time.Duration(cfg.Timeouts.ActionSeconds) * time.Second,
		NavTimeout:    time.Duration(cfg.Timeouts.NavigationSeconds) * time.Second,
		ResultsDir:    cfg.Output.ResultsBaseDir,
		Logger:        common.GetLogger(),
	}
}

// Session owns one isolated browser context. Every action suspends the
// caller until the browser confirms completion or the deadline passes; there
// is no intra-session concurrency.
type Session struct {
	ctx  context.Context
	opts Options
	log  arbor.ILogger

	cleanup []func()

	// dialog guard state, flipped by WithDialogGuard for its scope only
	dialogMu     sync.Mutex
	dialogActive bool
	dialogAccept bool

	screenshotMu  sync.Mutex
	screenshotNum int
}

// NewSession launches a headless Chrome context sized to the requested
// viewport. Call Close with defer.
func NewSession(parent context.Context, opts Options) (*Session, error) {
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 5 * time.Second
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 10 * time.Second
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1920, 1080
	}
	if opts.Logger == nil {
		opts.Logger = common.GetLogger()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:  browserCtx,
		opts: opts,
		log:  opts.Logger,
	}
	s.cleanup = append(s.cleanup, cancelAlloc, cancelBrowser, func() {
		if err := chromedp.Cancel(browserCtx); err != nil {
			s.log.Debug().Err(err).Msg("browser cancel returned")
		}
	})

	s.installDialogListener()

	// Start the browser and fix the viewport before the first navigation so
	// responsive layouts render for the intended profile from the start.
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height), mobileOption(opts.Mobile)),
	); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	return s, nil
}

func mobileOption(mobile bool) chromedp.EmulateViewportOption {
	if mobile {
		return chromedp.EmulateMobile
	}
	return func(*emulation.SetDeviceMetricsOverrideParams, *emulation.SetTouchEmulationEnabledParams) {}
}

// Close releases all browser resources in reverse order.
func (s *Session) Close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

// Context exposes the underlying chromedp context for scenario-level waits
// that compose raw chromedp actions.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Navigate requests the browser load url. Failure propagates; the engine's
// own navigation timeout applies.
func (s *Session) Navigate(url string) error {
	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Reload reloads the current page.
func (s *Session) Reload() error {
	if err := chromedp.Run(s.ctx, chromedp.Reload()); err != nil {
		return fmt.Errorf("failed to reload page: %w", err)
	}
	return nil
}

// GoBack navigates one entry back in session history.
func (s *Session) GoBack() error {
	if err := chromedp.Run(s.ctx, chromedp.NavigateBack()); err != nil {
		return fmt.Errorf("failed to navigate back: %w", err)
	}
	return nil
}

// GoForward navigates one entry forward in session history.
func (s *Session) GoForward() error {
	if err := chromedp.Run(s.ctx, chromedp.NavigateForward()); err != nil {
		return fmt.Errorf("failed to navigate forward: %w", err)
	}
	return nil
}

// SetViewport resizes the emulated viewport mid-test (mobile menu checks).
func (s *Session) SetViewport(width, height int, mobile bool) error {
	if err := chromedp.Run(s.ctx,
		chromedp.EmulateViewport(int64(width), int64(height), mobileOption(mobile)),
	); err != nil {
		return fmt.Errorf("failed to set viewport %dx%d: %w", width, height, err)
	}
	return nil
}

// ClearCookies wipes the browser cookie jar. Tests call this during arrange
// so no authentication leaks between cases.
func (s *Session) ClearCookies() error {
	if err := chromedp.Run(s.ctx, network.ClearBrowserCookies()); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

// CurrentURL returns the browser's current location.
func (s *Session) CurrentURL() (string, error) {
	var url string
	if err := chromedp.Run(s.ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read current URL: %w", err)
	}
	return url, nil
}

// Screenshot captures the viewport into the session results directory with a
// sequential number prefix.
func (s *Session) Screenshot(name string) error {
	if s.opts.ResultsDir == "" {
		return nil
	}

	s.screenshotMu.Lock()
	s.screenshotNum++
	num := s.screenshotNum
	s.screenshotMu.Unlock()

	if err := os.MkdirAll(s.opts.ResultsDir, 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}

	path := filepath.Join(s.opts.ResultsDir, fmt.Sprintf("%02d_%s.png", num, name))
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to save screenshot: %w", err)
	}
	return nil
}
