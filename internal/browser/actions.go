package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// WaitForElement blocks until an element matching selector is visible, or
// fails after timeout. A zero timeout uses the configured action timeout.
// Timeout failures carry the selector and budget so the test report names
// the exact wait that expired.
func (s *Session) WaitForElement(selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = s.opts.ActionTimeout
	}
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("element %q not visible within %v: %w", selector, timeout, err)
	}
	return nil
}

// WaitForURL blocks until the current location contains pattern. This is the
// primary synchronization point after navigation-triggering actions; the UI
// is reactive and gives no DOM-ready guarantee on its own.
func (s *Session) WaitForURL(pattern string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = s.opts.NavTimeout
	}
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Poll(
			fmt.Sprintf(`window.location.href.includes(%q)`, pattern),
			nil,
			chromedp.WithPollingTimeout(timeout),
			chromedp.WithPollingInterval(100*time.Millisecond),
		),
	)
	if err != nil {
		current, _ := s.CurrentURL()
		return fmt.Errorf("URL did not match %q within %v (current: %s): %w", pattern, timeout, current, err)
	}
	return nil
}

// Fill types value into the first element matching selector, replacing any
// existing content. Key events are dispatched so reactive form state updates.
func (s *Session) Fill(selector, value string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ActionTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to fill %q: %w", selector, err)
	}
	return nil
}

// Click clicks the first element matching selector.
func (s *Session) Click(selector string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ActionTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// ClickByText clicks the first element matching selector whose text content
// contains substr. Listing pages render repeated controls (nav links, card
// buttons) that only text disambiguates.
func (s *Session) ClickByText(selector, substr string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ActionTimeout)
	defer cancel()

	script := fmt.Sprintf(`
		(() => {
			const els = Array.from(document.querySelectorAll(%q));
			const el = els.find(e => e.textContent.includes(%q));
			if (!el) return false;
			el.click();
			return true;
		})()
	`, selector, substr)

	var clicked bool
	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Evaluate(script, &clicked),
	)
	if err != nil {
		return fmt.Errorf("failed to click %q containing %q: %w", selector, substr, err)
	}
	if !clicked {
		return fmt.Errorf("no element matching %q contains text %q", selector, substr)
	}
	return nil
}

// SelectOption sets the value of the first <select> matching selector and
// dispatches input/change events, which reactive listing pages key off.
func (s *Session) SelectOption(selector, value string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.ActionTimeout)
	defer cancel()

	script := fmt.Sprintf(`
		(() => {
			const el = document.querySelector(%q);
			if (!el) return false;
			el.value = %q;
			el.dispatchEvent(new Event('input', { bubbles: true }));
			el.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		})()
	`, selector, value)

	var ok bool
	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Evaluate(script, &ok),
	)
	if err != nil {
		return fmt.Errorf("failed to select %q on %q: %w", value, selector, err)
	}
	if !ok {
		return fmt.Errorf("failed to select %q: no element matches %q", value, selector)
	}
	return nil
}
