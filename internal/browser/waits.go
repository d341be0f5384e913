package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Condition-based settle waits. Reactive listing pages re-render after a
// filter or search change with no event to await; instead of a flat sleep,
// these poll for the specific post-render condition the caller cares about.

// WaitForCountStable blocks until the number of elements matching selector
// stops changing across two consecutive polls, then returns the settled
// count. Used after filter/search actions where the result set shrinks or
// grows asynchronously.
func (s *Session) WaitForCountStable(selector string, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		timeout = s.opts.ActionTimeout
	}
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	interval := 250 * time.Millisecond
	last := -1
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		script := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
		var count int
		if err := chromedp.Run(ctx, chromedp.Evaluate(script, &count)); err != nil {
			return 0, fmt.Errorf("count poll for %q failed: %w", selector, err)
		}
		if count == last {
			return count, nil
		}
		last = count

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("count for %q did not stabilize within %v: %w", selector, timeout, ctx.Err())
		case <-time.After(interval):
		}
	}
	return 0, fmt.Errorf("count for %q did not stabilize within %v", selector, timeout)
}

// WaitForText blocks until the first element matching selector contains
// substr, or fails after timeout.
func (s *Session) WaitForText(selector, substr string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = s.opts.ActionTimeout
	}
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	script := fmt.Sprintf(`
		(() => {
			const el = document.querySelector(%q);
			return el !== null && el.textContent.includes(%q);
		})()
	`, selector, substr)

	err := chromedp.Run(ctx,
		chromedp.Poll(script, nil,
			chromedp.WithPollingTimeout(timeout),
			chromedp.WithPollingInterval(200*time.Millisecond),
		),
	)
	if err != nil {
		return fmt.Errorf("element %q did not contain %q within %v: %w", selector, substr, timeout, err)
	}
	return nil
}

// WaitForHidden blocks until no visible element matches selector. Used after
// delete actions where the card is removed asynchronously.
func (s *Session) WaitForHidden(selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = s.opts.ActionTimeout
	}
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	script := fmt.Sprintf(`
		(() => {
			const el = document.querySelector(%q);
			if (!el) return true;
			const style = window.getComputedStyle(el);
			return style.display === 'none' || style.visibility === 'hidden';
		})()
	`, selector)

	err := chromedp.Run(ctx,
		chromedp.Poll(script, nil,
			chromedp.WithPollingTimeout(timeout),
			chromedp.WithPollingInterval(200*time.Millisecond),
		),
	)
	if err != nil {
		return fmt.Errorf("element %q still visible after %v: %w", selector, timeout, err)
	}
	return nil
}
