package browser

import (
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
)

// Queries never fail for a selector matching zero elements: they report
// absence through the second return value so scenarios can branch on
// "feature not present" without error handling. The zero value doubles as
// the legacy sentinel ("", false, 0). Engine-level failures (cancelled
// context, crashed page) are logged and reported as absent; the scenario's
// next blocking action will surface them properly.

// Text returns the trimmed text content of the first element matching
// selector, and whether such an element exists. An existing but empty
// element yields ("", true), distinguishable from an absent one.
func (s *Session) Text(selector string) (string, bool) {
	script := fmt.Sprintf(`
		(() => {
			const el = document.querySelector(%q);
			if (!el) return null;
			return el.textContent;
		})()
	`, selector)

	var text *string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &text)); err != nil {
		s.log.Debug().Err(err).Str("selector", selector).Msg("text query failed")
		return "", false
	}
	if text == nil {
		return "", false
	}
	return strings.TrimSpace(*text), true
}

// Visible reports whether the first element matching selector exists and
// takes up layout space.
func (s *Session) Visible(selector string) bool {
	script := fmt.Sprintf(`
		(() => {
			const el = document.querySelector(%q);
			if (!el) return false;
			const style = window.getComputedStyle(el);
			if (style.display === 'none' || style.visibility === 'hidden') return false;
			return el.offsetParent !== null || style.position === 'fixed';
		})()
	`, selector)

	var visible bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &visible)); err != nil {
		s.log.Debug().Err(err).Str("selector", selector).Msg("visibility query failed")
		return false
	}
	return visible
}

// Count returns the number of elements matching selector, zero when none.
func (s *Session) Count(selector string) int {
	script := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)

	var count int
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &count)); err != nil {
		s.log.Debug().Err(err).Str("selector", selector).Msg("count query failed")
		return 0
	}
	return count
}

// Value returns the form value of the first element matching selector
// (inputs, selects, textareas), and whether such an element exists.
func (s *Session) Value(selector string) (string, bool) {
	script := fmt.Sprintf(`
		(() => {
			const el = document.querySelector(%q);
			if (!el) return null;
			return el.value !== undefined ? String(el.value) : '';
		})()
	`, selector)

	var value *string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &value)); err != nil {
		s.log.Debug().Err(err).Str("selector", selector).Msg("value query failed")
		return "", false
	}
	if value == nil {
		return "", false
	}
	return *value, true
}

// EvaluateBool runs script in the page and fails unless it evaluates to
// true. For compound in-page interactions (find card by text, click its
// button) where the script reports whether it found its target.
func (s *Session) EvaluateBool(script string) error {
	var ok bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("script evaluation failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("script condition not met")
	}
	return nil
}

// OuterHTMLAll returns the concatenated markup of every element matching
// selector, and whether at least one matched. Fallback for listings whose
// container element is absent but whose item elements rendered.
func (s *Session) OuterHTMLAll(selector string) (string, bool) {
	script := fmt.Sprintf(`
		(() => {
			const els = Array.from(document.querySelectorAll(%q));
			if (els.length === 0) return null;
			return els.map(el => el.outerHTML).join('');
		})()
	`, selector)

	var html *string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &html)); err != nil {
		s.log.Debug().Err(err).Str("selector", selector).Msg("outerHTMLAll query failed")
		return "", false
	}
	if html == nil {
		return "", false
	}
	return *html, true
}

// OuterHTML returns the serialized markup of the first element matching
// selector. Page objects feed this to goquery when a card's fields need
// structured extraction rather than a single text read.
func (s *Session) OuterHTML(selector string) (string, bool) {
	script := fmt.Sprintf(`
		(() => {
			const el = document.querySelector(%q);
			if (!el) return null;
			return el.outerHTML;
		})()
	`, selector)

	var html *string
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, &html)); err != nil {
		s.log.Debug().Err(err).Str("selector", selector).Msg("outerHTML query failed")
		return "", false
	}
	if html == nil {
		return "", false
	}
	return *html, true
}
