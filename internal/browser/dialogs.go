package browser

import (
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Native confirm/alert dialogs block the CDP session until answered. The
// listener is installed once per session but only acts while a guard is
// active, so a dialog fired by an unrelated later action is never silently
// swallowed.

func (s *Session) installDialogListener() {
	chromedp.ListenTarget(s.ctx, func(ev interface{}) {
		e, ok := ev.(*page.EventJavascriptDialogOpening)
		if !ok {
			return
		}

		s.dialogMu.Lock()
		active, accept := s.dialogActive, s.dialogAccept
		s.dialogMu.Unlock()

		if !active {
			s.log.Warn().
				Str("type", string(e.Type)).
				Str("message", e.Message).
				Msg("unexpected dialog, dismissing")
			accept = false
		}

		// Must run on a separate goroutine: the dialog event arrives while
		// the triggering action is still blocked.
		go func() {
			if err := chromedp.Run(s.ctx, page.HandleJavaScriptDialog(accept)); err != nil {
				s.log.Debug().Err(err).Msg("dialog handling failed")
			}
		}()
	})
}

// WithDialogGuard runs fn with native dialogs auto-answered: accepted when
// accept is true, dismissed otherwise. The guard is released when fn
// returns, scoping the side effect to the one action expected to trigger a
// dialog.
func (s *Session) WithDialogGuard(accept bool, fn func() error) error {
	s.dialogMu.Lock()
	s.dialogActive = true
	s.dialogAccept = accept
	s.dialogMu.Unlock()

	defer func() {
		s.dialogMu.Lock()
		s.dialogActive = false
		s.dialogMu.Unlock()
	}()

	return fn()
}
