// -----------------------------------------------------------------------
// Shared page-object plumbing
// Each feature page object composes pageBase instead of inheriting from a
// base class: the shared primitive contract is the injected browser session
// plus a validated locator map.
// -----------------------------------------------------------------------

package pages

import (
	"net/url"
	"strings"
	"time"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// Application routes. Protected routes redirect unauthenticated visitors to
// the landing route; that contract is asserted by scenarios, not here.
const (
	RouteDashboard  = "/"
	RouteLanding    = "/landing"
	RouteRegister   = "/register"
	RouteAllJobs    = "/all-jobs"
	RouteAddJob     = "/add-job"
	RouteActivities = "/activities"
	RouteTimeline   = "/timeline"
	RouteProfile    = "/profile"
)

type pageBase struct {
	s       *browser.Session
	loc     *browser.LocatorMap
	baseURL string
}

func newPageBase(s *browser.Session, baseURL string, loc *browser.LocatorMap) pageBase {
	return pageBase{s: s, loc: loc, baseURL: strings.TrimRight(baseURL, "/")}
}

// Session exposes the underlying browser session for scenario-level
// composition (history navigation, viewport changes, screenshots).
func (b *pageBase) Session() *browser.Session {
	return b.s
}

// sel resolves a field to its first present candidate selector, falling back
// to the primary candidate so waits and failures name the intended element.
func (b *pageBase) sel(field browser.Field) string {
	selector, _ := b.s.Resolve(b.loc.Get(field))
	return selector
}

func (b *pageBase) navigate(route string) error {
	return b.s.Navigate(b.baseURL + route)
}

// onRoute reports whether the current location path equals route. Substring
// checks are not enough here: "/" is a prefix of every route.
func (b *pageBase) onRoute(route string) bool {
	current, err := b.s.CurrentURL()
	if err != nil {
		return false
	}
	parsed, err := url.Parse(current)
	if err != nil {
		return false
	}
	path := parsed.Path
	if path == "" {
		path = "/"
	}
	if route == "/" {
		return path == "/"
	}
	return path == route || strings.HasPrefix(path, route+"/")
}

func (b *pageBase) fill(field browser.Field, value string) error {
	return b.s.Fill(b.sel(field), value)
}

func (b *pageBase) click(field browser.Field) error {
	return b.s.Click(b.sel(field))
}

func (b *pageBase) selectOption(field browser.Field, value string) error {
	return b.s.SelectOption(b.sel(field), value)
}

func (b *pageBase) text(field browser.Field) (string, bool) {
	return b.s.Text(b.sel(field))
}

func (b *pageBase) value(field browser.Field) (string, bool) {
	return b.s.Value(b.sel(field))
}

func (b *pageBase) visible(field browser.Field) bool {
	return b.s.Visible(b.sel(field))
}

func (b *pageBase) count(field browser.Field) int {
	return b.s.Count(b.sel(field))
}

func (b *pageBase) waitFor(field browser.Field, timeout time.Duration) error {
	return b.s.WaitForElement(b.sel(field), timeout)
}

// settle waits for the re-rendered result set under field to stop changing.
func (b *pageBase) settle(field browser.Field, timeout time.Duration) error {
	_, err := b.s.WaitForCountStable(b.sel(field), timeout)
	return err
}
