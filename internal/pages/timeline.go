package pages

import (
	"strings"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// Timeline page field names.
const (
	tlPreview     browser.Field = "timelinePreview"
	tlEntry       browser.Field = "timelineEntry"
	tlAllButton   browser.Field = "allActivitiesButton"
	tlByJobButton browser.Field = "byJobButton"
	tlJobSelect   browser.Field = "jobSelect"
	tlPageHeading browser.Field = "pageHeading"
	tlEmptyState  browser.Field = "emptyState"
)

var timelineLocators = browser.MustLocatorMap("timeline", map[browser.Field]browser.Locator{
	tlPreview:     {`.timeline-preview`},
	tlEntry:       {`.timeline-entry`, `.timeline-item`},
	tlAllButton:   {`.timeline-mode-all`, `button[data-mode="all"]`},
	tlByJobButton: {`.timeline-mode-job`, `button[data-mode="job"]`},
	tlJobSelect:   {`select[name="timelineJob"]`, `select[name="jobId"]`},
	tlPageHeading: {`main h1`, `.timeline h2`},
	tlEmptyState:  {`.no-timeline`, `[class*="empty"]`},
})

// TimelinePage drives the timeline preview screen at /timeline.
//
// The screen is a two-state mode toggle: by-job mode shows the job selector,
// all-activities mode hides it. Like the auth toggle, the state lives in the
// target application and is only observed here.
type TimelinePage struct {
	pageBase
}

func NewTimelinePage(s *browser.Session, baseURL string) *TimelinePage {
	return &TimelinePage{pageBase: newPageBase(s, baseURL, timelineLocators)}
}

func (p *TimelinePage) NavigateToTimeline() error {
	if err := p.navigate(RouteTimeline); err != nil {
		return err
	}
	return p.waitFor(tlPreview, 0)
}

func (p *TimelinePage) IsOnTimelinePage() bool {
	return p.onRoute(RouteTimeline)
}

// IsPreviewVisible reports whether the timeline preview rendered.
func (p *TimelinePage) IsPreviewVisible() bool {
	return p.visible(tlPreview)
}

// IsByJobMode reports whether the distinguishing job selector is visible.
func (p *TimelinePage) IsByJobMode() bool {
	return p.visible(tlJobSelect)
}

// SwitchToAllActivities activates the all-activities mode and waits for the
// job selector to disappear.
func (p *TimelinePage) SwitchToAllActivities() error {
	if !p.IsByJobMode() {
		return nil
	}
	if err := p.click(tlAllButton); err != nil {
		return err
	}
	return p.s.WaitForHidden(p.sel(tlJobSelect), 0)
}

// SwitchToByJob activates the by-job mode and waits for the job selector.
func (p *TimelinePage) SwitchToByJob() error {
	if p.IsByJobMode() {
		return nil
	}
	if err := p.click(tlByJobButton); err != nil {
		return err
	}
	return p.waitFor(tlJobSelect, 0)
}

// SelectJob picks a job in by-job mode and waits for the entries to settle.
func (p *TimelinePage) SelectJob(value string) error {
	if err := p.selectOption(tlJobSelect, value); err != nil {
		return err
	}
	return p.settle(tlEntry, 0)
}

// EntryCount returns the number of rendered timeline entries.
func (p *TimelinePage) EntryCount() int {
	return p.count(tlEntry)
}

// HasEntryContaining reports whether any entry contains text.
func (p *TimelinePage) HasEntryContaining(text string) bool {
	html, ok := p.s.OuterHTML(p.sel(tlPreview))
	if !ok {
		return false
	}
	return strings.Contains(html, text)
}

// TimelineVerification aggregates what "loaded" means for this screen.
type TimelineVerification struct {
	IsOnCorrectURL bool
	PreviewVisible bool
	EntryCount     int
	ByJobMode      bool
}

func (p *TimelinePage) VerifyTimelinePageLoaded() TimelineVerification {
	return TimelineVerification{
		IsOnCorrectURL: p.IsOnTimelinePage(),
		PreviewVisible: p.IsPreviewVisible(),
		EntryCount:     p.EntryCount(),
		ByJobMode:      p.IsByJobMode(),
	}
}
