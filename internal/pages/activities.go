package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// Activities page field names.
const (
	actTitleInput   browser.Field = "titleInput"
	actTypeSelect   browser.Field = "typeSelect"
	actDateInput    browser.Field = "dateInput"
	actNotesInput   browser.Field = "notesInput"
	actSubmitButton browser.Field = "submitButton"
	actCard         browser.Field = "activityCard"
	actCardList     browser.Field = "activityList"
	actAlert        browser.Field = "alert"
	actEmptyState   browser.Field = "emptyState"
)

var activitiesLocators = browser.MustLocatorMap("activities", map[browser.Field]browser.Locator{
	actTitleInput:   {`input[name="title"]`},
	actTypeSelect:   {`select[name="activityType"]`, `select[name="type"]`},
	actDateInput:    {`input[name="activityDate"]`, `input[type="date"]`},
	actNotesInput:   {`textarea[name="notes"]`, `input[name="notes"]`},
	actSubmitButton: {`button[type="submit"]`},
	actCard:         {`.activity-card`},
	actCardList:     {`.activities-list`, `.activity-cards`},
	actAlert:        {`[class*="alert"]`},
	actEmptyState:   {`.no-activities`, `[class*="empty"]`},
})

// Selectors inside one activity card.
const (
	activityTitleSel  = `.activity-title, h5`
	activityTypeSel   = `.activity-type, .type`
	activityDateSel   = `.activity-date, .date`
	activityDeleteSel = `.delete-btn`
)

// ActivitiesPage drives the activity management screen at /activities.
type ActivitiesPage struct {
	pageBase
}

func NewActivitiesPage(s *browser.Session, baseURL string) *ActivitiesPage {
	return &ActivitiesPage{pageBase: newPageBase(s, baseURL, activitiesLocators)}
}

func (p *ActivitiesPage) NavigateToActivities() error {
	if err := p.navigate(RouteActivities); err != nil {
		return err
	}
	return p.waitFor(actTitleInput, 0)
}

func (p *ActivitiesPage) IsOnActivitiesPage() bool {
	return p.onRoute(RouteActivities)
}

// AddActivity fills the activity form with the supplied fields and submits,
// then waits for a card containing the title to render. As with job drafts,
// only supplied fields are written.
func (p *ActivitiesPage) AddActivity(draft ActivityDraft) error {
	if draft.Title != "" {
		if err := p.fill(actTitleInput, draft.Title); err != nil {
			return err
		}
	}
	if draft.Type != "" {
		if err := p.selectOption(actTypeSelect, draft.Type); err != nil {
			return err
		}
	}
	if draft.Date != "" {
		if err := p.fill(actDateInput, draft.Date); err != nil {
			return err
		}
	}
	if draft.Notes != "" {
		if err := p.fill(actNotesInput, draft.Notes); err != nil {
			return err
		}
	}
	if err := p.click(actSubmitButton); err != nil {
		return err
	}
	if draft.Title == "" {
		return nil
	}
	return p.WaitForActivityContaining(draft.Title, 0)
}

// ActivityCardCount returns the number of activity cards rendered.
func (p *ActivitiesPage) ActivityCardCount() int {
	return p.count(actCard)
}

// HasActivityContaining reports whether any rendered card contains text.
func (p *ActivitiesPage) HasActivityContaining(text string) bool {
	html, ok := p.activitiesHTML()
	if !ok {
		return false
	}
	return strings.Contains(html, text)
}

// activitiesHTML captures the listing markup, preferring the container and
// falling back to every card concatenated so later cards still match.
func (p *ActivitiesPage) activitiesHTML() (string, bool) {
	if html, ok := p.s.OuterHTML(p.sel(actCardList)); ok {
		return html, true
	}
	return p.s.OuterHTMLAll(p.sel(actCard))
}

// WaitForActivityContaining blocks until a card containing text renders.
func (p *ActivitiesPage) WaitForActivityContaining(text string, timeout time.Duration) error {
	return p.s.WaitForText(p.sel(actCardList), text, timeout)
}

// ActivityRow is one activity card as rendered.
type ActivityRow struct {
	Title string
	Type  string
	Date  string
}

// GetActivities extracts every rendered activity card.
func (p *ActivitiesPage) GetActivities() ([]ActivityRow, error) {
	html, ok := p.activitiesHTML()
	if !ok {
		return nil, nil
	}
	return parseActivityRows(html)
}

func parseActivityRows(html string) ([]ActivityRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse activity markup: %w", err)
	}

	var rows []ActivityRow
	doc.Find(".activity-card").Each(func(_ int, card *goquery.Selection) {
		first := func(sel string) string {
			return strings.TrimSpace(card.Find(sel).First().Text())
		}
		rows = append(rows, ActivityRow{
			Title: first(activityTitleSel),
			Type:  first(activityTypeSel),
			Date:  first(activityDateSel),
		})
	})
	return rows, nil
}

// DeleteActivityContaining clicks delete on the first card containing text,
// auto-accepting the confirm dialog, and waits for the card to disappear.
func (p *ActivitiesPage) DeleteActivityContaining(text string, timeout time.Duration) error {
	if !p.HasActivityContaining(text) {
		return fmt.Errorf("no activity card contains %q", text)
	}

	script := fmt.Sprintf(`
		(() => {
			const cards = Array.from(document.querySelectorAll('.activity-card'));
			const card = cards.find(c => c.textContent.includes(%q));
			if (!card) return false;
			const btn = card.querySelector(%q);
			if (!btn) return false;
			btn.click();
			return true;
		})()
	`, text, activityDeleteSel)

	err := p.s.WithDialogGuard(true, func() error {
		return p.s.EvaluateBool(script)
	})
	if err != nil {
		return fmt.Errorf("failed to delete activity containing %q: %w", text, err)
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !p.HasActivityContaining(text) {
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("activity card containing %q still present after %v", text, timeout)
}

// GetAlertText returns the page alert text, empty when none is shown.
func (p *ActivitiesPage) GetAlertText() string {
	text, _ := p.text(actAlert)
	return text
}

// ActivitiesVerification aggregates what "loaded" means for this screen.
type ActivitiesVerification struct {
	IsOnCorrectURL bool
	FormVisible    bool
	CardCount      int
}

func (p *ActivitiesPage) VerifyActivitiesPageLoaded() ActivitiesVerification {
	return ActivitiesVerification{
		IsOnCorrectURL: p.IsOnActivitiesPage(),
		FormVisible:    p.visible(actTitleInput),
		CardCount:      p.ActivityCardCount(),
	}
}
