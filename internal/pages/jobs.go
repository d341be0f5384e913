package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// Jobs listing field names.
const (
	jobsSearchInput    browser.Field = "searchInput"
	jobsStatusSelect   browser.Field = "statusSelect"
	jobsTypeSelect     browser.Field = "typeSelect"
	jobsCategorySelect browser.Field = "categorySelect"
	jobsPrioritySelect browser.Field = "prioritySelect"
	jobsSortSelect     browser.Field = "sortSelect"
	jobsClearButton    browser.Field = "clearFiltersButton"
	jobsCard           browser.Field = "jobCard"
	jobsCardList       browser.Field = "jobCardList"
	jobsCountHeading   browser.Field = "countHeading"
	jobsEmptyState     browser.Field = "emptyState"
)

var jobsLocators = browser.MustLocatorMap("jobs", map[browser.Field]browser.Locator{
	jobsSearchInput:    {`input[name="search"]`, `input[placeholder*="Search"]`},
	jobsStatusSelect:   {`select[name="status"]`},
	jobsTypeSelect:     {`select[name="jobType"]`, `select[name="type"]`},
	jobsCategorySelect: {`select[name="category"]`},
	jobsPrioritySelect: {`select[name="priority"]`},
	jobsSortSelect:     {`select[name="sort"]`},
	jobsClearButton:    {`.clear-filters-btn`, `button[type="reset"]`},
	jobsCard:           {`.job-card`},
	jobsCardList:       {`.jobs-list`, `.job-cards`},
	jobsCountHeading:   {`.jobs-count`, `main h5`},
	jobsEmptyState:     {`.no-jobs`, `[class*="empty"]`},
})

// Selectors inside one job card, used for structured extraction.
const (
	cardPositionSel = `.job-position, h5`
	cardCompanySel  = `.job-company, .company`
	cardLocationSel = `.job-location, .location`
	cardStatusSel   = `.job-status, .status`
	cardDeleteSel   = `.delete-btn`
	cardEditSel     = `.edit-btn`
)

// JobsPage drives the listing screen at /all-jobs: search, filters, sort,
// and per-card actions.
type JobsPage struct {
	pageBase
}

func NewJobsPage(s *browser.Session, baseURL string) *JobsPage {
	return &JobsPage{pageBase: newPageBase(s, baseURL, jobsLocators)}
}

func (p *JobsPage) NavigateToJobs() error {
	if err := p.navigate(RouteAllJobs); err != nil {
		return err
	}
	return p.waitFor(jobsSearchInput, 0)
}

func (p *JobsPage) IsOnJobsPage() bool {
	return p.onRoute(RouteAllJobs)
}

// Search types term into the search box and waits for the result set to
// settle; the listing re-renders asynchronously on each keystroke batch.
func (p *JobsPage) Search(term string) error {
	if err := p.fill(jobsSearchInput, term); err != nil {
		return err
	}
	return p.settle(jobsCard, 0)
}

func (p *JobsPage) FilterByStatus(status string) error {
	if err := p.selectOption(jobsStatusSelect, status); err != nil {
		return err
	}
	return p.settle(jobsCard, 0)
}

func (p *JobsPage) FilterByType(jobType string) error {
	if err := p.selectOption(jobsTypeSelect, jobType); err != nil {
		return err
	}
	return p.settle(jobsCard, 0)
}

func (p *JobsPage) FilterByCategory(category string) error {
	if err := p.selectOption(jobsCategorySelect, category); err != nil {
		return err
	}
	return p.settle(jobsCard, 0)
}

func (p *JobsPage) FilterByPriority(priority string) error {
	if err := p.selectOption(jobsPrioritySelect, priority); err != nil {
		return err
	}
	return p.settle(jobsCard, 0)
}

func (p *JobsPage) SortBy(sort string) error {
	if err := p.selectOption(jobsSortSelect, sort); err != nil {
		return err
	}
	return p.settle(jobsCard, 0)
}

// ApplyFilters writes every supplied filter control in one pass.
func (p *JobsPage) ApplyFilters(f FilterState) error {
	if f.Search != "" {
		if err := p.fill(jobsSearchInput, f.Search); err != nil {
			return err
		}
	}
	type sel struct {
		field browser.Field
		value string
	}
	for _, s := range []sel{
		{jobsStatusSelect, f.Status},
		{jobsTypeSelect, f.Type},
		{jobsCategorySelect, f.Category},
		{jobsPrioritySelect, f.Priority},
		{jobsSortSelect, f.Sort},
	} {
		if s.value == "" {
			continue
		}
		if err := p.selectOption(s.field, s.value); err != nil {
			return err
		}
	}
	return p.settle(jobsCard, 0)
}

// ClearFilters clicks the reset control and waits for the full set to
// render again.
func (p *JobsPage) ClearFilters() error {
	if err := p.click(jobsClearButton); err != nil {
		return err
	}
	return p.settle(jobsCard, 0)
}

// GetCurrentFilters reads the rendered state of every filter control.
// Absent controls come back as the zero value.
func (p *JobsPage) GetCurrentFilters() FilterState {
	read := func(field browser.Field) string {
		v, _ := p.value(field)
		return v
	}
	return FilterState{
		Search:   read(jobsSearchInput),
		Status:   read(jobsStatusSelect),
		Type:     read(jobsTypeSelect),
		Category: read(jobsCategorySelect),
		Priority: read(jobsPrioritySelect),
		Sort:     read(jobsSortSelect),
	}
}

// JobCardCount returns the number of cards currently rendered.
func (p *JobsPage) JobCardCount() int {
	return p.count(jobsCard)
}

// HasJobCardContaining reports whether any rendered card contains text.
func (p *JobsPage) HasJobCardContaining(text string) bool {
	html, ok := p.cardsHTML()
	if !ok {
		return false
	}
	return strings.Contains(html, text)
}

// cardsHTML captures the listing markup, preferring the container element and
// falling back to the concatenation of every card so a match in any card
// still counts when the container selector has drifted.
func (p *JobsPage) cardsHTML() (string, bool) {
	if html, ok := p.s.OuterHTML(p.sel(jobsCardList)); ok {
		return html, true
	}
	return p.s.OuterHTMLAll(p.sel(jobsCard))
}

// WaitForJobCardContaining blocks until a card containing text renders.
func (p *JobsPage) WaitForJobCardContaining(text string, timeout time.Duration) error {
	return p.s.WaitForText(p.sel(jobsCardList), text, timeout)
}

// GetJobCards extracts every rendered card into a structured row. The card
// markup is captured once and parsed with goquery rather than issuing one
// browser query per field per card.
func (p *JobsPage) GetJobCards() ([]JobCard, error) {
	html, ok := p.cardsHTML()
	if !ok {
		return nil, nil
	}
	return parseJobCards(html)
}

func parseJobCards(html string) ([]JobCard, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse job card markup: %w", err)
	}

	var cards []JobCard
	doc.Find(".job-card").Each(func(_ int, card *goquery.Selection) {
		first := func(sel string) string {
			return strings.TrimSpace(card.Find(sel).First().Text())
		}
		cards = append(cards, JobCard{
			Position: first(cardPositionSel),
			Company:  first(cardCompanySel),
			Location: first(cardLocationSel),
			Status:   first(cardStatusSel),
		})
	})
	return cards, nil
}

// DeleteJobContaining clicks the delete control on the first card containing
// text, auto-accepting the native confirm dialog, and waits for the card to
// leave the listing.
func (p *JobsPage) DeleteJobContaining(text string, timeout time.Duration) error {
	if !p.HasJobCardContaining(text) {
		return fmt.Errorf("no job card contains %q", text)
	}

	script := fmt.Sprintf(`
		(() => {
			const cards = Array.from(document.querySelectorAll('.job-card'));
			const card = cards.find(c => c.textContent.includes(%q));
			if (!card) return false;
			const btn = card.querySelector(%q);
			if (!btn) return false;
			btn.click();
			return true;
		})()
	`, text, cardDeleteSel)

	err := p.s.WithDialogGuard(true, func() error {
		return p.s.EvaluateBool(script)
	})
	if err != nil {
		return fmt.Errorf("failed to delete job containing %q: %w", text, err)
	}

	// The card is removed asynchronously after the API call completes.
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !p.HasJobCardContaining(text) {
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("job card containing %q still present after %v", text, timeout)
}

// JobsVerification aggregates what "loaded" means for the listing screen.
type JobsVerification struct {
	IsOnCorrectURL bool
	SearchVisible  bool
	FiltersVisible bool
	CardCount      int
}

func (p *JobsPage) VerifyJobsPageLoaded() JobsVerification {
	return JobsVerification{
		IsOnCorrectURL: p.IsOnJobsPage(),
		SearchVisible:  p.visible(jobsSearchInput),
		FiltersVisible: p.visible(jobsStatusSelect),
		CardCount:      p.JobCardCount(),
	}
}
