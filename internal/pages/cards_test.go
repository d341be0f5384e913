package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsListingMarkup = `
<div class="jobs-list">
  <div class="job-card">
    <h5 class="job-position">Frontend Developer</h5>
    <div class="job-company">SearchTest Corp</div>
    <div class="job-location">Berlin</div>
    <span class="job-status">applied</span>
    <button class="delete-btn">Delete</button>
  </div>
  <div class="job-card">
    <h5 class="job-position">Data Analyst</h5>
    <div class="job-company">Initech</div>
    <div class="job-location">Remote</div>
    <span class="job-status">interview</span>
  </div>
</div>`

func TestParseJobCards(t *testing.T) {
	cards, err := parseJobCards(jobsListingMarkup)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, JobCard{
		Position: "Frontend Developer",
		Company:  "SearchTest Corp",
		Location: "Berlin",
		Status:   "applied",
	}, cards[0])
	assert.Equal(t, "Data Analyst", cards[1].Position)
	assert.Equal(t, "interview", cards[1].Status)
}

func TestParseJobCardsEmptyListing(t *testing.T) {
	cards, err := parseJobCards(`<div class="jobs-list"><p class="no-jobs">No jobs found</p></div>`)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestParseJobCardsMissingFields(t *testing.T) {
	cards, err := parseJobCards(`<div class="jobs-list"><div class="job-card"><h5>Untitled Role</h5></div></div>`)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	// h5 is the fallback position selector; the rest stays zero.
	assert.Equal(t, "Untitled Role", cards[0].Position)
	assert.Empty(t, cards[0].Company)
	assert.Empty(t, cards[0].Status)
}

// The fallback capture path concatenates sibling cards with no surrounding
// container; every card must still parse, not just the first.
func TestParseJobCardsConcatenatedWithoutContainer(t *testing.T) {
	markup := `<div class="job-card">
  <h5 class="job-position">Frontend Developer</h5>
  <div class="job-company">SearchTest Corp</div>
</div><div class="job-card">
  <h5 class="job-position">Backend Engineer</h5>
  <div class="job-company">Initech</div>
</div><div class="job-card">
  <h5 class="job-position">Data Analyst</h5>
  <div class="job-company">Globex</div>
</div>`

	cards, err := parseJobCards(markup)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "Backend Engineer", cards[1].Position)
	assert.Equal(t, "Globex", cards[2].Company)
}

func TestParseActivityRows(t *testing.T) {
	markup := `
<div class="activities-list">
  <div class="activity-card">
    <h5 class="activity-title">Phone screen</h5>
    <span class="activity-type">interview</span>
    <span class="activity-date">2026-08-24</span>
  </div>
  <div class="activity-card">
    <h5 class="activity-title">Sent follow-up</h5>
    <span class="activity-type">follow-up</span>
    <span class="activity-date">2026-08-25</span>
  </div>
</div>`

	rows, err := parseActivityRows(markup)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ActivityRow{Title: "Phone screen", Type: "interview", Date: "2026-08-24"}, rows[0])
	assert.Equal(t, "Sent follow-up", rows[1].Title)
}

func TestParseActivityRowsEmpty(t *testing.T) {
	rows, err := parseActivityRows(`<div class="activities-list"></div>`)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseActivityRowsConcatenatedWithoutContainer(t *testing.T) {
	markup := `<div class="activity-card"><h5 class="activity-title">Phone screen</h5></div>` +
		`<div class="activity-card"><h5 class="activity-title">Sent follow-up</h5></div>`

	rows, err := parseActivityRows(markup)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Sent follow-up", rows[1].Title)
}
