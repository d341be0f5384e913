package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// Every field a page object's methods reference must exist in that page's
// locator map. Get panics on a dangling field, so a miss here means a runtime
// panic mid-scenario instead of a clean assertion failure.
func TestPageLocatorMapsCoverDeclaredFields(t *testing.T) {
	cases := []struct {
		loc    *browser.LocatorMap
		fields []browser.Field
	}{
		{authLocators, []browser.Field{
			authNameInput, authEmailInput, authPasswordInput,
			authSubmitButton, authModeToggle, authAlert, authFormTitle,
		}},
		{dashboardLocators, []browser.Field{
			dashUserInfo, dashStatsCard, dashRecentJobs, dashPageHeading,
		}},
		{navigationLocators, []browser.Field{
			navBar, navLinks, navActiveLink, navLogoutButton,
			navUserButton, navMobileToggle, navMobileMenu, navBrand,
		}},
		{jobsLocators, []browser.Field{
			jobsSearchInput, jobsStatusSelect, jobsTypeSelect,
			jobsCategorySelect, jobsPrioritySelect, jobsSortSelect,
			jobsClearButton, jobsCard, jobsCardList, jobsCountHeading,
			jobsEmptyState,
		}},
		{addJobLocators, []browser.Field{
			addJobPosition, addJobCompany, addJobLocation, addJobType,
			addJobStatus, addJobSalaryMin, addJobSalaryMax,
			addJobSalaryCurrency, addJobDescription, addJobCompanyWebsite,
			addJobPostingURL, addJobApplicationMethod, addJobNotes,
			addJobCategory, addJobTags, addJobPriority, addJobSubmit,
			addJobFormTitle, addJobAlert,
		}},
		{activitiesLocators, []browser.Field{
			actTitleInput, actTypeSelect, actDateInput, actNotesInput,
			actSubmitButton, actCard, actCardList, actAlert, actEmptyState,
		}},
		{timelineLocators, []browser.Field{
			tlPreview, tlEntry, tlAllButton, tlByJobButton,
			tlJobSelect, tlPageHeading, tlEmptyState,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.loc.Page(), func(t *testing.T) {
			for _, f := range tc.fields {
				require.True(t, tc.loc.Has(f), "field %s missing from %s locators", f, tc.loc.Page())
				loc := tc.loc.Get(f)
				require.NotEmpty(t, loc, "field %s has no candidates", f)
				assert.NotEmpty(t, loc.Primary(), "field %s has empty primary selector", f)
			}
			// The declared list must be exhaustive for the map too.
			assert.Len(t, tc.loc.Fields(), len(tc.fields))
		})
	}
}

func TestRouteConstants(t *testing.T) {
	routes := []string{
		RouteDashboard, RouteLanding, RouteRegister, RouteAllJobs,
		RouteAddJob, RouteActivities, RouteTimeline, RouteProfile,
	}
	seen := make(map[string]bool, len(routes))
	for _, r := range routes {
		assert.True(t, len(r) > 0 && r[0] == '/', "route %q must start with /", r)
		assert.False(t, seen[r], "duplicate route %q", r)
		seen[r] = true
	}
}
