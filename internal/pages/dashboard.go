package pages

import (
	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// Dashboard page field names.
const (
	dashUserInfo    browser.Field = "userInfo"
	dashStatsCard   browser.Field = "statsCard"
	dashRecentJobs  browser.Field = "recentJobs"
	dashPageHeading browser.Field = "pageHeading"
)

var dashboardLocators = browser.MustLocatorMap("dashboard", map[browser.Field]browser.Locator{
	dashUserInfo:    {`.user-info`, `[class*="user-name"]`},
	dashStatsCard:   {`.stats-card`, `[class*="stat-item"]`},
	dashRecentJobs:  {`.recent-jobs .job-card`, `.job-card`},
	dashPageHeading: {`main h1`, `.dashboard h2`},
})

// DashboardPage drives the authenticated landing screen at /.
type DashboardPage struct {
	pageBase
}

func NewDashboardPage(s *browser.Session, baseURL string) *DashboardPage {
	return &DashboardPage{pageBase: newPageBase(s, baseURL, dashboardLocators)}
}

func (p *DashboardPage) NavigateToDashboard() error {
	return p.navigate(RouteDashboard)
}

func (p *DashboardPage) IsOnDashboard() bool {
	return p.onRoute(RouteDashboard)
}

// GetUserName returns the rendered user display name, empty when the user
// info block is absent.
func (p *DashboardPage) GetUserName() string {
	text, _ := p.text(dashUserInfo)
	return text
}

// StatsCardCount returns the number of stat cards rendered.
func (p *DashboardPage) StatsCardCount() int {
	return p.count(dashStatsCard)
}

// RecentJobCount returns the number of recent job cards rendered.
func (p *DashboardPage) RecentJobCount() int {
	return p.count(dashRecentJobs)
}

// DashboardVerification aggregates what "loaded" means for the dashboard.
// UserInfoVisible is advisory: the URL check is the hard gate, user info
// rendering varies with seed data.
type DashboardVerification struct {
	IsOnCorrectURL  bool
	UserInfoVisible bool
	StatsVisible    bool
	HeadingVisible  bool
}

func (p *DashboardPage) VerifyDashboardLoaded() DashboardVerification {
	return DashboardVerification{
		IsOnCorrectURL:  p.IsOnDashboard(),
		UserInfoVisible: p.visible(dashUserInfo),
		StatsVisible:    p.count(dashStatsCard) > 0,
		HeadingVisible:  p.visible(dashPageHeading),
	}
}
