// uitest_context.go - Shared UI test context and helpers.
// NOTE: This is NOT a test file - it contains shared test infrastructure.

package ui

import (
	"context"
	"testing"
	"time"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
	"github.com/jobtrail/jobtrail-e2e/internal/common"
	"github.com/jobtrail/jobtrail-e2e/internal/harness"
	"github.com/jobtrail/jobtrail-e2e/internal/pages"
)

// UITestContext holds shared state for UI scenarios: the harness environment,
// one browser session, and every page object bound to it.
type UITestContext struct {
	T       *testing.T
	Env     *harness.TestEnvironment
	Session *browser.Session
	BaseURL string

	Auth       *pages.AuthPage
	Dashboard  *pages.DashboardPage
	Nav        *pages.NavigationPage
	Jobs       *pages.JobsPage
	AddJob     *pages.AddJobPage
	Activities *pages.ActivitiesPage
	Timeline   *pages.TimelinePage

	// Cleanup functions run in reverse order.
	cleanup []func()
}

// NewUITestContext creates a context on the default desktop profile.
func NewUITestContext(t *testing.T) *UITestContext {
	return newContextWithProfile(t, func(cfg *common.Config) common.ViewportProfile {
		return cfg.Browser.Profiles[0]
	})
}

// NewMobileUITestContext creates a context on a mobile viewport for the
// responsive scenarios, regardless of the configured profile list.
func NewMobileUITestContext(t *testing.T) *UITestContext {
	return newContextWithProfile(t, func(cfg *common.Config) common.ViewportProfile {
		for _, p := range cfg.Browser.Profiles {
			if p.Mobile {
				return p
			}
		}
		return common.ViewportProfile{Name: "mobile-chrome", Width: 375, Height: 667, Mobile: true}
	})
}

func newContextWithProfile(t *testing.T, pick func(*common.Config) common.ViewportProfile) *UITestContext {
	env, err := harness.SetupTestEnvironment(t.Name())
	if err != nil {
		t.Fatalf("Failed to setup test environment: %v", err)
	}

	profile := pick(env.Config)
	opts := browser.OptionsFromConfig(env.Config, profile)
	opts.ResultsDir = env.ResultsDir

	// Whole-scenario deadline; every browser call inherits it.
	testBudget := time.Duration(env.Config.Timeouts.TestSeconds) * time.Second
	ctx, cancelTimeout := context.WithTimeout(context.Background(), testBudget)

	session, err := browser.NewSession(ctx, opts)
	if err != nil {
		cancelTimeout()
		env.Cleanup(t)
		t.Fatalf("Failed to start browser session: %v", err)
	}

	baseURL := env.BaseURL()
	utc := &UITestContext{
		T:          t,
		Env:        env,
		Session:    session,
		BaseURL:    baseURL,
		Auth:       pages.NewAuthPage(session, baseURL),
		Dashboard:  pages.NewDashboardPage(session, baseURL),
		Nav:        pages.NewNavigationPage(session, baseURL),
		Jobs:       pages.NewJobsPage(session, baseURL),
		AddJob:     pages.NewAddJobPage(session, baseURL),
		Activities: pages.NewActivitiesPage(session, baseURL),
		Timeline:   pages.NewTimelinePage(session, baseURL),
	}

	utc.cleanup = append(utc.cleanup, func() { env.Cleanup(t) })
	utc.cleanup = append(utc.cleanup, func() { cancelTimeout() })
	utc.cleanup = append(utc.cleanup, func() { session.Close() })

	return utc
}

// Cleanup releases all resources. Call this with defer.
func (utc *UITestContext) Cleanup() {
	if utc.T.Failed() {
		utc.Env.MarkFailed()
		if utc.Env.Config.Output.Screenshots != "off" {
			utc.Session.Screenshot("failure")
		}
	} else if utc.Env.Config.Output.Screenshots == "always" {
		utc.Session.Screenshot("final_state")
	}

	for i := len(utc.cleanup) - 1; i >= 0; i-- {
		utc.cleanup[i]()
	}
}

// Log writes a message to the test log and the go test output.
func (utc *UITestContext) Log(format string, args ...interface{}) {
	utc.Env.LogTest(utc.T, format, args...)
}

// Screenshot captures the viewport into the test's results directory.
func (utc *UITestContext) Screenshot(name string) {
	if err := utc.Session.Screenshot(name); err != nil {
		utc.Log("Warning: screenshot %s failed: %v", name, err)
	}
}

// FreshCredentials returns a unique register-ready identity for this test.
func (utc *UITestContext) FreshCredentials(prefix string) pages.Credentials {
	return pages.Credentials{
		Email:    common.NewTestEmail(prefix),
		Password: "password123",
		Name:     "E2E " + prefix,
	}
}

// RegisterFreshUser registers a unique user and returns its credentials. Most
// scenarios start here so they never share state with other tests.
func (utc *UITestContext) RegisterFreshUser(prefix string) pages.Credentials {
	creds := utc.FreshCredentials(prefix)
	utc.Log("Registering fresh user %s", creds.Email)
	if err := utc.Auth.Register(creds); err != nil {
		utc.Screenshot("register_failed")
		utc.T.Fatalf("Failed to register fresh user: %v", err)
	}
	return creds
}

// LoginSeedUser signs in as the baseline seeded user.
func (utc *UITestContext) LoginSeedUser() pages.Credentials {
	email, password := harness.SeedCredentials(utc.Env.Config)
	creds := pages.Credentials{Email: email, Password: password}
	utc.Log("Logging in as seed user %s", email)
	if err := utc.Auth.Login(creds); err != nil {
		utc.Screenshot("seed_login_failed")
		utc.T.Fatalf("Failed to login as seed user: %v", err)
	}
	return creds
}

// CreateJobNamed assumes an authenticated session and creates a job whose
// position/company act as markers for later lookup.
func (utc *UITestContext) CreateJobNamed(position, company string) pages.JobDraft {
	draft := pages.JobDraft{
		Position:    position,
		Company:     company,
		JobLocation: "Remote",
		JobType:     "full-time",
		Status:      "applied",
	}
	utc.Log("Creating job %q at %q", position, company)
	if err := utc.AddJob.CreateJob(draft); err != nil {
		utc.Screenshot("create_job_failed")
		utc.T.Fatalf("Failed to create job %q: %v", position, err)
	}
	return draft
}

// WaitBudget returns the configured assertion budget as a duration.
func (utc *UITestContext) WaitBudget() time.Duration {
	return time.Duration(utc.Env.Config.Timeouts.AssertionSeconds) * time.Second
}
