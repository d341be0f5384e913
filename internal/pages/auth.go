package pages

import (
	"fmt"
	"time"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// Auth page field names.
const (
	authNameInput     browser.Field = "nameInput"
	authEmailInput    browser.Field = "emailInput"
	authPasswordInput browser.Field = "passwordInput"
	authSubmitButton  browser.Field = "submitButton"
	authModeToggle    browser.Field = "modeToggle"
	authAlert         browser.Field = "alert"
	authFormTitle     browser.Field = "formTitle"
)

var authLocators = browser.MustLocatorMap("auth", map[browser.Field]browser.Locator{
	authNameInput:     {`input[name="name"]`},
	authEmailInput:    {`input[name="email"]`},
	authPasswordInput: {`input[name="password"]`},
	authSubmitButton:  {`button[type="submit"]`, `.btn-block`},
	authModeToggle:    {`.member-btn`, `form button[type="button"]`},
	authAlert:         {`[class*="alert"]`},
	authFormTitle:     {`form h3`, `.form-title`},
})

// AuthPage drives the combined login/register screen at /register.
//
// The screen is a two-state mode toggle: register mode shows the name field,
// login mode hides it. The state lives in the target application; this page
// object only observes and flips it.
type AuthPage struct {
	pageBase
}

func NewAuthPage(s *browser.Session, baseURL string) *AuthPage {
	return &AuthPage{pageBase: newPageBase(s, baseURL, authLocators)}
}

func (p *AuthPage) NavigateToAuth() error {
	if err := p.navigate(RouteRegister); err != nil {
		return err
	}
	return p.waitFor(authEmailInput, 0)
}

func (p *AuthPage) IsOnAuthPage() bool {
	return p.onRoute(RouteRegister)
}

// IsRegisterMode reports whether the distinguishing name field is visible.
func (p *AuthPage) IsRegisterMode() bool {
	return p.visible(authNameInput)
}

// SwitchToRegisterMode flips the toggle until the name field appears.
func (p *AuthPage) SwitchToRegisterMode() error {
	if p.IsRegisterMode() {
		return nil
	}
	if err := p.click(authModeToggle); err != nil {
		return err
	}
	return p.waitFor(authNameInput, 0)
}

// SwitchToLoginMode flips the toggle until the name field disappears.
func (p *AuthPage) SwitchToLoginMode() error {
	if !p.IsRegisterMode() {
		return nil
	}
	if err := p.click(authModeToggle); err != nil {
		return err
	}
	return p.s.WaitForHidden(p.sel(authNameInput), 0)
}

// Register creates an account and waits for the redirect into the app.
func (p *AuthPage) Register(creds Credentials) error {
	if err := p.NavigateToAuth(); err != nil {
		return err
	}
	if err := p.SwitchToRegisterMode(); err != nil {
		return err
	}
	if err := p.fill(authNameInput, creds.Name); err != nil {
		return err
	}
	if err := p.fill(authEmailInput, creds.Email); err != nil {
		return err
	}
	if err := p.fill(authPasswordInput, creds.Password); err != nil {
		return err
	}
	if err := p.click(authSubmitButton); err != nil {
		return err
	}
	return p.waitForAuthenticated()
}

// Login signs in and waits for the redirect into the app.
func (p *AuthPage) Login(creds Credentials) error {
	if err := p.NavigateToAuth(); err != nil {
		return err
	}
	if err := p.SwitchToLoginMode(); err != nil {
		return err
	}
	if err := p.fill(authEmailInput, creds.Email); err != nil {
		return err
	}
	if err := p.fill(authPasswordInput, creds.Password); err != nil {
		return err
	}
	if err := p.click(authSubmitButton); err != nil {
		return err
	}
	return p.waitForAuthenticated()
}

// SubmitLogin fills and submits without waiting for success, for scenarios
// asserting on rejection alerts.
func (p *AuthPage) SubmitLogin(creds Credentials) error {
	if err := p.SwitchToLoginMode(); err != nil {
		return err
	}
	if err := p.fill(authEmailInput, creds.Email); err != nil {
		return err
	}
	if err := p.fill(authPasswordInput, creds.Password); err != nil {
		return err
	}
	return p.click(authSubmitButton)
}

// waitForAuthenticated waits until the location leaves the auth route. The
// app lands authenticated users on the dashboard; asserting the exact
// destination is the scenario's business.
func (p *AuthPage) waitForAuthenticated() error {
	deadline := time.Now().Add(p.authRedirectTimeout())
	for time.Now().Before(deadline) {
		if !p.IsOnAuthPage() {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	alert := p.GetAlertText()
	if alert != "" {
		return fmt.Errorf("still on auth page after submit (alert: %q)", alert)
	}
	return fmt.Errorf("still on auth page after submit")
}

func (p *AuthPage) authRedirectTimeout() time.Duration {
	return 10 * time.Second
}

// GetAlertText returns the alert container text, empty when none is shown.
func (p *AuthPage) GetAlertText() string {
	text, _ := p.text(authAlert)
	return text
}

// WaitForAlert blocks until the alert container shows substr.
func (p *AuthPage) WaitForAlert(substr string, timeout time.Duration) error {
	return p.s.WaitForText(p.sel(authAlert), substr, timeout)
}

// AuthVerification aggregates the page-loaded checks for the auth screen.
type AuthVerification struct {
	IsOnCorrectURL bool
	FormVisible    bool
	EmailVisible   bool
	SubmitVisible  bool
	RegisterMode   bool
}

func (p *AuthPage) VerifyAuthPageLoaded() AuthVerification {
	return AuthVerification{
		IsOnCorrectURL: p.IsOnAuthPage(),
		FormVisible:    p.visible(authFormTitle),
		EmailVisible:   p.visible(authEmailInput),
		SubmitVisible:  p.visible(authSubmitButton),
		RegisterMode:   p.IsRegisterMode(),
	}
}
