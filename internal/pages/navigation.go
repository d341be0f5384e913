package pages

import (
	"strings"
	"time"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// Navigation field names.
const (
	navBar          browser.Field = "navbar"
	navLinks        browser.Field = "navLinks"
	navActiveLink   browser.Field = "activeLink"
	navLogoutButton browser.Field = "logoutButton"
	navUserButton   browser.Field = "userButton"
	navMobileToggle browser.Field = "mobileToggle"
	navMobileMenu   browser.Field = "mobileMenu"
	navBrand        browser.Field = "brand"
)

var navigationLocators = browser.MustLocatorMap("navigation", map[browser.Field]browser.Locator{
	navBar:          {`nav`, `.navbar`},
	navLinks:        {`.nav-link`, `nav a`},
	navActiveLink:   {`.nav-link.active`, `nav a[aria-current="page"]`},
	navLogoutButton: {`.logout-btn`, `.dropdown button`},
	navUserButton:   {`.btn-container > button`, `.user-btn`},
	navMobileToggle: {`.toggle-btn`, `.nav-toggle`},
	navMobileMenu:   {`.show-sidebar`, `.mobile-menu`},
	navBrand:        {`.logo`, `nav .brand`},
})

// NavigationPage drives the shared navbar/sidebar chrome present on every
// authenticated screen.
type NavigationPage struct {
	pageBase
}

func NewNavigationPage(s *browser.Session, baseURL string) *NavigationPage {
	return &NavigationPage{pageBase: newPageBase(s, baseURL, navigationLocators)}
}

// IsNavbarVisible reports whether the navigation chrome rendered at all.
func (p *NavigationPage) IsNavbarVisible() bool {
	return p.visible(navBar)
}

// NavLinkCount returns the number of rendered navigation links.
func (p *NavigationPage) NavLinkCount() int {
	return p.count(navLinks)
}

// ClickNavLink clicks the navigation link whose text contains label and
// waits for the location to change to route.
func (p *NavigationPage) ClickNavLink(label, route string) error {
	sel, _ := p.s.Resolve(p.loc.Get(navLinks))
	if err := p.s.ClickByText(sel, label); err != nil {
		return err
	}
	return p.s.WaitForURL(route, 0)
}

// ActiveLinkText returns the text of the currently highlighted link.
func (p *NavigationPage) ActiveLinkText() string {
	text, _ := p.text(navActiveLink)
	return strings.TrimSpace(text)
}

// Logout opens the user dropdown and clicks logout, then waits for the
// redirect to the landing route.
func (p *NavigationPage) Logout() error {
	if p.visible(navUserButton) {
		if err := p.click(navUserButton); err != nil {
			return err
		}
		if err := p.waitFor(navLogoutButton, 2*time.Second); err != nil {
			return err
		}
	}
	if err := p.click(navLogoutButton); err != nil {
		return err
	}
	return p.s.WaitForURL(RouteLanding, 0)
}

// OpenMobileMenu taps the hamburger toggle and waits for the menu.
func (p *NavigationPage) OpenMobileMenu() error {
	if err := p.click(navMobileToggle); err != nil {
		return err
	}
	return p.waitFor(navMobileMenu, 0)
}

// IsMobileMenuVisible reports whether the expanded mobile menu is shown.
func (p *NavigationPage) IsMobileMenuVisible() bool {
	return p.visible(navMobileMenu)
}

// IsMobileToggleVisible reports whether the hamburger control rendered,
// which only happens below the responsive breakpoint.
func (p *NavigationPage) IsMobileToggleVisible() bool {
	return p.visible(navMobileToggle)
}

// NavigationVerification aggregates the chrome checks shared by screens.
type NavigationVerification struct {
	NavbarVisible bool
	BrandVisible  bool
	LinkCount     int
	LogoutPresent bool
}

func (p *NavigationPage) VerifyNavigationLoaded() NavigationVerification {
	return NavigationVerification{
		NavbarVisible: p.IsNavbarVisible(),
		BrandVisible:  p.visible(navBrand),
		LinkCount:     p.NavLinkCount(),
		LogoutPresent: p.visible(navUserButton) || p.visible(navLogoutButton),
	}
}
