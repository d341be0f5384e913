package browser

import (
	"fmt"
	"sort"
)

// Field is a symbolic name for one element a page object interacts with.
type Field string

// Locator is an ordered list of candidate selectors for a field. Candidates
// are tried in sequence and the first one present in the DOM wins, which
// keeps the fallback behavior auditable instead of hidden behind an
// engine-level comma join. Markup drift in the target app usually breaks
// only the primary selector, so most fields carry a structural fallback.
type Locator []string

// Primary returns the first candidate, the selector used in waits and
// failure messages when no candidate is present yet.
func (l Locator) Primary() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// LocatorMap is an immutable mapping from field name to locator, one per
// page object. Construction validates every entry so a missing or empty
// selector fails fast instead of producing a silent empty query at action
// time. The map is never mutated after construction.
type LocatorMap struct {
	page   string
	fields map[Field]Locator
}

// NewLocatorMap builds a validated locator map for the named page object.
func NewLocatorMap(page string, fields map[Field]Locator) (*LocatorMap, error) {
	if page == "" {
		return nil, fmt.Errorf("locator map requires a page name")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("locator map for %s has no fields", page)
	}
	for field, loc := range fields {
		if field == "" {
			return nil, fmt.Errorf("locator map for %s has an unnamed field", page)
		}
		if len(loc) == 0 {
			return nil, fmt.Errorf("locator map for %s: field %q has no selectors", page, field)
		}
		for i, sel := range loc {
			if sel == "" {
				return nil, fmt.Errorf("locator map for %s: field %q has an empty selector at %d", page, field, i)
			}
		}
	}

	copied := make(map[Field]Locator, len(fields))
	for field, loc := range fields {
		dup := make(Locator, len(loc))
		copy(dup, loc)
		copied[field] = dup
	}
	return &LocatorMap{page: page, fields: copied}, nil
}

// MustLocatorMap is NewLocatorMap that panics on validation failure. Page
// object locator maps are package-level constants in spirit; a bad one is a
// programming error caught by the package tests.
func MustLocatorMap(page string, fields map[Field]Locator) *LocatorMap {
	m, err := NewLocatorMap(page, fields)
	if err != nil {
		panic(err)
	}
	return m
}

// Get returns the locator for field, panicking on a dangling reference.
func (m *LocatorMap) Get(field Field) Locator {
	loc, ok := m.fields[field]
	if !ok {
		panic(fmt.Sprintf("locator map for %s: no field %q", m.page, field))
	}
	return loc
}

// Has reports whether field is present.
func (m *LocatorMap) Has(field Field) bool {
	_, ok := m.fields[field]
	return ok
}

// Page returns the owning page object name.
func (m *LocatorMap) Page() string {
	return m.page
}

// Fields returns the sorted field names, for completeness checks in tests.
func (m *LocatorMap) Fields() []Field {
	out := make([]Field, 0, len(m.fields))
	for f := range m.fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve returns the first candidate selector of loc with at least one
// match in the current DOM. When none matches yet it returns the primary
// candidate and false; callers pass that to a wait so the eventual timeout
// names the intended selector.
func (s *Session) Resolve(loc Locator) (string, bool) {
	for _, sel := range loc {
		if s.Count(sel) > 0 {
			return sel, true
		}
	}
	return loc.Primary(), false
}
