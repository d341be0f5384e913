package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tests share one backing store with no locking; uniqueness of seeded data is
// the collision policy. Every generated identity carries a timestamp plus a
// short uuid fragment so parallel suites started in the same millisecond
// still diverge.

// NewTestEmail generates a unique email for a single test case.
// Format: <prefix>-<unix-ms>-<uuid8>@e2e.jobtrail.dev
func NewTestEmail(prefix string) string {
	if prefix == "" {
		prefix = "user"
	}
	return fmt.Sprintf("%s-%d-%s@e2e.jobtrail.dev",
		sanitizeIdentity(prefix), time.Now().UnixMilli(), shortUUID())
}

// NewCompanyName generates a uniquely suffixed company name so listing
// assertions match only the rows this test created.
func NewCompanyName(base string) string {
	if base == "" {
		base = "Acme"
	}
	return fmt.Sprintf("%s %s", base, strings.ToUpper(shortUUID()))
}

// NewRunID generates a unique identifier for one suite run.
func NewRunID() string {
	return "run_" + uuid.New().String()
}

func shortUUID() string {
	return uuid.New().String()[:8]
}

func sanitizeIdentity(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		case r == ' ' || r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
}
