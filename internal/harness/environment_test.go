package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSuiteName(t *testing.T) {
	cases := []struct {
		testName string
		expected string
	}{
		{"TestAuthRegisterNewUser", "auth"},
		{"TestJobsSearchRoundTrip", "jobs"},
		{"TestAddJobFormRoundTrip", "add"},
		{"TestNavigationLinks", "navigation"},
		{"TestTimelinePreview", "timeline"},
		{"TestDashboard", "dashboard"},
		{"NoPrefix", "noprefix"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, extractSuiteName(tc.testName), "for %s", tc.testName)
	}
}

func TestGetOrCreateSuiteDirectoryReusesPerSuite(t *testing.T) {
	base := t.TempDir()

	first, err := getOrCreateSuiteDirectory("authreuse", base)
	require.NoError(t, err)
	second, err := getOrCreateSuiteDirectory("authreuse", base)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(filepath.Base(first), "authreuse-"))

	other, err := getOrCreateSuiteDirectory("jobsreuse", base)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestLoadSuiteConfigReadsSearchPaths(t *testing.T) {
	dir := t.TempDir()
	content := `
[target]
frontend_url = "http://seed-target:3000"
backend_url = "http://seed-target:5100"

[seed]
email = "suite-seed@example.com"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.toml"), []byte(content), 0644))

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(oldWD)

	cfg, err := LoadSuiteConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://seed-target:5100", cfg.Target.BackendURL)
	assert.Equal(t, "suite-seed@example.com", cfg.Seed.Email)
	// Untouched sections keep their defaults.
	assert.NotZero(t, cfg.Timeouts.TestSeconds)
}

func TestLoadSuiteConfigDefaultsWithoutFiles(t *testing.T) {
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(oldWD)

	cfg, err := LoadSuiteConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Target.FrontendURL)
	assert.NotEmpty(t, cfg.Seed.Email)
}
