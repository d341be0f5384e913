package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "http://localhost:3000", config.Target.FrontendURL)
	assert.Equal(t, "/api/health", config.Target.HealthPath)
	assert.Equal(t, 5, config.Timeouts.ActionSeconds)
	assert.Equal(t, 10, config.Timeouts.NavigationSeconds)
	assert.Equal(t, 0, config.Retry.Count)
	assert.True(t, config.Browser.Headless)
	require.Len(t, config.Browser.Profiles, 1)
	assert.Equal(t, "desktop-chrome", config.Browser.Profiles[0].Name)

	require.NoError(t, config.Validate())
}

func TestLoadFromFilesOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "e2e.toml")
	content := `
environment = "ci"

[target]
frontend_url = "http://frontend:3000"
backend_url = "http://backend:5100"

[retry]
count = 2
workers = 4

[[browser.profiles]]
name = "desktop-chrome"
width = 1920
height = 1080

[[browser.profiles]]
name = "mobile-chrome"
width = 390
height = 844
mobile = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "ci", config.Environment)
	assert.Equal(t, "http://frontend:3000", config.Target.FrontendURL)
	assert.Equal(t, 2, config.Retry.Count)
	assert.Equal(t, 4, config.Retry.Workers)
	require.Len(t, config.Browser.Profiles, 2)
	assert.True(t, config.Browser.Profiles[1].Mobile)

	// Defaults survive for sections the file does not mention
	assert.Equal(t, 5, config.Timeouts.ActionSeconds)
	assert.Equal(t, "on-failure", config.Output.Screenshots)
}

func TestLoadFromFilesEnvOverride(t *testing.T) {
	t.Setenv("JOBTRAIL_E2E_FRONTEND_URL", "http://staging:3000")
	t.Setenv("JOBTRAIL_E2E_RETRY_COUNT", "3")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "http://staging:3000", config.Target.FrontendURL)
	assert.Equal(t, 3, config.Retry.Count)
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles("does-not-exist.toml")
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	config := NewDefaultConfig()
	config.Target.FrontendURL = "not a url"
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Output.Screenshots = "sometimes"
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Timeouts.ActionSeconds = 0
	assert.Error(t, config.Validate())

	config = NewDefaultConfig()
	config.Browser.Profiles = nil
	assert.Error(t, config.Validate())
}

func TestBaseURLTrimsSlash(t *testing.T) {
	config := NewDefaultConfig()
	config.Target.FrontendURL = "http://localhost:3000/"
	assert.Equal(t, "http://localhost:3000", config.BaseURL())
}
