package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the suite configuration. The target application is
// external: the suite only needs to know where it runs, how long to wait for
// it, and where to put results.
type Config struct {
	Environment string         `toml:"environment"` // "development" or "ci" - controls retry/worker defaults
	Target      TargetConfig   `toml:"target"`
	Browser     BrowserConfig  `toml:"browser"`
	Timeouts    TimeoutConfig  `toml:"timeouts"`
	Retry       RetryConfig    `toml:"retry"`
	Output      OutputConfig   `toml:"output"`
	Logging     LoggingConfig  `toml:"logging"`
	Seed        SeedUserConfig `toml:"seed"`
}

// TargetConfig locates the application under test.
type TargetConfig struct {
	FrontendURL           string `toml:"frontend_url" validate:"required,url"`
	BackendURL            string `toml:"backend_url" validate:"required,url"`
	HealthPath            string `toml:"health_path"`             // Backend health endpoint, polled during bootstrap
	StartupTimeoutSeconds int    `toml:"startup_timeout_seconds"` // Max wait for both services to answer
	PollIntervalMs        int    `toml:"poll_interval_ms"`        // Fixed interval between health probes
}

// BrowserConfig controls the Chrome instances the suite launches.
type BrowserConfig struct {
	Headless bool              `toml:"headless"`
	Profiles []ViewportProfile `toml:"profiles" validate:"min=1,dive"`
}

// ViewportProfile is one browser/device profile a suite run targets.
type ViewportProfile struct {
	Name   string `toml:"name" validate:"required"`
	Width  int    `toml:"width" validate:"gt=0"`
	Height int    `toml:"height" validate:"gt=0"`
	Mobile bool   `toml:"mobile"`
}

// TimeoutConfig carries the per-call-site wait budgets. Values are seconds;
// every blocking browser call derives its deadline from one of these.
type TimeoutConfig struct {
	ActionSeconds     int `toml:"action_seconds"`     // fill/click/select and WaitForElement default
	NavigationSeconds int `toml:"navigation_seconds"` // WaitForURL default
	AssertionSeconds  int `toml:"assertion_seconds"`  // verification bundles and settle waits
	TestSeconds       int `toml:"test_seconds"`       // whole-scenario budget
}

// RetryConfig controls blanket re-runs of failed suites by the runner.
type RetryConfig struct {
	Count   int `toml:"count"`   // re-runs per failed suite (0 = none)
	Workers int `toml:"workers"` // parallel suite processes
}

// OutputConfig controls where results and failure artifacts land.
type OutputConfig struct {
	ResultsBaseDir string `toml:"results_base_dir"`
	Screenshots    string `toml:"screenshots" validate:"oneof=off on-failure always"`
}

// LoggingConfig mirrors the arbor writer setup.
type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// SeedUserConfig is the baseline user the bootstrap guarantees exists.
type SeedUserConfig struct {
	Email        string `toml:"email" validate:"required,email"`
	Password     string `toml:"password" validate:"required,min=6"`
	Name         string `toml:"name"`
	RegisterPath string `toml:"register_path"`
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in the TOML file; everything here is
// a working local-development setup.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Target: TargetConfig{
			FrontendURL:           "http://localhost:3000",
			BackendURL:            "http://localhost:5100",
			HealthPath:            "/api/health",
			StartupTimeoutSeconds: 60,
			PollIntervalMs:        2000,
		},
		Browser: BrowserConfig{
			Headless: true,
			Profiles: []ViewportProfile{
				{Name: "desktop-chrome", Width: 1920, Height: 1080},
			},
		},
		Timeouts: TimeoutConfig{
			ActionSeconds:     5,
			NavigationSeconds: 10,
			AssertionSeconds:  10,
			TestSeconds:       90,
		},
		Retry: RetryConfig{
			Count:   0, // CI bumps this via JOBTRAIL_E2E_RETRY_COUNT
			Workers: 1,
		},
		Output: OutputConfig{
			ResultsBaseDir: "./test/results",
			Screenshots:    "on-failure",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Seed: SeedUserConfig{
			Email:        "test@example.com",
			Password:     "password123",
			Name:         "Test User",
			RegisterPath: "/api/auth/register",
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2
// -> ... -> env. Later files override earlier ones; env overrides everything.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// These are the knobs CI pipelines flip without editing the TOML.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("JOBTRAIL_E2E_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if url := os.Getenv("JOBTRAIL_E2E_FRONTEND_URL"); url != "" {
		config.Target.FrontendURL = url
	}
	if url := os.Getenv("JOBTRAIL_E2E_BACKEND_URL"); url != "" {
		config.Target.BackendURL = url
	}
	if retries := os.Getenv("JOBTRAIL_E2E_RETRY_COUNT"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil && n >= 0 {
			config.Retry.Count = n
		}
	}
	if workers := os.Getenv("JOBTRAIL_E2E_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			config.Retry.Workers = n
		}
	}
	if headless := os.Getenv("JOBTRAIL_E2E_HEADLESS"); headless != "" {
		config.Browser.Headless = headless != "false" && headless != "0"
	}
	if dir := os.Getenv("JOBTRAIL_E2E_RESULTS_DIR"); dir != "" {
		config.Output.ResultsBaseDir = dir
	}
	if level := os.Getenv("JOBTRAIL_E2E_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
}

// Validate checks the structural constraints on the configuration.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Timeouts.ActionSeconds <= 0 || c.Timeouts.NavigationSeconds <= 0 {
		return fmt.Errorf("invalid configuration: timeouts must be positive")
	}
	return nil
}

// IsCI reports whether the suite is running in a CI environment.
func (c *Config) IsCI() bool {
	return c.Environment == "ci" || os.Getenv("CI") != ""
}

// BaseURL returns the frontend URL with no trailing slash, the form every
// page object expects to prepend to a route.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.Target.FrontendURL, "/")
}
