// -----------------------------------------------------------------------
// Shared scenario harness
// Owns per-test result directories, the test execution log, and readiness
// gating against the deployed application under test. The application is
// external: the harness never builds or starts it.
// -----------------------------------------------------------------------

package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jobtrail/jobtrail-e2e/internal/common"
)

// suiteDirectories maps a suite name (e.g. "auth" from "TestAuthRegister")
// to its timestamped parent directory, so every test in one suite shares it.
var (
	suiteDirectories      = make(map[string]string)
	suiteDirectoriesMutex sync.Mutex
)

// TestEnvironment is one scenario's slice of the harness: its config, its
// results directory, and its execution log.
type TestEnvironment struct {
	Config     *common.Config
	ResultsDir string
	TestLog    *os.File

	testName string
	started  time.Time
	failed   bool
}

// extractSuiteName derives the suite name from a test name, matching the
// scenario file naming convention.
// Example: "TestAuthRegisterNewUser" -> "auth" (from auth_test.go)
//          "TestJobsSearchRoundTrip" -> "jobs" (from jobs_test.go)
func extractSuiteName(testName string) string {
	remainder := strings.TrimPrefix(testName, "Test")

	var capitals []int
	for i := 0; i < len(remainder); i++ {
		if remainder[i] >= 'A' && remainder[i] <= 'Z' {
			capitals = append(capitals, i)
		}
	}

	// Take everything up to the second capital: "AuthRegister" -> "auth".
	if len(capitals) >= 2 {
		return strings.ToLower(remainder[:capitals[1]])
	}
	return strings.ToLower(remainder)
}

// getOrCreateSuiteDirectory returns the shared parent directory for a suite,
// creating it on first use with a run timestamp.
func getOrCreateSuiteDirectory(suiteName, baseDir string) (string, error) {
	suiteDirectoriesMutex.Lock()
	defer suiteDirectoriesMutex.Unlock()

	if existing, ok := suiteDirectories[suiteName]; ok {
		return existing, nil
	}

	timestamp := time.Now().Format("20060102-150405")
	suiteDir := filepath.Join(baseDir, fmt.Sprintf("%s-%s", suiteName, timestamp))
	if err := os.MkdirAll(suiteDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create suite directory: %w", err)
	}

	suiteDirectories[suiteName] = suiteDir
	return suiteDir, nil
}

// configSearchPaths are tried in order; the runner overrides the base results
// dir and target URLs through the environment, so missing files are fine.
func configSearchPaths() []string {
	return []string{
		"../config/setup.toml",
		"../../test/config/setup.toml",
		"setup.toml",
	}
}

// LoadSuiteConfig loads the setup config from whichever search paths exist,
// falling back to built-in defaults when none do. Everything that needs the
// suite config inside a go test process (environment setup, TestMain seeding)
// goes through this so they all read the same files.
func LoadSuiteConfig() (*common.Config, error) {
	var present []string
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			present = append(present, p)
		}
	}
	return common.LoadFromFiles(present...)
}

// SetupTestEnvironment loads config, creates the per-test results directory
// under the suite's shared parent, opens test.log, and gates on the target
// application being reachable.
func SetupTestEnvironment(testName string) (*TestEnvironment, error) {
	config, err := LoadSuiteConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load test config: %w", err)
	}

	resultsBase := config.Output.ResultsBaseDir
	if dir := os.Getenv("TEST_RESULTS_DIR"); dir != "" {
		resultsBase = dir
	}

	suiteName := extractSuiteName(testName)
	suiteDir, err := getOrCreateSuiteDirectory(suiteName, resultsBase)
	if err != nil {
		return nil, err
	}

	resultsDir := filepath.Join(suiteDir, testName)
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create test directory: %w", err)
	}

	testLog, err := os.Create(filepath.Join(resultsDir, "test.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to create test log file: %w", err)
	}

	env := &TestEnvironment{
		Config:     config,
		ResultsDir: resultsDir,
		TestLog:    testLog,
		testName:   testName,
		started:    time.Now(),
	}

	fmt.Fprintf(testLog, "=== %s ===\n", testName)
	fmt.Fprintf(testLog, "Frontend: %s\n", config.Target.FrontendURL)
	fmt.Fprintf(testLog, "Backend:  %s\n", config.Target.BackendURL)
	fmt.Fprintf(testLog, "Started:  %s\n\n", env.started.Format(time.RFC3339))

	if err := env.WaitForServices(); err != nil {
		testLog.Close()
		return nil, fmt.Errorf("target application not ready: %w", err)
	}

	return env, nil
}

// BaseURL returns the frontend base URL scenarios navigate against.
func (env *TestEnvironment) BaseURL() string {
	return env.Config.BaseURL()
}

// GetResultsDir returns the per-test results directory.
func (env *TestEnvironment) GetResultsDir() string {
	return env.ResultsDir
}

// LogTest writes a timestamped message to test.log and the go test output.
func (env *TestEnvironment) LogTest(t *testing.T, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if env.TestLog != nil {
		fmt.Fprintf(env.TestLog, "[%s] %s\n", time.Now().Format("15:04:05"), msg)
	}
	t.Log(msg)
}

// MarkFailed records a scenario failure so the cleanup trailer reflects it.
func (env *TestEnvironment) MarkFailed() {
	env.failed = true
}

// Cleanup writes the PASS/FAIL trailer and closes the test log. Register it
// with t.Cleanup immediately after setup.
func (env *TestEnvironment) Cleanup(t *testing.T) {
	if env.TestLog == nil {
		return
	}

	outcome := "PASS"
	if env.failed || (t != nil && t.Failed()) {
		outcome = "FAIL"
	}
	fmt.Fprintf(env.TestLog, "\n=== TEST COMPLETED: %s (%.1fs) ===\n",
		outcome, time.Since(env.started).Seconds())
	env.TestLog.Close()
	env.TestLog = nil
}
