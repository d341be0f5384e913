package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jobtrail/jobtrail-e2e/internal/common"
	"github.com/jobtrail/jobtrail-e2e/internal/harness"
)

type TestSuite struct {
	Name string
	Path string
	Run  string // go test -run filter, empty runs the whole package
}

type TestResult struct {
	Suite    string        `json:"suite"`
	Success  bool          `json:"success"`
	Attempts int           `json:"attempts"`
	Duration time.Duration `json:"duration_ns"`
	Output   string        `json:"-"`
}

type RunnerConfig struct {
	TestRunner struct {
		TestsDir  string   `toml:"tests_dir"`
		OutputDir string   `toml:"output_dir"`
		Suites    []string `toml:"suites"` // scenario suites by name prefix, empty means all
	} `toml:"test_runner"`
	TestServer struct {
		Port int `toml:"port"`
	} `toml:"test_server"`
	SetupConfig string `toml:"setup_config"` // path to the suite setup TOML
}

// loadRunnerConfig reads jobtrail-test-runner.toml from next to the
// executable, falling back to the working directory, then defaults.
func loadRunnerConfig() (*RunnerConfig, error) {
	var config RunnerConfig

	candidates := []string{"jobtrail-test-runner.toml"}
	if exePath, err := os.Executable(); err == nil {
		candidates = append([]string{filepath.Join(filepath.Dir(exePath), "jobtrail-test-runner.toml")}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		break
	}

	if config.TestRunner.TestsDir == "" {
		config.TestRunner.TestsDir = "./test"
	}
	if config.TestRunner.OutputDir == "" {
		config.TestRunner.OutputDir = "./test/results"
	}
	if config.TestServer.Port == 0 {
		config.TestServer.Port = 3333
	}
	if config.SetupConfig == "" {
		config.SetupConfig = "./test/config/setup.toml"
	}

	return &config, nil
}

// allSuites returns the scenario suites, one go test -run slice per feature
// area so a failure is retried in isolation.
func allSuites(uiPath string) []TestSuite {
	names := []struct{ name, filter string }{
		{"auth", "TestAuth"},
		{"dashboard", "TestDashboard"},
		{"navigation", "TestNavigation"},
		{"jobs", "TestJobs"},
		{"add-job", "TestAddJob"},
		{"activities", "TestActivities"},
		{"timeline", "TestTimeline"},
		{"security", "TestSecurity"},
	}
	suites := make([]TestSuite, 0, len(names))
	for _, n := range names {
		suites = append(suites, TestSuite{Name: n.name, Path: uiPath, Run: n.filter})
	}
	return suites
}

func main() {
	common.PrintBanner(common.GetVersion())

	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Printf("ERROR: Failed to load runner configuration: %v\n", err)
		os.Exit(1)
	}

	var setupPaths []string
	if _, err := os.Stat(runnerCfg.SetupConfig); err == nil {
		setupPaths = append(setupPaths, runnerCfg.SetupConfig)
	}
	cfg, err := common.LoadFromFiles(setupPaths...)
	if err != nil {
		fmt.Printf("ERROR: Failed to load suite configuration: %v\n", err)
		os.Exit(1)
	}

	log := common.InitLogger(cfg)
	log.Info().
		Str("frontend", cfg.Target.FrontendURL).
		Str("backend", cfg.Target.BackendURL).
		Int("retries", cfg.Retry.Count).
		Msg("Test runner starting")

	fmt.Printf("Configuration:\n")
	fmt.Printf("  Tests Directory:  %s\n", runnerCfg.TestRunner.TestsDir)
	fmt.Printf("  Output Directory: %s\n", runnerCfg.TestRunner.OutputDir)
	fmt.Printf("  Frontend:         %s\n", cfg.Target.FrontendURL)
	fmt.Printf("  Backend:          %s\n\n", cfg.Target.BackendURL)

	// Step 0: local test server proves browser automation works before any
	// scenario blames the target application.
	fmt.Printf("STEP 0: Starting browser validation server (port %d)...\n", runnerCfg.TestServer.Port)
	fmt.Println(strings.Repeat("-", 80))
	testServer := StartTestServer(runnerCfg.TestServer.Port)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		testServer.Shutdown(ctx)
		fmt.Println("Validation server stopped")
	}()

	testServerURL := fmt.Sprintf("http://localhost:%d", runnerCfg.TestServer.Port)
	if err := waitForURL(testServerURL+"/status", 5*time.Second); err != nil {
		fmt.Printf("ERROR: Validation server did not become ready: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Validation server ready on %s\n\n", testServerURL)

	// Step 1: gate on the deployed application.
	fmt.Println("STEP 1: Checking target application...")
	fmt.Println(strings.Repeat("-", 80))

	frontend := cfg.BaseURL() + "/"
	backend := strings.TrimRight(cfg.Target.BackendURL, "/") + cfg.Target.HealthPath
	startupTimeout := time.Duration(cfg.Target.StartupTimeoutSeconds) * time.Second

	if err := waitForURL(frontend, startupTimeout); err != nil {
		fmt.Printf("ERROR: Frontend not reachable: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Frontend reachable: %s\n", frontend)
	if err := waitForURL(backend, startupTimeout); err != nil {
		fmt.Printf("ERROR: Backend not reachable: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Backend reachable: %s\n\n", backend)

	// Step 2: seed the baseline user once for the whole run.
	fmt.Println("STEP 2: Seeding baseline test user...")
	fmt.Println(strings.Repeat("-", 80))
	if err := harness.SeedTestUser(cfg); err != nil {
		fmt.Printf("WARNING: Seed user setup failed: %v\n", err)
		fmt.Println("Login scenarios may fail; continuing...")
	} else {
		fmt.Printf("Seed user ready: %s\n", cfg.Seed.Email)
	}
	fmt.Println()

	// Step 3: run the scenario suites.
	fmt.Println("STEP 3: Running scenario suites...")
	fmt.Println(strings.Repeat("-", 80))

	uiPath := filepath.ToSlash(filepath.Join(runnerCfg.TestRunner.TestsDir, "ui"))
	suites := selectSuites(allSuites(uiPath), runnerCfg.TestRunner.Suites)

	runStamp := time.Now().Format("2006-01-02_15-04-05")
	runDir := filepath.Join(runnerCfg.TestRunner.OutputDir, "run-"+runStamp)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		fmt.Printf("ERROR: Failed to create results directory: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results: %s/{suite}/\n\n", runDir)

	results := make([]TestResult, 0, len(suites))
	allPassed := true

	for _, suite := range suites {
		fmt.Printf("Running suite %q...\n", suite.Name)
		fmt.Println(strings.Repeat("-", 80))

		result := runSuiteWithRetries(suite, runDir, cfg.Retry.Count)
		results = append(results, result)

		if result.Success {
			fmt.Printf("PASS %s (%.2fs, attempt %d)\n\n",
				suite.Name, result.Duration.Seconds(), result.Attempts)
		} else {
			fmt.Printf("FAIL %s (%.2fs, %d attempts)\n\n",
				suite.Name, result.Duration.Seconds(), result.Attempts)
			allPassed = false
		}
	}

	writeSummaryJSON(filepath.Join(runDir, "summary.json"), results)
	printSummary(results, allPassed)

	if !allPassed {
		os.Exit(1)
	}
}

// selectSuites filters the full suite list down to the configured names.
func selectSuites(suites []TestSuite, names []string) []TestSuite {
	if len(names) == 0 {
		return suites
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = true
	}
	var out []TestSuite
	for _, s := range suites {
		if wanted[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

// runSuiteWithRetries runs one suite and re-runs it up to retries times on
// failure. The retry is blanket: the whole suite process runs again.
func runSuiteWithRetries(suite TestSuite, runDir string, retries int) TestResult {
	start := time.Now()

	var output string
	success := false
	attempts := 0

	for attempt := 0; attempt <= retries; attempt++ {
		attempts++
		if attempt > 0 {
			fmt.Printf("Retrying %s (attempt %d of %d)...\n", suite.Name, attempt+1, retries+1)
		}

		suiteDir := filepath.Join(runDir, suite.Name)
		if attempt > 0 {
			suiteDir = filepath.Join(runDir, fmt.Sprintf("%s-retry%d", suite.Name, attempt))
		}
		if err := os.MkdirAll(suiteDir, 0755); err != nil {
			fmt.Printf("ERROR: Failed to create suite directory: %v\n", err)
		}
		absSuiteDir, err := filepath.Abs(suiteDir)
		if err != nil {
			absSuiteDir = suiteDir
		}

		args := []string{"test", "-v", "-count=1"}
		if suite.Run != "" {
			args = append(args, "-run", suite.Run)
		}
		args = append(args, "./"+suite.Path)

		cmd := exec.Command("go", args...)
		cmd.Env = append(os.Environ(),
			"TEST_RESULTS_DIR="+absSuiteDir,
		)

		raw, runErr := cmd.CombinedOutput()
		output = string(raw)
		os.WriteFile(filepath.Join(suiteDir, "test.log"), raw, 0644)

		if runErr == nil {
			success = true
			break
		}
	}

	return TestResult{
		Suite:    suite.Name,
		Success:  success,
		Attempts: attempts,
		Duration: time.Since(start),
		Output:   output,
	}
}

// waitForURL polls url until it answers with a non-5xx status.
func waitForURL(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 2 * time.Second}

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 500 {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("%s did not become ready within %v", url, timeout)
}

func writeSummaryJSON(path string, results []TestResult) {
	type summary struct {
		Timestamp string       `json:"timestamp"`
		Passed    int          `json:"passed"`
		Failed    int          `json:"failed"`
		Results   []TestResult `json:"results"`
	}
	s := summary{Timestamp: time.Now().Format(time.RFC3339), Results: results}
	for _, r := range results {
		if r.Success {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(path, data, 0644)
}

func printSummary(results []TestResult, allPassed bool) {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("TEST SUMMARY")
	fmt.Println(strings.Repeat("=", 80))

	totalDuration := time.Duration(0)
	passed := 0
	failed := 0

	for _, result := range results {
		status := "PASS"
		if !result.Success {
			status = "FAIL"
			failed++
		} else {
			passed++
		}
		fmt.Printf("%-30s %s (%.2fs, %d attempts)\n",
			result.Suite, status, result.Duration.Seconds(), result.Attempts)
		totalDuration += result.Duration
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Total: %d passed, %d failed (%.2fs)\n", passed, failed, totalDuration.Seconds())

	if allPassed {
		fmt.Println("\nALL SUITES PASSED")
	} else {
		fmt.Println("\nSOME SUITES FAILED")
	}
}
