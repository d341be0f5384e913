package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"

	"github.com/jobtrail/jobtrail-e2e/internal/common"
)

// TestDataSetup seeds the application under test with a baseline user and a
// small portfolio of jobs and activities for development and manual testing.
type TestDataSetup struct {
	baseURL string
	client  *http.Client
	logger  arbor.ILogger
	token   string
}

func NewTestDataSetup(baseURL string, logger arbor.ILogger) *TestDataSetup {
	return &TestDataSetup{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

func (t *TestDataSetup) postJSON(path string, payload interface{}) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, t.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.client.Do(req)
}

// SetupUser registers the seed user, tolerating an existing account, then
// logs in and keeps the session token for the data calls.
func (t *TestDataSetup) SetupUser(cfg *common.Config) error {
	registerBody := map[string]string{
		"name":     cfg.Seed.Name,
		"email":    cfg.Seed.Email,
		"password": cfg.Seed.Password,
	}

	resp, err := t.postJSON(cfg.Seed.RegisterPath, registerBody)
	if err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		t.logger.Info().Str("email", cfg.Seed.Email).Msg("Registered seed user")
	case resp.StatusCode == http.StatusConflict,
		strings.Contains(strings.ToLower(string(body)), "exist"):
		t.logger.Info().Str("email", cfg.Seed.Email).Msg("Seed user already exists")
	default:
		return fmt.Errorf("register returned status %d: %s", resp.StatusCode, string(body))
	}

	loginPath := strings.Replace(cfg.Seed.RegisterPath, "register", "login", 1)
	loginResp, err := t.postJSON(loginPath, map[string]string{
		"email":    cfg.Seed.Email,
		"password": cfg.Seed.Password,
	})
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode < 200 || loginResp.StatusCode >= 300 {
		body, _ := io.ReadAll(loginResp.Body)
		return fmt.Errorf("login returned status %d: %s", loginResp.StatusCode, string(body))
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&login); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	t.token = login.Token
	t.logger.Info().Msg("Logged in as seed user")
	return nil
}

// seedJob is one job in the baseline portfolio.
type seedJob struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	JobLocation string `json:"jobLocation"`
	JobType     string `json:"jobType"`
	Status      string `json:"status"`
}

// CreateJobs posts the baseline job portfolio.
func (t *TestDataSetup) CreateJobs() error {
	jobs := []seedJob{
		{"Frontend Developer", "SearchTest Corp", "Berlin", "full-time", "applied"},
		{"Backend Engineer", "Initech", "Remote", "full-time", "interview"},
		{"Data Analyst", "Globex", "London", "part-time", "pending"},
		{"DevOps Engineer", "Hooli", "Remote", "remote", "declined"},
	}

	for _, job := range jobs {
		resp, err := t.postJSON("/api/jobs", job)
		if err != nil {
			return fmt.Errorf("failed to create job %q: %w", job.Position, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("job %q creation failed with status %d: %s",
				job.Position, resp.StatusCode, string(body))
		}
		t.logger.Info().
			Str("position", job.Position).
			Str("company", job.Company).
			Str("status", job.Status).
			Msg("Created job")
	}
	return nil
}

// CreateActivities posts a few baseline activities.
func (t *TestDataSetup) CreateActivities() error {
	activities := []map[string]string{
		{"title": "Phone screen with Initech", "type": "interview", "date": time.Now().Format("2006-01-02")},
		{"title": "Sent follow-up to SearchTest Corp", "type": "follow-up", "date": time.Now().AddDate(0, 0, -1).Format("2006-01-02")},
		{"title": "Updated resume", "type": "note", "date": time.Now().AddDate(0, 0, -3).Format("2006-01-02")},
	}

	for _, activity := range activities {
		resp, err := t.postJSON("/api/activities", activity)
		if err != nil {
			return fmt.Errorf("failed to create activity %q: %w", activity["title"], err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("activity %q creation failed with status %d: %s",
				activity["title"], resp.StatusCode, string(body))
		}
		t.logger.Info().Str("title", activity["title"]).Msg("Created activity")
	}
	return nil
}

// SetupTestData runs the full seed.
func (t *TestDataSetup) SetupTestData(cfg *common.Config) error {
	t.logger.Info().Msg("Setting up test data...")
	t.logger.Info().Msg("====================================================")

	if err := t.SetupUser(cfg); err != nil {
		return fmt.Errorf("failed to setup seed user: %w", err)
	}
	if err := t.CreateJobs(); err != nil {
		return fmt.Errorf("failed to create jobs: %w", err)
	}
	if err := t.CreateActivities(); err != nil {
		return fmt.Errorf("failed to create activities: %w", err)
	}

	t.logger.Info().Msg("====================================================")
	t.logger.Info().Msg("Test data setup complete")
	t.logger.Info().Str("email", cfg.Seed.Email).Msg("Seed user")
	t.logger.Info().Str("frontend", cfg.Target.FrontendURL).Msg("Open the app")
	return nil
}

// CleanupTestData deletes every job and activity owned by the seed user.
func (t *TestDataSetup) CleanupTestData(cfg *common.Config) error {
	t.logger.Info().Msg("Cleaning up test data...")

	if err := t.SetupUser(cfg); err != nil {
		return fmt.Errorf("failed to login for cleanup: %w", err)
	}

	for _, resource := range []string{"jobs", "activities"} {
		req, _ := http.NewRequest(http.MethodGet, t.baseURL+"/api/"+resource, nil)
		if t.token != "" {
			req.Header.Set("Authorization", "Bearer "+t.token)
		}
		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", resource, err)
		}

		var items []map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			resp.Body.Close()
			return fmt.Errorf("failed to decode %s: %w", resource, err)
		}
		resp.Body.Close()

		for _, item := range items {
			id, _ := item["_id"].(string)
			if id == "" {
				id, _ = item["id"].(string)
			}
			if id == "" {
				continue
			}
			delReq, _ := http.NewRequest(http.MethodDelete, t.baseURL+"/api/"+resource+"/"+id, nil)
			if t.token != "" {
				delReq.Header.Set("Authorization", "Bearer "+t.token)
			}
			delResp, err := t.client.Do(delReq)
			if err != nil {
				t.logger.Warn().Err(err).Str("id", id).Msgf("Failed to delete %s entry", resource)
				continue
			}
			delResp.Body.Close()
			t.logger.Info().Str("id", id).Msgf("Deleted %s entry", resource)
		}
	}

	t.logger.Info().Msg("Cleanup complete")
	return nil
}

func main() {
	logger := arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		OutputType:       models.OutputFormatLogfmt,
		DisableTimestamp: false,
	})

	cfg, err := common.LoadFromFiles(configPathsFromArgs()...)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	cleanup := false
	for _, arg := range os.Args[1:] {
		if arg == "--cleanup" || arg == "-c" {
			cleanup = true
			break
		}
	}

	setup := NewTestDataSetup(cfg.Target.BackendURL, logger)

	if cleanup {
		if err := setup.CleanupTestData(cfg); err != nil {
			logger.Fatal().Err(err).Msg("Cleanup failed")
		}
		return
	}

	// Fail fast when the backend is down rather than half-seeding.
	resp, err := http.Get(strings.TrimRight(cfg.Target.BackendURL, "/") + cfg.Target.HealthPath)
	if err != nil {
		logger.Fatal().
			Str("backend_url", cfg.Target.BackendURL).
			Msg("Backend is not running - start the application first")
	}
	resp.Body.Close()

	if err := setup.SetupTestData(cfg); err != nil {
		logger.Fatal().Err(err).Msg("Setup failed")
	}
}

// configPathsFromArgs returns config file paths given with --config.
func configPathsFromArgs() []string {
	var paths []string
	args := os.Args[1:]
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			paths = append(paths, args[i+1])
		}
	}
	if len(paths) == 0 {
		if _, err := os.Stat("./test/config/setup.toml"); err == nil {
			paths = append(paths, "./test/config/setup.toml")
		}
	}
	return paths
}
