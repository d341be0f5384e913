package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jobtrail/jobtrail-e2e/internal/common"
)

// seedRegisterPayload is the backend's register request shape.
type seedRegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedTestUser registers the configured baseline user against the backend.
// An already-registered user is success: the seed is idempotent across runs.
func SeedTestUser(cfg *common.Config) error {
	url := strings.TrimRight(cfg.Target.BackendURL, "/") + cfg.Seed.RegisterPath

	payload := seedRegisterPayload{
		Name:     cfg.Seed.Name,
		Email:    cfg.Seed.Email,
		Password: cfg.Seed.Password,
	}
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal seed payload: %w", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonBytes))
	if err != nil {
		return fmt.Errorf("seed register request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	// Backends without a 409 still reject duplicates with a message.
	if resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(string(body)), "exist") {
		return nil
	}
	return fmt.Errorf("seed register returned status %d: %s", resp.StatusCode, string(body))
}

// SeedCredentials returns the baseline user's login credentials.
func SeedCredentials(cfg *common.Config) (email, password string) {
	return cfg.Seed.Email, cfg.Seed.Password
}
