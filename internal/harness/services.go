package harness

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// WaitForServices polls the frontend root and the backend health endpoint
// until both respond, or fails after the configured startup timeout. Tests
// against a cold deployment block here instead of failing on first navigate.
func (env *TestEnvironment) WaitForServices() error {
	timeout := time.Duration(env.Config.Target.StartupTimeoutSeconds) * time.Second
	interval := time.Duration(env.Config.Target.PollIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	frontend := env.Config.BaseURL() + "/"
	backend := strings.TrimRight(env.Config.Target.BackendURL, "/") + env.Config.Target.HealthPath

	targets := []struct {
		name string
		url  string
	}{
		{"frontend", frontend},
		{"backend", backend},
	}

	client := &http.Client{Timeout: 2 * time.Second}

	for _, target := range targets {
		fmt.Fprintf(env.TestLog, "Waiting for %s at %s (timeout: %v)...\n",
			target.name, target.url, timeout)

		deadline := time.Now().Add(timeout)
		attempts := 0
		ready := false
		for time.Now().Before(deadline) {
			attempts++
			if probeOnce(client, target.url) {
				ready = true
				break
			}
			time.Sleep(interval)
		}
		if !ready {
			fmt.Fprintf(env.TestLog, "%s did not respond within %v (%d attempts)\n",
				target.name, timeout, attempts)
			return fmt.Errorf("%s at %s did not respond within %v", target.name, target.url, timeout)
		}
		fmt.Fprintf(env.TestLog, "%s ready (%d attempts)\n", target.name, attempts)
	}

	return nil
}

// probeOnce reports whether url answered with a non-5xx status. Auth
// redirects and 404s still prove the service is up.
func probeOnce(client *http.Client, url string) bool {
	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
