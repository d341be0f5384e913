package harness

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrail/jobtrail-e2e/internal/common"
)

func seedConfigFor(backendURL string) *common.Config {
	cfg := common.NewDefaultConfig()
	cfg.Target.BackendURL = backendURL
	return cfg
}

func TestSeedTestUserRegistersNewUser(t *testing.T) {
	var got seedRegisterPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	cfg := seedConfigFor(srv.URL)
	require.NoError(t, SeedTestUser(cfg))
	assert.Equal(t, cfg.Seed.Email, got.Email)
	assert.Equal(t, cfg.Seed.Name, got.Name)
}

func TestSeedTestUserToleratesExistingUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	assert.NoError(t, SeedTestUser(seedConfigFor(srv.URL)))
}

func TestSeedTestUserToleratesAlreadyExistsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"user already exists"}`))
	}))
	defer srv.Close()

	assert.NoError(t, SeedTestUser(seedConfigFor(srv.URL)))
}

func TestSeedTestUserReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Error(t, SeedTestUser(seedConfigFor(srv.URL)))
}

func TestProbeOnce(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer up.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	client := &http.Client{Timeout: time.Second}
	assert.True(t, probeOnce(client, up.URL))
	assert.False(t, probeOnce(client, down.URL))
	assert.False(t, probeOnce(client, "http://127.0.0.1:1/nope"))
}
