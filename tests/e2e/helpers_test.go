//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/tuantran92/spelling-bee/internal/adapter/postgres"
	profilerepo "github.com/tuantran92/spelling-bee/internal/adapter/postgres/profile"
	"github.com/tuantran92/spelling-bee/internal/adapter/postgres/testhelper"
	vocabrepo "github.com/tuantran92/spelling-bee/internal/adapter/postgres/vocab"
	"github.com/tuantran92/spelling-bee/internal/config"
	"github.com/tuantran92/spelling-bee/internal/domain"
	"github.com/tuantran92/spelling-bee/internal/service/progress"
	"github.com/tuantran92/spelling-bee/internal/transport/rest"
)

const profileHeader = "X-Profile-Id"

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// testNotifier records achievement unlocks in the test log.
type testNotifier struct{ t *testing.T }

func (n testNotifier) AchievementUnlocked(_ context.Context, profileID uuid.UUID, id domain.AchievementID) {
	n.t.Logf("achievement unlocked: profile=%s id=%s", profileID, id)
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	profiles := profilerepo.New(pool, txm)
	vocab := vocabrepo.New(pool, txm)

	// 4. Engine. A fixed seed keeps shuffles reproducible across runs.
	engine, err := progress.NewService(
		logger,
		profiles,
		vocab,
		testNotifier{t},
		clockwork.NewRealClock(),
		rand.NewSource(1),
		progress.Config{
			Intervals:          domain.DefaultIntervals,
			SuggestionListSize: 5,
			DailyGoalWords:     20,
			DailyGoalMinutes:   10,
		},
	)
	require.NoError(t, err)

	// 5. Router with the production middleware chain.
	router := rest.NewRouter(
		logger,
		config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Content-Type," + profileHeader,
		},
		rest.NewHealthHandler(pool, "e2e-test"),
		rest.NewProgressHandler(engine, logger),
		rest.NewVocabHandler(vocab, engine, logger),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

// doJSON sends a request with the profile header set and decodes the JSON
// response body (if any) into a generic map. Returns the status code and body.
func doJSON(t *testing.T, ts *testServer, method, path string, profileID uuid.UUID, payload any) (int, map[string]any) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(profileHeader, profileID.String())

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		// Some endpoints return no body on errors; ignore decode failures there.
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp.StatusCode, decoded
}

// wordsFrom extracts the word texts from a {"words": [...]} response body.
func wordsFrom(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["words"].([]any)
	require.True(t, ok, "expected words array in response, got %v", body)

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		require.True(t, ok)
		word, ok := entry["word"].(string)
		require.True(t, ok)
		out = append(out, word)
	}
	return out
}
