package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arrognz/babycheck/internal/data/store"
	"github.com/Arrognz/babycheck/internal/tracker"
	"github.com/Arrognz/babycheck/internal/util"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "events.jsonl"))
	require.NoError(t, err)
	tr := tracker.New(s)
	t.Cleanup(func() { tr.Close() })
	return New(tr, false)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/api/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decode(t, w)["message"])
}

func TestAddAndSearch(t *testing.T) {
	srv := newTestServer(t)
	nowMs := util.GetTimeProvider().NowMs()

	w := doJSON(t, srv, http.MethodPost, "/api/add", map[string]any{
		"action":    "sleep",
		"timestamp": nowMs - 60_000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])

	w = doJSON(t, srv, http.MethodPost, "/api/search", map[string]any{
		"start": nowMs - 120_000,
		"stop":  nowMs,
	})
	require.Equal(t, http.StatusOK, w.Code)
	events := decode(t, w)["events"].([]any)
	require.Len(t, events, 1)
	first := events[0].(map[string]any)
	assert.Equal(t, "sleep", first["name"])
	assert.NotEmpty(t, first["id"])
}

func TestAddRejectsUnknownAction(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodPost, "/api/add", map[string]any{"action": "bottle"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewBufferString("{oops"))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEmptyLogReturnsEmptyArray(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodPost, "/api/search", map[string]any{"start": 0, "stop": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"events":[]`)
}

func TestRemote(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodPost, "/api/remote/pee", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "pee", body["action"])
	assert.Equal(t, true, body["ok"])

	w = doJSON(t, srv, http.MethodPost, "/api/remote/nonsense", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)
	nowMs := util.GetTimeProvider().NowMs()

	doJSON(t, srv, http.MethodPost, "/api/add", map[string]any{"action": "sleep", "timestamp": nowMs - 40*60_000})
	doJSON(t, srv, http.MethodPost, "/api/add", map[string]any{"action": "wake", "timestamp": nowMs - 10*60_000})

	w := doJSON(t, srv, http.MethodPost, "/api/stats", map[string]any{"period": "hour"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.InDelta(t, 30*60_000, body["sleep_time"].(float64), 2000)
	assert.EqualValues(t, 1, body["sleep_count"])

	w = doJSON(t, srv, http.MethodPost, "/api/stats", map[string]any{"period": "fortnight"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestState(t *testing.T) {
	srv := newTestServer(t)
	nowMs := util.GetTimeProvider().NowMs()

	w := doJSON(t, srv, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unknown", decode(t, w)["state"])

	doJSON(t, srv, http.MethodPost, "/api/add", map[string]any{"action": "sleep", "timestamp": nowMs - 60_000})

	w = doJSON(t, srv, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "asleep", decode(t, w)["state"])
}

func TestDay(t *testing.T) {
	srv := newTestServer(t)
	dayKey := util.GetTimeProvider().Now().Format("2006-01-02")

	w := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/day/%s", dayKey), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dayKey, decode(t, w)["day"])

	w = doJSON(t, srv, http.MethodGet, "/api/day/not-a-day", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAndUpdate(t *testing.T) {
	srv := newTestServer(t)
	nowMs := util.GetTimeProvider().NowMs()
	ts := nowMs - 60_000

	doJSON(t, srv, http.MethodPost, "/api/add", map[string]any{"action": "pee", "timestamp": ts})

	w := doJSON(t, srv, http.MethodPut, "/api/event/update", map[string]any{
		"timestamp": ts,
		"action":    "poop",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["updated"])

	w = doJSON(t, srv, http.MethodDelete, "/api/event", map[string]any{"timestamp": ts})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["deleted"])
	assert.Equal(t, true, body["ok"])

	// Second delete finds nothing.
	w = doJSON(t, srv, http.MethodDelete, "/api/event", map[string]any{"timestamp": ts})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["ok"])
}
