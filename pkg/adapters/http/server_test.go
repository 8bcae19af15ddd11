package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const busyBeaverBody = `{
	"id": "bb2",
	"rules": [
		{"read": "0", "state": "a", "do": "1Rb"},
		{"read": "1", "state": "a", "do": "1Lb"},
		{"read": "0", "state": "b", "do": "1La"},
		{"read": "1", "state": "b", "do": "1RH"}
	]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewHandler(session.NewManager(memory.NewStore()), WithMaxSteps(100)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestServer_SessionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/sessions", busyBeaverBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created SessionResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "bb2", created.ID)
	assert.Equal(t, domain.Initial, created.State)
	assert.Equal(t, 1, created.Frames)

	resp, body = do(t, http.MethodPost, srv.URL+"/sessions/bb2/step", `{"steps": 4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var stepped StepResponse
	require.NoError(t, json.Unmarshal(body, &stepped))
	assert.Equal(t, domain.OutcomeCompleted, stepped.Outcome)
	assert.Equal(t, 4, stepped.Steps)
	assert.Empty(t, stepped.Error)

	resp, body = do(t, http.MethodPost, srv.URL+"/sessions/bb2/step", `{"steps": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &stepped))
	assert.Equal(t, domain.OutcomeHalted, stepped.Outcome)
	assert.Equal(t, 2, stepped.Steps)
	assert.Equal(t, 10, stepped.Requested)
	assert.Contains(t, stepped.Error, "halted")
	assert.True(t, stepped.Session.Halted)
	assert.Equal(t, 6, stepped.Session.Steps)
	assert.Equal(t, 7, stepped.Session.Frames)

	resp, body = do(t, http.MethodGet, srv.URL+"/sessions/bb2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, stepped.Session, got)

	resp, body = do(t, http.MethodGet, srv.URL+"/sessions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"sessions": ["bb2"]}`, string(body))

	resp, _ = do(t, http.MethodDelete, srv.URL+"/sessions/bb2", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/sessions/bb2", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "session not found")
}

func TestServer_StepDefaultsToOne(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/sessions", busyBeaverBody)

	resp, body := do(t, http.MethodPost, srv.URL+"/sessions/bb2/step", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var stepped StepResponse
	require.NoError(t, json.Unmarshal(body, &stepped))
	assert.Equal(t, 1, stepped.Steps)
	assert.Equal(t, 1, stepped.Session.Position)
}

func TestServer_HistoryAndRules(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/sessions", busyBeaverBody)
	do(t, http.MethodPost, srv.URL+"/sessions/bb2/step", `{"steps": 2}`)

	resp, body := do(t, http.MethodGet, srv.URL+"/sessions/bb2/history", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var frames map[string][]domain.Frame
	require.NoError(t, json.Unmarshal(body, &frames))
	require.Len(t, frames["frames"], 3)
	assert.Equal(t, domain.One, frames["frames"][1].Get(0))

	resp, body = do(t, http.MethodGet, srv.URL+"/sessions/bb2/history?format=text", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "tape_2:")

	resp, body = do(t, http.MethodGet, srv.URL+"/sessions/bb2/rules?format=text", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "#  a   b   H\n0 1Rb 1La\n1 1Lb 1RH\n", string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/sessions/bb2/rules?format=mermaid", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "graph LR")

	resp, body = do(t, http.MethodGet, srv.URL+"/sessions/bb2/rules", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rules struct {
		Rules  []domain.Entry `json:"rules"`
		States int            `json:"states"`
	}
	require.NoError(t, json.Unmarshal(body, &rules))
	assert.Len(t, rules.Rules, 4)
	assert.Equal(t, 2, rules.States)
}

func TestServer_CreateErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"empty", `{}`, http.StatusBadRequest},
		{"both", `{"rules": [{"read": "0", "state": "a", "do": "1RH"}], "random": {"states": 3}}`, http.StatusBadRequest},
		{"bad rule", `{"rules": [{"read": "7", "state": "a", "do": "1RH"}]}`, http.StatusBadRequest},
		{"too few random states", `{"random": {"states": 1}}`, http.StatusBadRequest},
		{"too many random states", `{"random": {"states": 2000000000}}`, http.StatusBadRequest},
		{"random", `{"id": "rnd", "random": {"states": 4, "seed": 3}}`, http.StatusCreated},
		{"duplicate", `{"id": "rnd", "random": {"states": 4}}`, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/sessions", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(body))
		})
	}
}

func TestServer_StepErrors(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/sessions", busyBeaverBody)

	resp, _ := do(t, http.MethodPost, srv.URL+"/sessions/missing/step", `{"steps": 1}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/sessions/bb2/step", `{"steps": 101}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/sessions/bb2/step", `nope`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_HealthAndInfo(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ok"}`, string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/info", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"app":"turing-http"`)

	resp, _ = do(t, http.MethodOptions, srv.URL+"/sessions", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_SubscribeEvents(t *testing.T) {
	server := NewServer(session.NewManager(memory.NewStore()))
	srv := httptest.NewServer(server.Routes())
	defer srv.Close()

	do(t, http.MethodPost, srv.URL+"/sessions", busyBeaverBody)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/bb2/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readData := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}
	assert.Equal(t, "connected", readData())

	require.Eventually(t, func() bool { return server.Streams.Subscribers("bb2") == 1 }, time.Second, 10*time.Millisecond)
	do(t, http.MethodPost, srv.URL+"/sessions/bb2/step", `{"steps": 3}`)

	var event StepResponse
	require.NoError(t, json.Unmarshal([]byte(readData()), &event))
	assert.Equal(t, 3, event.Steps)
	assert.Equal(t, "bb2", event.Session.ID)
	require.NotNil(t, event.Diff)
	require.NotNil(t, event.Diff.Steps)
	assert.Equal(t, 3, *event.Diff.Steps)
	assert.Equal(t, 3, event.Diff.Frames)
}

func TestServer_SubscribeEvents_UnknownSession(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := do(t, http.MethodGet, srv.URL+"/sessions/ghost/events", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamManager_UnsubscribeTwice(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s")
	sm.Broadcast("s", "hello")
	assert.Equal(t, "hello", <-ch)

	cancel()
	assert.NotPanics(t, cancel)
	assert.Equal(t, 0, sm.Subscribers("s"))
}
