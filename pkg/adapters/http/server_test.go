package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.InputSource     = (*Server)(nil)
	_ ports.StatusPublisher = (*Server)(nil)
)

type stubStatus struct {
	snap    domain.Snapshot
	history []string
}

func (s stubStatus) Snapshot() domain.Snapshot { return s.snap }
func (s stubStatus) History() []string         { return s.history }

type stubScenes struct {
	scenes []domain.FlowConfig
	err    error
}

func (s stubScenes) Inspect() ([]domain.FlowConfig, error) { return s.scenes, s.err }

func newTestServer(opts ...Option) *Server {
	status := stubStatus{
		snap: domain.Snapshot{
			Scene:      "gallery",
			Activation: 2,
			State:      domain.FlowState{Phase: domain.PhaseWaiting, Elapsed: 3},
			Volume:     1,
		},
		history: []string{"intro", "gallery"},
	}
	scenes := stubScenes{scenes: []domain.FlowConfig{
		{Name: "gallery", RestartScene: "intro", DwellSeconds: 15},
		{Name: "intro", NextScene: "gallery", RestartScene: "intro", DwellSeconds: 5, IsEntryScene: true},
	}}
	return NewServer(status, scenes, opts...)
}

func TestGetHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetStatus(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "gallery", resp.Scene)
	assert.Equal(t, 2, resp.Activation)
	assert.Equal(t, domain.PhaseWaiting, resp.State.Phase)
	assert.Equal(t, []string{"intro", "gallery"}, resp.History)
}

func TestGetScenes(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scenes", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var scenes []domain.FlowConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scenes))
	assert.Len(t, scenes, 2)
}

func TestGetScenes_Error(t *testing.T) {
	s := NewServer(stubStatus{}, stubScenes{err: errors.New("disk gone")})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scenes", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "disk gone")
}

func TestPostInput(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/input/SKIP", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, s.IsSkipPressed())
	assert.False(t, s.IsSkipPressed(), "a press is seen once")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/input/jump", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/input/reset", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.False(t, s.IsResetPressed())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "sceneflow_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	w := httptest.NewRecorder()
	newTestServer(WithGatherer(reg)).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sceneflow_test_total 1")

	w = httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/input/skip", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	s := newTestServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return s.Streams.Len() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, s.Publish(ctx, domain.Snapshot{Scene: "intro", Activation: 1}))

	buf := make([]byte, 0, 512)
	chunk := make([]byte, 256)
	for !strings.Contains(string(buf), `"scene":"intro"`) {
		n, err := resp.Body.Read(chunk)
		require.NoError(t, err)
		buf = append(buf, chunk[:n]...)
	}
	assert.Contains(t, string(buf), "event: ping")
}

func TestStreamManager_UnsubscribeCloses(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe()
	assert.Equal(t, 1, sm.Len())

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, sm.Len())
	sm.Broadcast("ignored")
}
