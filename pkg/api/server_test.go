package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()
	server, _ := setupTestServer(t)
	reg := prometheus.NewRegistry()
	server.metrics = NewMetrics(reg)
	server.ingester.Metrics = server.metrics

	ts := httptest.NewServer(NewRouter(server, reg))
	t.Cleanup(ts.Close)
	return ts, server
}

func TestRouter_Routes(t *testing.T) {
	ts, server := newTestHTTPServer(t)
	hash := seed(t, server, "NA1-1.rofl", sampleReplay("a", "b"))

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/v1/health", http.StatusOK},
		{"GET", "/api/v1/matches", http.StatusOK},
		{"GET", "/api/v1/matches/" + hash, http.StatusOK},
		{"GET", "/api/v1/matches/" + hash + "/download", http.StatusOK},
		{"GET", "/api/v1/matches/missing", http.StatusNotFound},
		{"GET", "/api/v1/leaderboard", http.StatusOK},
		{"GET", "/api/v1/players/a", http.StatusOK},
		{"GET", "/api/v1/players/nobody", http.StatusNotFound},
		{"GET", "/api/v1/stats", http.StatusOK},
		{"GET", "/api/v1/unknown", http.StatusNotFound},
		{"GET", "/swagger/index.html", http.StatusOK},
		{"GET", "/swagger/swagger.json", http.StatusOK},
		{"GET", "/swagger/nothing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRouter_UploadAndDelete(t *testing.T) {
	ts, _ := newTestHTTPServer(t)

	body, contentType := multipartUpload(t, "NA1-55.rofl", sampleReplay("x", "y"), "2024-07-04")
	resp, err := http.Post(ts.URL+"/api/v1/matches", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Success bool         `json:"success"`
		Data    MatchSummary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "NA1_55", envelope.Data.MatchID)
	require.NotEmpty(t, envelope.Data.Hash)

	req, err := http.NewRequest("DELETE", ts.URL+"/api/v1/matches/"+envelope.Data.Hash, nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer del.Body.Close()
	assert.Equal(t, http.StatusOK, del.StatusCode)
}

func TestRouter_Metrics(t *testing.T) {
	ts, _ := newTestHTTPServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/decode", "application/octet-stream", bytes.NewReader(sampleReplay("a", "b")))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(out), `riftvault_http_requests_total{endpoint="/api/v1/decode",method="POST",status_code="200"} 1`)
	assert.Contains(t, string(out), `riftvault_replay_decodes_total{outcome="ok",version="v2"} 1`)
}

func TestRouter_CORS(t *testing.T) {
	ts, _ := newTestHTTPServer(t)

	req, err := http.NewRequest("OPTIONS", ts.URL+"/api/v1/matches", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStartServer_StopsOnCancel(t *testing.T) {
	server, _ := setupTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartServer(ctx, server.store, ServerConfig{Bind: "127.0.0.1", Port: 0}, server.logger)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServerConfig(t *testing.T) {
	server, _ := setupTestServer(t)
	assert.Equal(t, int64(1<<20), server.config.MaxUploadBytes)

	defaulted := NewServer(server.store, ServerConfig{}, nil, nil)
	assert.Equal(t, int64(64<<20), defaulted.config.MaxUploadBytes)
	assert.NotNil(t, defaulted.logger)
}
