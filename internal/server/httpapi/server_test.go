package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/auth"
	"github.com/dmitrijs2005/fileledger/internal/server/clock"
	"github.com/dmitrijs2005/fileledger/internal/server/config"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"github.com/dmitrijs2005/fileledger/internal/server/repositories/kv"
	"github.com/dmitrijs2005/fileledger/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	host := kv.NewMemoryHost()
	cfg := &config.Config{RetentionMinTTL: time.Hour, RetentionTargetTTL: 2 * time.Hour}
	rewards := services.NewRewardService(host, logging.Nop{})
	files := services.NewFileSyncService(host, auth.ContextAuthenticator{}, clock.NewManual(50), cfg, logging.Nop{})

	ctx := context.Background()
	require.NoError(t, rewards.Mint(ctx, "u1", models.NewPoints(25)))

	alice := auth.WithIdentity(ctx, "alice")
	id, err := files.UploadFile(alice, "alice", "a.txt", "hash", 10, true)
	require.NoError(t, err)
	_, err = files.ShareFile(alice, "alice", id, "bob", 0)
	require.NoError(t, err)

	return NewServer(":0", logging.Nop{}, rewards, files)
}

func get(t *testing.T, s *Server, path string) (int, map[string]any) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		want   map[string]any
	}{
		{"health", "/health", http.StatusOK, map[string]any{"status": "ok"}},
		{"stats", "/api/v1/stats", http.StatusOK, map[string]any{
			"total_files": 1.0, "total_shares": 1.0, "total_downloads": 0.0, "active_users": 1.0,
		}},
		{"file", "/api/v1/files/1", http.StatusOK, map[string]any{
			"file_id": 1.0, "owner": "alice", "file_name": "a.txt", "file_hash": "hash",
			"file_size": 10.0, "upload_time": 50.0, "is_public": true, "download_count": 0.0,
		}},
		{"missing file", "/api/v1/files/9", http.StatusNotFound, map[string]any{"error": "file not found"}},
		{"bad file id", "/api/v1/files/abc", http.StatusBadRequest, map[string]any{"error": "invalid id"}},
		{"share", "/api/v1/shares/1", http.StatusOK, map[string]any{
			"permission_id": 1.0, "file_id": 1.0, "owner": "alice", "shared_with": "bob",
			"can_download": true, "expiry_time": 0.0, "granted_time": 50.0,
		}},
		{"missing share", "/api/v1/shares/0", http.StatusNotFound, map[string]any{"error": "permission not found"}},
		{"count", "/api/v1/users/alice/files/count", http.StatusOK, map[string]any{"owner": "alice", "count": 1.0}},
		{"balance", "/api/v1/rewards/u1", http.StatusOK, map[string]any{"user": "u1", "points": "25"}},
		{"unknown balance", "/api/v1/rewards/nobody", http.StatusOK, map[string]any{"user": "nobody", "points": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, s, tt.path)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestRetention(t *testing.T) {
	s := newTestServer(t)

	status, body := get(t, s, "/api/v1/retention")
	require.Equal(t, http.StatusOK, status)

	deadline, err := time.Parse(time.RFC3339, body["deadline"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), deadline, time.Minute)
}

func TestRetention_NotSet(t *testing.T) {
	s := NewServer(":0", logging.Nop{}, services.NewRewardService(kv.NewMemoryHost(), logging.Nop{}),
		services.NewFileSyncService(kv.NewMemoryHost(), auth.ContextAuthenticator{}, clock.System{}, &config.Config{}, logging.Nop{}))

	status, body := get(t, s, "/api/v1/retention")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"deadline": nil}, body)
}

type brokenFiles struct{ fileReader }

func (brokenFiles) GetSyncStats(context.Context) (models.SyncStats, error) {
	return models.SyncStats{}, errors.New("store unavailable")
}

func TestInternalError(t *testing.T) {
	s := NewServer(":0", logging.Nop{}, nil, brokenFiles{})

	status, body := get(t, s, "/api/v1/stats")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, map[string]any{"error": "internal error"}, body)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := NewServer("127.0.0.1:0", logging.Nop{}, nil, brokenFiles{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(7 * time.Second):
		t.Fatal("HTTP server did not stop")
	}
}
