package casino

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_StopSession(t *testing.T) {
	var gotPath, gotKey, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotRequestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	err := client.StopSession(context.Background(), 12345)
	require.NoError(t, err)

	assert.Equal(t, "/sessions/12345/stop", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_SessionStats(t *testing.T) {
	started := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/99/stats", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(SessionStats{
			UserID:        99,
			Game:          "blackjack",
			StartedAt:     started,
			HandsPlayed:   42,
			AmountWagered: 10000,
			NetResult:     -1500,
			Active:        true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	stats, err := client.SessionStats(context.Background(), 99)
	require.NoError(t, err)

	assert.Equal(t, int64(99), stats.UserID)
	assert.Equal(t, "blackjack", stats.Game)
	assert.Equal(t, 42, stats.HandsPlayed)
	assert.True(t, stats.Active)
	assert.True(t, stats.StartedAt.Equal(started))
}

func TestClient_EmergencyCleanup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/emergency-cleanup", r.URL.Path)
		json.NewEncoder(w).Encode(CleanupResult{SessionsStopped: 7, SessionsReleased: 3})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	result, err := client.EmergencyCleanup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, result.SessionsStopped)
	assert.Equal(t, 3, result.SessionsReleased)
}

func TestClient_Overview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sessions/overview", r.URL.Path)
		json.NewEncoder(w).Encode(Overview{ActiveSessions: 4, TotalWagered: 120000, NetHouseResult: -3500})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	overview, err := client.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, overview.ActiveSessions)
	assert.Equal(t, int64(120000), overview.TotalWagered)
	assert.Equal(t, int64(-3500), overview.NetHouseResult)
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL, "secret")
		err := client.ReleaseSession(context.Background(), 1)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(server.URL, "wrong")
		err := client.StopSession(context.Background(), 1)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("forbidden", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient(server.URL, "revoked")
		err := client.StopSession(context.Background(), 1)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("server error with message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "session engine offline"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "secret")
		err := client.StopSession(context.Background(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session engine offline")
	})
}
