package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bonial-oss/monitor-registry/pkg/config"
	"github.com/bonial-oss/monitor-registry/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMonitor() *models.Monitor {
	return &models.Monitor{
		ID:        "mon-1",
		Name:      "API",
		URL:       "https://api.example.com",
		Cadence:   "0 * * * *",
		Contact:   "a@b.com",
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.HTTPAPIConfig{
		Endpoint:  server.URL + "/monitors",
		AuthToken: "sekrit",
	})
	require.NoError(t, err)

	client.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(config.HTTPAPIConfig{})
	require.Error(t, err)

	_, err = NewClient(config.HTTPAPIConfig{Endpoint: "not-a-url"})
	require.Error(t, err)
}

func TestClient_Create(t *testing.T) {
	var received envelope

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/monitors", r.URL.Path)
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
	})

	monitor := testMonitor()

	require.NoError(t, client.Create(context.Background(), monitor))

	assert.Equal(t, actionCreate, received.Action)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), received.Timestamp)
	require.NotNil(t, received.Data)
	assert.Equal(t, monitor.ID, received.Data.ID)
	assert.Equal(t, monitor.Name, received.Data.Name)
	assert.Equal(t, monitor.URL, received.Data.URL)
	assert.Equal(t, monitor.Cadence, received.Data.Cadence)
	assert.Equal(t, monitor.Contact, received.Data.Contact)
}

func TestClient_CreateRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := client.Create(context.Background(), testMonitor())
	require.Error(t, err)
}

func TestClient_Delete(t *testing.T) {
	var received envelope

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/monitors/mon-1", r.URL.Path)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Delete(context.Background(), "mon-1"))

	assert.Equal(t, actionDelete, received.Action)
	assert.Equal(t, "mon-1", received.MonitorID)
	assert.Nil(t, received.Data)
}

func TestClient_DeleteUnknownIDIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such monitor", http.StatusNotFound)
	})

	require.NoError(t, client.Delete(context.Background(), "gone"))
}

func TestClient_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)

		json.NewEncoder(w).Encode([]record{
			{ID: "1", Name: "API", URL: "https://api.example.com", Cadence: "0 * * * *", Contact: "a@b.com"},
			{ID: "2", Name: "Web", URL: "https://example.com", Cadence: "*/5 * * * *", Contact: "a@b.com"},
		})
	})

	monitors, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, monitors, 2)
	assert.Equal(t, "API", monitors[0].Name)
	assert.Equal(t, "2", monitors[1].ID)
}

func TestClient_ListFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.List(context.Background())
	require.Error(t, err)
}
