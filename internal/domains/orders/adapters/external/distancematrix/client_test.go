package distancematrix

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "")
	require.Error(t, err)
}

func TestDrivingDistance_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/json", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "Dakar, Sénégal", query.Get("origins"))
		require.Equal(t, "Thiès, Sénégal", query.Get("destinations"))
		require.Equal(t, "test-key", query.Get("key"))
		require.Equal(t, "fr", query.Get("language"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "OK", "distance": {"value": 12000}}]}]
		}`))
	})

	meters, err := client.DrivingDistance(context.Background(), "Dakar, Sénégal", "Thiès, Sénégal")
	require.NoError(t, err)
	require.Equal(t, 12000.0, meters)
}

func TestDrivingDistance_ElementNotOK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]
		}`))
	})

	_, err := client.DrivingDistance(context.Background(), "Dakar", "Atlantide")
	require.ErrorIs(t, err, ports.ErrNoRoute)
}

func TestDrivingDistance_TopLevelNotOK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "rows": []}`))
	})

	_, err := client.DrivingDistance(context.Background(), "Dakar", "Thiès")
	require.ErrorIs(t, err, ports.ErrNoRoute)
}

func TestDrivingDistance_EmptyRows(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "rows": []}`))
	})

	_, err := client.DrivingDistance(context.Background(), "Dakar", "Thiès")
	require.ErrorIs(t, err, ports.ErrNoRoute)
}

func TestDrivingDistance_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.DrivingDistance(context.Background(), "Dakar", "Thiès")
	require.Error(t, err)
	require.NotErrorIs(t, err, ports.ErrNoRoute)
}
