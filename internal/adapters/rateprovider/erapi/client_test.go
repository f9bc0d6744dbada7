package erapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenapticlabs/expense-management-server/internal/adapters/rateprovider/erapi"
)

func TestFetchRates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"result": "success",
			"time_last_update_unix": 1767312000,
			"time_next_update_unix": 1767398400,
			"rates": {"USD": 1, "EUR": 0.90, "GBP": 0.79}
		}`))
	}))
	defer server.Close()

	client := erapi.NewClient(erapi.WithBaseURL(server.URL))

	snap, err := client.FetchRates(context.Background())

	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Rates, 3)
	assert.Equal(t, "0.9", snap.Rates["EUR"].String())
	assert.Equal(t, time.Unix(1767312000, 0).UTC(), snap.FetchedAt)
	assert.Equal(t, time.Unix(1767398400, 0).UTC(), snap.NextRefreshAt)
}

func TestFetchRates_NonSuccessResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "error", "error-type": "invalid-key"}`))
	}))
	defer server.Close()

	client := erapi.NewClient(erapi.WithBaseURL(server.URL))

	_, err := client.FetchRates(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `result "error"`)
}

func TestFetchRates_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := erapi.NewClient(erapi.WithBaseURL(server.URL))

	_, err := client.FetchRates(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestFetchRates_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := erapi.NewClient(erapi.WithBaseURL(server.URL))

	_, err := client.FetchRates(context.Background())

	require.Error(t, err)
}

func TestFetchRates_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := erapi.NewClient(erapi.WithBaseURL(server.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.FetchRates(ctx)

	require.Error(t, err)
}
