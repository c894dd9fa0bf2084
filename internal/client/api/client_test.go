package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/terminplaner/pkg/api"
)

func TestClient_Login_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "maxmuster", req.Username)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.LoginResponse{
			Message: "ok",
			Token:   "issued-token",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Login(context.Background(), api.LoginRequest{
		Username: "maxmuster",
		Password: "geheim123",
	})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", resp.Token)

	// Токен запомнен и уходит в последующих запросах
	assert.Equal(t, "issued-token", client.token)
}

func TestClient_ListEvents_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("stored-token")

	events, err := client.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClient_DecodesErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{
			Error:   "Bad Request",
			Message: "Validierungsfehler.",
			Errors:  []string{"Titel ist erforderlich."},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateEvent(context.Background(), api.EventRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validierungsfehler.", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "Titel ist erforderlich.")
}

func TestClient_NonJSONErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListEvents(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusGatewayTimeout, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "504")
}
