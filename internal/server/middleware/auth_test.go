package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/terminplaner/internal/server/handlers"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func testJWTConfig() handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:   []byte("test-secret-key"),
		TokenTTL: 15 * time.Minute,
	}
}

// identityHandler is a handler that checks context values
func identityHandler(t *testing.T, expectedUserID, expectedUsername string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := handlers.GetUserID(r.Context())
		require.True(t, ok, "user_id should be in context")
		assert.Equal(t, expectedUserID, userID)

		username, ok := handlers.GetUsername(r.Context())
		require.True(t, ok, "username should be in context")
		assert.Equal(t, expectedUsername, username)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// rejectHandler fails the test when called
func rejectHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	jwtConfig := testJWTConfig()

	token, _, err := handlers.GenerateToken(jwtConfig, "user123", "testuser")
	require.NoError(t, err)

	wrapped := AuthMiddleware(setupTestLogger(), jwtConfig)(identityHandler(t, "user123", "testuser"))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	wrapped := AuthMiddleware(setupTestLogger(), testJWTConfig())(rejectHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), msgNoToken)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "token-without-prefix"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"only scheme", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := AuthMiddleware(setupTestLogger(), testJWTConfig())(rejectHandler(t))

			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			req.Header.Set("Authorization", tt.header)

			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtConfig := testJWTConfig()

	expiredConfig := jwtConfig
	expiredConfig.TokenTTL = -1 * time.Minute
	token, _, err := handlers.GenerateToken(expiredConfig, "user123", "testuser")
	require.NoError(t, err)

	wrapped := AuthMiddleware(setupTestLogger(), jwtConfig)(rejectHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	// Статус тот же 401, отличается только сообщение
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), msgTokenExpired)
}

func TestAuthMiddleware_ForeignSecret(t *testing.T) {
	foreignConfig := handlers.JWTConfig{
		Secret:   []byte("some-other-secret"),
		TokenTTL: 15 * time.Minute,
	}
	token, _, err := handlers.GenerateToken(foreignConfig, "user123", "testuser")
	require.NoError(t, err)

	wrapped := AuthMiddleware(setupTestLogger(), testJWTConfig())(rejectHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), msgTokenInvalid)
}
