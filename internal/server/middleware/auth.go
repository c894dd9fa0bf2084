package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/terminplaner/internal/server/handlers"
	"github.com/iudanet/terminplaner/pkg/api"
)

// Сообщения для 401 ответов. Истекший и невалидный токен различаются
// только текстом, статус всегда 401.
const (
	msgNoToken      = "Kein Authentifizierungs-Token vorhanden."
	msgTokenExpired = "Token ist abgelaufen. Bitte erneut einloggen."
	msgTokenInvalid = "Ungültiger Token."
)

// AuthMiddleware создает middleware для проверки JWT токена.
// При успехе кладет идентичность {id, username} в контекст запроса.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header")
				unauthorized(w, msgNoToken)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.Warn("invalid Authorization header format")
				unauthorized(w, msgNoToken)
				return
			}

			// Валидируем токен
			claims, err := handlers.ValidateToken(jwtConfig, parts[1])
			if err != nil {
				if errors.Is(err, handlers.ErrTokenExpired) {
					logger.Warn("expired access token")
					unauthorized(w, msgTokenExpired)
					return
				}
				logger.Warn("invalid access token", "error", err)
				unauthorized(w, msgTokenInvalid)
				return
			}

			// Добавляем данные из токена в контекст
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, claims.Username)

			logger.Debug("user authenticated", "user_id", claims.UserID, "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized пишет 401 в общем JSON формате ошибок
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   http.StatusText(http.StatusUnauthorized),
		Message: message,
	})
}
