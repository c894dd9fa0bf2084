package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/terminplaner/internal/auth"
	"github.com/iudanet/terminplaner/internal/models"
	"github.com/iudanet/terminplaner/internal/server/storage"
	"github.com/iudanet/terminplaner/internal/validation"
	"github.com/iudanet/terminplaner/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	hasher      *auth.BcryptHasher
	jwtConfig   JWTConfig
	development bool
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, hasher *auth.BcryptHasher, jwtConfig JWTConfig, development bool) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		hasher:      hasher,
		jwtConfig:   jwtConfig,
		development: development,
	}
}

// Register обрабатывает POST /api/auth/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация собирает ВСЕ нарушенные правила, не только первое
	if violations := validation.ValidateRegistration(req.Username, req.Email, req.Password, req.ProfileName); len(violations) > 0 {
		h.logger.WarnContext(ctx, "register validation failed", slog.Int("violations", len(violations)))
		sendValidationError(h.logger, w, violations)
		return
	}

	// Предварительная проверка занятости username ради понятного 409.
	// Гонку check-then-insert закрывает само хранилище: уникальность
	// проверяется еще раз внутри транзакции вставки.
	if _, err := h.userStorage.GetUserByUsername(ctx, req.Username); err == nil {
		h.logger.WarnContext(ctx, "username already taken", slog.String("username", req.Username))
		sendError(h.logger, w, msgUsernameTaken, http.StatusConflict)
		return
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		h.logger.ErrorContext(ctx, "failed to check username", slog.Any("error", err))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	// Хешируем пароль. Открытый пароль дальше этой точки не живет
	// и никогда не логируется.
	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		ProfileName:  req.ProfileName,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			// Проигранная гонка регистрации: тот же 409, что и пре-чек
			h.logger.WarnContext(ctx, "username taken during insert", slog.String("username", req.Username))
			sendError(h.logger, w, msgUsernameTaken, http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	resp := api.RegisterResponse{
		Message: "Registrierung erfolgreich.",
		User:    user.Sanitized(),
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
// Аутентификация пользователя и выдача bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if violations := validation.ValidateLogin(req.Username, req.Password); len(violations) > 0 {
		sendValidationError(h.logger, w, violations)
		return
	}

	// Ищем пользователя. Ответ про несуществующий username и про
	// неверный пароль обязан быть неразличимым.
	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Фиктивная проверка выравнивает время ответа с веткой
			// неверного пароля.
			h.hasher.DummyCheck(req.Password)
			h.logger.WarnContext(ctx, "login failed", slog.String("username", req.Username))
			sendError(h.logger, w, msgBadCredentials, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	if !h.hasher.Check(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed", slog.String("username", req.Username))
		sendError(h.logger, w, msgBadCredentials, http.StatusUnauthorized)
		return
	}

	token, _, err := GenerateToken(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	resp := api.LoginResponse{
		Message: "Login erfolgreich.",
		Token:   token,
		User:    user.Sanitized(),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
