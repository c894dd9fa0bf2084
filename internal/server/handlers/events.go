package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/terminplaner/internal/models"
	"github.com/iudanet/terminplaner/internal/server/storage"
	"github.com/iudanet/terminplaner/internal/validation"
	"github.com/iudanet/terminplaner/pkg/api"
)

// Пользовательские сообщения событий
const (
	msgEventNotFound  = "Event nicht gefunden."
	msgEventForbidden = "Keine Berechtigung für dieses Event."
	msgEventCreated   = "Event erfolgreich erstellt."
	msgEventUpdated   = "Event erfolgreich aktualisiert."
	msgEventDeleted   = "Event erfolgreich gelöscht."
)

// EventHandler обрабатывает CRUD запросы событий.
// Все методы требуют аутентификации: владелец берется из контекста,
// установленного auth middleware, и никогда из тела запроса.
type EventHandler struct {
	logger       *slog.Logger
	eventStorage storage.EventStorage
	development  bool
}

// NewEventHandler создает новый handler для событий
func NewEventHandler(logger *slog.Logger, eventStorage storage.EventStorage, development bool) *EventHandler {
	return &EventHandler{
		logger:       logger,
		eventStorage: eventStorage,
		development:  development,
	}
}

// List обрабатывает GET /api/events
// Возвращает только события аутентифицированного пользователя.
// Порядок не гарантируется: сортировка это забота клиента.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	events, err := h.eventStorage.ListEventsByUser(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list events", slog.Any("error", err), slog.String("user_id", userID))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	sendJSON(h.logger, w, events, http.StatusOK)
}

// Create обрабатывает POST /api/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode event request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	date, violations := validation.ValidateEvent(req.Title, req.Description, req.Date, req.Location, req.Category)
	if len(violations) > 0 {
		sendValidationError(h.logger, w, violations)
		return
	}

	now := time.Now().UTC()
	event := &models.Event{
		ID:          uuid.NewString(),
		UserID:      userID, // только из токена
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Category:    eventCategory(req.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.eventStorage.CreateEvent(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "failed to create event", slog.Any("error", err), slog.String("user_id", userID))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	h.logger.InfoContext(ctx, "event created",
		slog.String("event_id", event.ID),
		slog.String("user_id", userID))

	resp := api.EventResponse{
		Message: msgEventCreated,
		Event:   *event,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Update обрабатывает PUT /api/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	eventID := r.PathValue("id")

	var req api.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode event request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	date, violations := validation.ValidateEvent(req.Title, req.Description, req.Date, req.Location, req.Category)
	if len(violations) > 0 {
		sendValidationError(h.logger, w, violations)
		return
	}

	// Сначала существование (404), потом владение (403).
	// Обратный порядок отдал бы 403 на несуществующий id.
	if !h.authorizeEvent(w, r, eventID, userID) {
		return
	}

	fields := storage.EventFields{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		Category:    eventCategory(req.Category),
	}

	event, err := h.eventStorage.UpdateEvent(ctx, eventID, fields)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			// Событие удалили между проверкой и обновлением
			sendError(h.logger, w, msgEventNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update event", slog.Any("error", err), slog.String("event_id", eventID))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	h.logger.InfoContext(ctx, "event updated",
		slog.String("event_id", eventID),
		slog.String("user_id", userID))

	resp := api.EventResponse{
		Message: msgEventUpdated,
		Event:   *event,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Delete обрабатывает DELETE /api/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user id not found in context")
		sendError(h.logger, w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	eventID := r.PathValue("id")

	if !h.authorizeEvent(w, r, eventID, userID) {
		return
	}

	if err := h.eventStorage.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			sendError(h.logger, w, msgEventNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete event", slog.Any("error", err), slog.String("event_id", eventID))
		sendStorageError(h.logger, w, h.development, err)
		return
	}

	h.logger.InfoContext(ctx, "event deleted",
		slog.String("event_id", eventID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, api.MessageResponse{Message: msgEventDeleted}, http.StatusOK)
}

// authorizeEvent проверяет существование события и владение им.
// Пишет 404 или 403 и возвращает false, если запрос нужно оборвать.
func (h *EventHandler) authorizeEvent(w http.ResponseWriter, r *http.Request, eventID, userID string) bool {
	ctx := r.Context()

	event, err := h.eventStorage.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			sendError(h.logger, w, msgEventNotFound, http.StatusNotFound)
			return false
		}
		h.logger.ErrorContext(ctx, "failed to get event", slog.Any("error", err), slog.String("event_id", eventID))
		sendStorageError(h.logger, w, h.development, err)
		return false
	}

	if event.UserID != userID {
		h.logger.WarnContext(ctx, "event access denied",
			slog.String("event_id", eventID),
			slog.String("user_id", userID))
		sendError(h.logger, w, msgEventForbidden, http.StatusForbidden)
		return false
	}

	return true
}

// eventCategory возвращает категорию с дефолтом Sonstiges
func eventCategory(category string) models.Category {
	if category == "" {
		return models.CategorySonstiges
	}
	return models.Category(category)
}
