package api

import "github.com/iudanet/terminplaner/internal/models"

// EventRequest представляет тело запроса на создание или обновление события.
// Поле userId намеренно отсутствует: владелец берется только из токена.
type EventRequest struct {
	Title       string `json:"title"`       // заголовок события
	Description string `json:"description"` // описание, опционально
	Date        string `json:"date"`        // дата в формате ISO-8601
	Location    string `json:"location"`    // место, опционально
	Category    string `json:"category"`    // категория, опционально
}

// EventResponse представляет ответ с одним событием
type EventResponse struct {
	Message string       `json:"message"` // сообщение об успешной операции
	Event   models.Event `json:"event"`   // событие
}

// MessageResponse представляет ответ только с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
