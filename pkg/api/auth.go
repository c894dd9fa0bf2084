package api

import "github.com/iudanet/terminplaner/internal/models"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username    string `json:"username"`    // username пользователя
	Email       string `json:"email"`       // email адрес
	Password    string `json:"password"`    // пароль в открытом виде, только в запросе
	ProfileName string `json:"profileName"` // отображаемое имя профиля
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	Message string            `json:"message"` // сообщение об успешной регистрации
	User    models.PublicUser `json:"user"`    // созданный пользователь без пароля
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде
}

// LoginResponse представляет ответ с токеном доступа
type LoginResponse struct {
	Message string            `json:"message"` // сообщение об успешном входе
	Token   string            `json:"token"`   // JWT bearer token
	User    models.PublicUser `json:"user"`    // пользователь без пароля
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string   `json:"error"`             // HTTP статус текст
	Message string   `json:"message"`           // описание ошибки
	Errors  []string `json:"errors,omitempty"`  // список нарушенных правил валидации
	Detail  string   `json:"detail,omitempty"`  // детали, только в development режиме
}
