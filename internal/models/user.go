package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`          // UUID пользователя
	Username     string    `json:"username"`    // уникальный username
	Email        string    `json:"email"`       // email адрес
	PasswordHash string    `json:"-"`           // bcrypt хеш пароля, наружу не сериализуется
	ProfileName  string    `json:"profileName"` // отображаемое имя профиля
	CreatedAt    time.Time `json:"createdAt"`   // время создания
}

// PublicUser представляет пользователя без чувствительных полей
type PublicUser struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	ProfileName string    `json:"profileName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Sanitized возвращает представление пользователя без хеша пароля.
// Хеш скрыт и тегом json:"-", но наружу отдаем отдельный тип,
// чтобы хеш не мог утечь при изменении тегов модели.
func (u *User) Sanitized() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		ProfileName: u.ProfileName,
		CreatedAt:   u.CreatedAt,
	}
}
