package models

import "time"

// Category представляет категорию события
type Category string

// Допустимые категории событий
const (
	CategoryPrivat    Category = "Privat"
	CategoryArbeit    Category = "Arbeit"
	CategoryFreizeit  Category = "Freizeit"
	CategorySonstiges Category = "Sonstiges"
)

// Valid проверяет, что категория входит в список допустимых
func (c Category) Valid() bool {
	switch c {
	case CategoryPrivat, CategoryArbeit, CategoryFreizeit, CategorySonstiges:
		return true
	}
	return false
}

// Event представляет событие в календаре пользователя
type Event struct {
	ID          string    `json:"id"`          // UUID события
	UserID      string    `json:"userId"`      // ID владельца, неизменяем после создания
	Title       string    `json:"title"`       // заголовок, 1-100 символов
	Description string    `json:"description"` // описание, до 500 символов
	Date        time.Time `json:"date"`        // дата и время события
	Location    string    `json:"location"`    // место, до 200 символов
	Category    Category  `json:"category"`    // категория, по умолчанию Sonstiges
	CreatedAt   time.Time `json:"createdAt"`   // время создания
	UpdatedAt   time.Time `json:"updatedAt"`   // время последнего обновления
}
