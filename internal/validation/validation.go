package validation

import (
	"net/mail"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/iudanet/terminplaner/internal/models"
)

// UsernamePattern определяет допустимый формат username
// Только латинские буквы (a-z, A-Z) и цифры (0-9)
// Длина: 3-30 символов
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,30}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 30
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
	// MaxProfileNameLen максимальная длина имени профиля
	MaxProfileNameLen = 50
	// MaxTitleLen максимальная длина заголовка события
	MaxTitleLen = 100
	// MaxDescriptionLen максимальная длина описания события
	MaxDescriptionLen = 500
	// MaxLocationLen максимальная длина места события
	MaxLocationLen = 200
)

// Сообщения валидации совпадают с пользовательским контрактом API
const (
	MsgUsernameLength    = "Benutzername muss zwischen 3 und 30 Zeichen lang sein."
	MsgUsernameCharset   = "Benutzername darf nur Buchstaben und Zahlen enthalten."
	MsgEmailInvalid      = "Bitte eine gültige E-Mail-Adresse eingeben."
	MsgPasswordTooShort  = "Passwort muss mindestens 6 Zeichen lang sein."
	MsgProfileName       = "Profilname ist erforderlich (max. 50 Zeichen)."
	MsgUsernameRequired  = "Benutzername ist erforderlich."
	MsgPasswordRequired  = "Passwort ist erforderlich."
	MsgTitleRequired     = "Titel ist erforderlich (max. 100 Zeichen)."
	MsgDescriptionLong   = "Beschreibung darf maximal 500 Zeichen lang sein."
	MsgDateRequired      = "Datum ist erforderlich."
	MsgDateInvalid       = "Ungültiges Datumsformat."
	MsgLocationTooLong   = "Ort darf maximal 200 Zeichen lang sein."
	MsgCategoryInvalid   = "Kategorie muss Privat, Arbeit, Freizeit oder Sonstiges sein."
)

// dateLayouts перечисляет принимаемые форматы даты события
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidateRegistration проверяет все поля запроса регистрации.
// Возвращает список ВСЕХ нарушенных правил, а не только первое.
func ValidateRegistration(username, email, password, profileName string) []string {
	var violations []string

	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		violations = append(violations, MsgUsernameLength)
	} else if !UsernamePattern.MatchString(username) {
		violations = append(violations, MsgUsernameCharset)
	}

	if !validEmail(email) {
		violations = append(violations, MsgEmailInvalid)
	}

	if len(password) < MinPasswordLen {
		violations = append(violations, MsgPasswordTooShort)
	}

	nameLen := utf8.RuneCountInString(profileName)
	if nameLen < 1 || nameLen > MaxProfileNameLen {
		violations = append(violations, MsgProfileName)
	}

	return violations
}

// ValidateLogin проверяет наличие обязательных полей запроса входа
func ValidateLogin(username, password string) []string {
	var violations []string

	if username == "" {
		violations = append(violations, MsgUsernameRequired)
	}
	if password == "" {
		violations = append(violations, MsgPasswordRequired)
	}

	return violations
}

// ValidateEvent проверяет поля события и возвращает список всех нарушений.
// Дата возвращается распарсенной, чтобы хендлеру не парсить ее повторно.
func ValidateEvent(title, description, date, location, category string) (time.Time, []string) {
	var violations []string

	titleLen := utf8.RuneCountInString(title)
	if titleLen < 1 || titleLen > MaxTitleLen {
		violations = append(violations, MsgTitleRequired)
	}

	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		violations = append(violations, MsgDescriptionLong)
	}

	var parsed time.Time
	if date == "" {
		violations = append(violations, MsgDateRequired)
	} else {
		var ok bool
		parsed, ok = parseDate(date)
		if !ok {
			violations = append(violations, MsgDateInvalid)
		}
	}

	if utf8.RuneCountInString(location) > MaxLocationLen {
		violations = append(violations, MsgLocationTooLong)
	}

	if category != "" && !models.Category(category).Valid() {
		violations = append(violations, MsgCategoryInvalid)
	}

	return parsed, violations
}

// validEmail проверяет формат email адреса.
// mail.ParseAddress принимает формы вида "Name <a@b>", поэтому
// дополнительно требуем точного совпадения адреса со входом.
func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// parseDate пробует распарсить дату в одном из принимаемых форматов
func parseDate(date string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
