package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session хранит bearer token между запусками CLI
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SessionStore читает и пишет файл сессии.
// Файл лежит в пользовательском конфиг-каталоге с правами 0600.
type SessionStore struct {
	path string
}

// NewSessionStore создает store с путем по умолчанию
func NewSessionStore() (*SessionStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return &SessionStore{
		path: filepath.Join(configDir, "terminplaner", "session.json"),
	}, nil
}

// NewSessionStoreAt создает store с явным путем (для тестов)
func NewSessionStoreAt(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load читает сохраненную сессию
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	if session.Token == "" {
		return nil, fmt.Errorf("session file contains no token")
	}

	return &session, nil
}

// Save записывает сессию, создавая каталог при необходимости
func (s *SessionStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear удаляет файл сессии
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
