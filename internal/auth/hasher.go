// Package auth предоставляет одностороннее хеширование паролей.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost стоимость bcrypt, проверка занимает десятки миллисекунд
const BcryptCost = 10

// Hasher defines the interface for password hashing and verification
type Hasher interface {
	// Hash generates a salted hash from a plaintext password
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash.
	// Returns false on mismatch, never an error.
	Check(password, hash string) bool
}

// BcryptHasher реализует Hasher поверх bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создает hasher с заданной стоимостью.
// При cost <= 0 используется BcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = BcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash хеширует пароль с солью, встроенной в bcrypt
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Check сравнивает пароль с хешем, не различая причины несовпадения
func (h *BcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyCheck выполняет сравнение с фиктивным хешем.
// Вызывается при входе с несуществующим username, чтобы время ответа
// не отличалось от случая неверного пароля.
func (h *BcryptHasher) DummyCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// валидный bcrypt хеш случайной строки, сгенерирован один раз
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
