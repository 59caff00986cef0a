package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher превращает открытый пароль в хэш для хранения
type Hasher interface {
	Hash(password string) (string, error)
}

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher: cost вне диапазона bcrypt заменяется на bcrypt.DefaultCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}
