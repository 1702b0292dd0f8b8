package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/storefront/internal/domain"
)

type Hasher struct {
	Cost int
}

func NewHasher() *Hasher {
	return &Hasher{Cost: bcrypt.DefaultCost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password: %w", domain.ErrValidation)
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password longer than 72 bytes: %w", domain.ErrValidation)
		}
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify never errors: a malformed stored hash simply does not match.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
