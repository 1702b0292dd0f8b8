package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Principal is the account a request acts as. A nil *Principal is the anonymous caller.
type Principal struct {
	ID          uuid.UUID
	Email       string
	Permissions []Permission
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
