package authz

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/domain"
)

func RequireAuthenticated(p *domain.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

// RequirePermission passes when p holds at least one of anyOf.
func RequirePermission(p *domain.Principal, anyOf ...domain.Permission) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !domain.HasAny(p.Permissions, anyOf...) {
		return fmt.Errorf("requires one of %v: %w", anyOf, domain.ErrForbidden)
	}
	return nil
}

func RequireOwnerOrPermission(p *domain.Principal, ownerID uuid.UUID, anyOf ...domain.Permission) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if p.ID == ownerID {
		return nil
	}
	if !domain.HasAny(p.Permissions, anyOf...) {
		return fmt.Errorf("not the owner: %w", domain.ErrForbidden)
	}
	return nil
}
